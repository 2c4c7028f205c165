package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// SettingsRepository acceso a la fila única de configuración. Get devuelve nil, nil si no existe.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	GetForUpdate(ctx context.Context) (*entity.Settings, error)
	Upsert(ctx context.Context, settings *entity.Settings) error
}
