package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// SalesLogRepository bitácora de ventas (solo inserción y lectura).
type SalesLogRepository interface {
	// Create asigna ID a la entrada.
	Create(ctx context.Context, entry *entity.SalesLogEntry) error
	// List devuelve las entradas más recientes primero; partNumber vacío = todas.
	List(ctx context.Context, partNumber string, limit, offset int) ([]*entity.SalesLogEntry, error)
}
