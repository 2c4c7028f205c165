package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario: si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		salesRepo repository.SalesLogRepository,
		settingsRepo repository.SettingsRepository,
	) error) error
}

// StockExporter genera un archivo descargable con el listado de partes.
type StockExporter interface {
	ExportParts(ctx context.Context, parts []*entity.Part) ([]byte, error)
}
