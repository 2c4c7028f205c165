package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para líneas de orden de compra.
type PurchaseOrderRepository interface {
	// CreateLines inserta el lote completo y asigna ID a cada línea.
	CreateLines(ctx context.Context, lines []*entity.PurchaseOrderLine) error
	GetLineByID(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error)
	GetLineForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error)
	// UpdateReceipt persiste QtyReceived y Status de la línea.
	UpdateReceipt(ctx context.Context, line *entity.PurchaseOrderLine) error
	ListByPO(ctx context.Context, poID string) ([]*entity.PurchaseOrderLine, error)
	// ListLines lista líneas por estado (vacío = todas), ordenadas por ID.
	ListLines(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrderLine, error)
}
