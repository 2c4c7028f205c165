package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// PurchasingTxRunner ejecuta una función dentro de una transacción que incluye líneas de orden y partes.
type PurchasingTxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		lineRepo repository.PurchaseOrderRepository,
	) error) error
}

// InventoryReceiver integra la recepción con el libro de inventario.
// ApplyReceiptInTx usa el repositorio del caller (misma transacción); seed crea la parte si no existe.
type InventoryReceiver interface {
	ApplyReceiptInTx(
		ctx context.Context,
		partRepo repository.PartRepository,
		partNumber string,
		qty int,
		seed *entity.Part,
		now time.Time,
	) (*entity.Part, error)
}

// PurchaseOrderPDFGenerator genera la hoja de la orden de compra (PDF).
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, poID string, lines []*entity.PurchaseOrderLine) ([]byte, error)
}
