package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// SupplierRepository directorio de proveedores.
type SupplierRepository interface {
	// Create devuelve domain.ErrDuplicate si el SupplierID ya existe.
	Create(ctx context.Context, supplier *entity.Supplier) error
	// List ordena por nombre.
	List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error)
}
