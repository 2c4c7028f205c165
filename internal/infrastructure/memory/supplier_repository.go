package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type supplierRepo struct {
	db db
}

func (r *supplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.suppliers[supplier.SupplierID]; ok {
			return domain.ErrDuplicate
		}
		st.nextSupplierID++
		supplier.ID = st.nextSupplierID
		st.suppliers[supplier.SupplierID] = *supplier
		return nil
	})
}

func (r *supplierRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.db.read(ctx, func(st *state) error {
		out = make([]*entity.Supplier, 0, len(st.suppliers))
		for _, s := range st.suppliers {
			if activeOnly && !s.Active {
				continue
			}
			s := s
			out = append(out, &s)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Name == out[j].Name {
				return out[i].SupplierID < out[j].SupplierID
			}
			return out[i].Name < out[j].Name
		})
		return nil
	})
	return out, err
}
