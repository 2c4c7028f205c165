package memory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type salesLogRepo struct {
	db db
}

func (r *salesLogRepo) Create(ctx context.Context, entry *entity.SalesLogEntry) error {
	return r.db.write(ctx, func(st *state) error {
		st.nextSaleID++
		entry.ID = st.nextSaleID
		st.sales = append(st.sales, *entry)
		return nil
	})
}

// List recorre la bitácora desde el final: IDs crecientes equivalen a orden de inserción.
func (r *salesLogRepo) List(ctx context.Context, partNumber string, limit, offset int) ([]*entity.SalesLogEntry, error) {
	var out []*entity.SalesLogEntry
	err := r.db.read(ctx, func(st *state) error {
		matched := make([]*entity.SalesLogEntry, 0)
		for i := len(st.sales) - 1; i >= 0; i-- {
			e := st.sales[i]
			if partNumber == "" || e.PartNumber == partNumber {
				matched = append(matched, &e)
			}
		}
		out = paginate(matched, limit, offset)
		return nil
	})
	return out, err
}
