package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type purchaseOrderRepo struct {
	db db
}

func (r *purchaseOrderRepo) CreateLines(ctx context.Context, lines []*entity.PurchaseOrderLine) error {
	return r.db.write(ctx, func(st *state) error {
		for _, l := range lines {
			st.nextLineID++
			l.ID = st.nextLineID
			st.lines[l.ID] = *l
		}
		return nil
	})
}

func (r *purchaseOrderRepo) GetLineByID(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error) {
	var out *entity.PurchaseOrderLine
	err := r.db.read(ctx, func(st *state) error {
		if l, ok := st.lines[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *purchaseOrderRepo) GetLineForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error) {
	return r.GetLineByID(ctx, id)
}

func (r *purchaseOrderRepo) UpdateReceipt(ctx context.Context, line *entity.PurchaseOrderLine) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.lines[line.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.QtyReceived = line.QtyReceived
		cur.Status = line.Status
		st.lines[line.ID] = cur
		return nil
	})
}

func (r *purchaseOrderRepo) ListByPO(ctx context.Context, poID string) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	err := r.db.read(ctx, func(st *state) error {
		out = sortedLines(st, func(l entity.PurchaseOrderLine) bool { return l.POID == poID })
		return nil
	})
	return out, err
}

func (r *purchaseOrderRepo) ListLines(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	err := r.db.read(ctx, func(st *state) error {
		out = paginate(sortedLines(st, func(l entity.PurchaseOrderLine) bool {
			return status == "" || l.Status == status
		}), limit, offset)
		return nil
	})
	return out, err
}

func sortedLines(st *state, keep func(entity.PurchaseOrderLine) bool) []*entity.PurchaseOrderLine {
	out := make([]*entity.PurchaseOrderLine, 0)
	for _, l := range st.lines {
		if keep(l) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
