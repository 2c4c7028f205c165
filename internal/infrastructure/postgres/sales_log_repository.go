package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.SalesLogRepository = (*SalesLogRepo)(nil)

// SalesLogRepo bitácora de ventas (solo inserción).
type SalesLogRepo struct {
	q Querier
}

func NewSalesLogRepository(q Querier) *SalesLogRepo {
	return &SalesLogRepo{q: q}
}

func (r *SalesLogRepo) Create(ctx context.Context, e *entity.SalesLogEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales_log (sold_at, part_number, channel, qty, price_each, subtotal, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.Date, e.PartNumber, e.Channel, e.Qty, e.PriceEach, e.Subtotal, e.Notes,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert sales log: %w", err)
	}
	return nil
}

func (r *SalesLogRepo) List(ctx context.Context, partNumber string, limit, offset int) ([]*entity.SalesLogEntry, error) {
	query := `SELECT id, sold_at, part_number, channel, qty, price_each, subtotal, notes FROM sales_log`
	args := []any{}
	if partNumber != "" {
		query += ` WHERE part_number = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
		args = append(args, partNumber, limit, offset)
	} else {
		query += ` ORDER BY id DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales log: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SalesLogEntry, 0)
	for rows.Next() {
		var e entity.SalesLogEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.PartNumber, &e.Channel, &e.Qty, &e.PriceEach, &e.Subtotal, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan sales log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
