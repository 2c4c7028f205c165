package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const lineColumns = `id, po_id, order_date, supplier_id, supplier_name, part_number, quality, part_type,
	part_subtype, car_make, manufacturer, qty_ordered, qty_received, purchase_cost_source, weight_kg,
	exchange_rate_used, freight_per_kg_used, landed_cost, status, notes, photo_path`

// PurchaseOrderRepo líneas de orden de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// CreateLines inserta el lote en un solo batch y asigna el id generado a cada línea.
func (r *PurchaseOrderRepo) CreateLines(ctx context.Context, lines []*entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_lines (po_id, order_date, supplier_id, supplier_name, part_number, quality,
			part_type, part_subtype, car_make, manufacturer, qty_ordered, qty_received, purchase_cost_source,
			weight_kg, exchange_rate_used, freight_per_kg_used, landed_cost, status, notes, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.POID, l.OrderDate, l.SupplierID, l.SupplierName, l.PartNumber, l.Quality,
			l.PartType, l.PartSubtype, l.CarMake, l.Manufacturer, l.QtyOrdered, l.QtyReceived, l.PurchaseCostSource,
			l.WeightKg, l.ExchangeRateUsed, l.FreightPerKgUsed, l.LandedCost, l.Status, l.Notes, l.PhotoPath,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for _, l := range lines {
		if err := br.QueryRow().Scan(&l.ID); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert purchase order lines: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetLineByID(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error) {
	return r.getOne(ctx, `SELECT `+lineColumns+` FROM purchase_order_lines WHERE id = $1`, id)
}

// GetLineForUpdate bloquea la línea hasta el fin de la transacción.
func (r *PurchaseOrderRepo) GetLineForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrderLine, error) {
	return r.getOne(ctx, `SELECT `+lineColumns+` FROM purchase_order_lines WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) UpdateReceipt(ctx context.Context, line *entity.PurchaseOrderLine) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_order_lines SET qty_received = $2, status = $3 WHERE id = $1`,
		line.ID, line.QtyReceived, line.Status,
	)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) ListByPO(ctx context.Context, poID string) ([]*entity.PurchaseOrderLine, error) {
	return r.list(ctx, `SELECT `+lineColumns+` FROM purchase_order_lines WHERE po_id = $1 ORDER BY id`, poID)
}

// ListLines status vacío lista todas.
func (r *PurchaseOrderRepo) ListLines(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrderLine, error) {
	if status == "" {
		return r.list(ctx, `SELECT `+lineColumns+` FROM purchase_order_lines ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	}
	return r.list(ctx,
		`SELECT `+lineColumns+` FROM purchase_order_lines WHERE status = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		status, limit, offset)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PurchaseOrderLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order line: %w", err)
	}
	return l, nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PurchaseOrderLine, 0)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLine(row pgx.Row) (*entity.PurchaseOrderLine, error) {
	var l entity.PurchaseOrderLine
	err := row.Scan(
		&l.ID, &l.POID, &l.OrderDate, &l.SupplierID, &l.SupplierName, &l.PartNumber, &l.Quality, &l.PartType,
		&l.PartSubtype, &l.CarMake, &l.Manufacturer, &l.QtyOrdered, &l.QtyReceived, &l.PurchaseCostSource, &l.WeightKg,
		&l.ExchangeRateUsed, &l.FreightPerKgUsed, &l.LandedCost, &l.Status, &l.Notes, &l.PhotoPath,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
