package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `part_number, photo_path, quality, part_type, part_subtype, car_make, manufacturer,
	applicable_models, purchase_cost_source, weight_kg, exchange_rate_used, freight_per_kg_used,
	purchase_cost_local, shipping_cost_local, landed_cost, suggested_wholesale, suggested_retail,
	wholesale_actual, retail_actual, available_qty, sold_wholesale_qty, sold_retail_qty, status,
	created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

func partArgs(p *entity.Part) []any {
	return []any{
		p.PartNumber, p.PhotoPath, p.Quality, p.PartType, p.PartSubtype, p.CarMake, p.Manufacturer,
		p.ApplicableModels, p.PurchaseCostSource, p.WeightKg, p.ExchangeRateUsed, p.FreightPerKgUsed,
		p.PurchaseCostLocal, p.ShippingCostLocal, p.LandedCost, p.SuggestedWholesale, p.SuggestedRetail,
		p.WholesaleActual, p.RetailActual, p.Available, p.SoldWholesale, p.SoldRetail, p.Status,
		p.CreatedAt, p.UpdatedAt,
	}
}

const insertPart = `INSERT INTO parts (` + partColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

// Create inserta la parte; domain.ErrDuplicate si el número ya existe.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	if _, err := r.q.Exec(ctx, insertPart, partArgs(part)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta solo si el número de parte no existe (ON CONFLICT DO NOTHING).
func (r *PartRepo) CreateIfAbsent(ctx context.Context, part *entity.Part) (bool, error) {
	cmd, err := r.q.Exec(ctx, insertPart+` ON CONFLICT (part_number) DO NOTHING`, partArgs(part)...)
	if err != nil {
		return false, fmt.Errorf("insert part if absent: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *PartRepo) GetByPartNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE part_number = $1`, partNumber)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *PartRepo) GetForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE part_number = $1 FOR UPDATE`, partNumber)
}

// ListForUpdate bloquea todas las partes en orden de número de parte.
func (r *PartRepo) ListForUpdate(ctx context.Context) ([]*entity.Part, error) {
	return r.list(ctx, `SELECT `+partColumns+` FROM parts ORDER BY part_number FOR UPDATE`)
}

// Update persiste todos los campos mutables; domain.ErrNotFound si la fila no existe.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	query := `
		UPDATE parts SET photo_path = $2, quality = $3, part_type = $4, part_subtype = $5, car_make = $6,
			manufacturer = $7, applicable_models = $8, purchase_cost_source = $9, weight_kg = $10,
			exchange_rate_used = $11, freight_per_kg_used = $12, purchase_cost_local = $13,
			shipping_cost_local = $14, landed_cost = $15, suggested_wholesale = $16, suggested_retail = $17,
			wholesale_actual = $18, retail_actual = $19, available_qty = $20, sold_wholesale_qty = $21,
			sold_retail_qty = $22, status = $23, updated_at = $24
		WHERE part_number = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.PartNumber, p.PhotoPath, p.Quality, p.PartType, p.PartSubtype, p.CarMake,
		p.Manufacturer, p.ApplicableModels, p.PurchaseCostSource, p.WeightKg,
		p.ExchangeRateUsed, p.FreightPerKgUsed, p.PurchaseCostLocal,
		p.ShippingCostLocal, p.LandedCost, p.SuggestedWholesale, p.SuggestedRetail,
		p.WholesaleActual, p.RetailActual, p.Available, p.SoldWholesale,
		p.SoldRetail, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search arma el WHERE con los filtros presentes; ILIKE para número de parte y modelos.
func (r *PartRepo) Search(ctx context.Context, f repository.PartFilter, limit, offset int) ([]*entity.Part, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.PartNumber != "" {
		add(`part_number ILIKE $%d`, containsPattern(f.PartNumber))
	}
	if f.ApplicableModels != "" {
		add(`applicable_models ILIKE $%d`, containsPattern(f.ApplicableModels))
	}
	if f.Status != "" {
		add(`status = $%d`, f.Status)
	}
	if f.PartType != "" {
		add(`part_type = $%d`, f.PartType)
	}
	if f.PartSubtype != "" {
		add(`part_subtype = $%d`, f.PartSubtype)
	}
	if f.CarMake != "" {
		add(`car_make = $%d`, f.CarMake)
	}
	if f.Manufacturer != "" {
		add(`manufacturer = $%d`, f.Manufacturer)
	}

	query := `SELECT ` + partColumns + ` FROM parts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY part_number LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

func (r *PartRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

func (r *PartRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(
		&p.PartNumber, &p.PhotoPath, &p.Quality, &p.PartType, &p.PartSubtype, &p.CarMake, &p.Manufacturer,
		&p.ApplicableModels, &p.PurchaseCostSource, &p.WeightKg, &p.ExchangeRateUsed, &p.FreightPerKgUsed,
		&p.PurchaseCostLocal, &p.ShippingCostLocal, &p.LandedCost, &p.SuggestedWholesale, &p.SuggestedRetail,
		&p.WholesaleActual, &p.RetailActual, &p.Available, &p.SoldWholesale, &p.SoldRetail, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
