package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

const settingsSelect = `SELECT exchange_rate, freight_per_kg, part_types, part_subtypes, car_makes, manufacturers, last_recalc
	FROM settings WHERE id = $1`

// SettingsRepo fila única de configuración (id = 1). Los catálogos se guardan como JSONB.
type SettingsRepo struct {
	q Querier
}

func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	return r.get(ctx, settingsSelect)
}

func (r *SettingsRepo) GetForUpdate(ctx context.Context) (*entity.Settings, error) {
	return r.get(ctx, settingsSelect+` FOR UPDATE`)
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	types, err := json.Marshal(nonNilList(s.PartTypes))
	if err != nil {
		return fmt.Errorf("encode part_types: %w", err)
	}
	subtypes := s.PartSubtypes
	if subtypes == nil {
		subtypes = map[string][]string{}
	}
	subs, err := json.Marshal(subtypes)
	if err != nil {
		return fmt.Errorf("encode part_subtypes: %w", err)
	}
	makes, err := json.Marshal(nonNilList(s.CarMakes))
	if err != nil {
		return fmt.Errorf("encode car_makes: %w", err)
	}
	mfrs, err := json.Marshal(nonNilList(s.Manufacturers))
	if err != nil {
		return fmt.Errorf("encode manufacturers: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO settings (id, exchange_rate, freight_per_kg, part_types, part_subtypes, car_makes, manufacturers, last_recalc)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7::jsonb, $8)
		ON CONFLICT (id) DO UPDATE SET
			exchange_rate = EXCLUDED.exchange_rate,
			freight_per_kg = EXCLUDED.freight_per_kg,
			part_types = EXCLUDED.part_types,
			part_subtypes = EXCLUDED.part_subtypes,
			car_makes = EXCLUDED.car_makes,
			manufacturers = EXCLUDED.manufacturers,
			last_recalc = EXCLUDED.last_recalc`,
		entity.SettingsID, s.ExchangeRate, s.FreightPerKg,
		string(types), string(subs), string(makes), string(mfrs), s.LastRecalc,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) get(ctx context.Context, query string) (*entity.Settings, error) {
	var (
		s                        entity.Settings
		types, subs, makes, mfrs []byte
	)
	err := r.q.QueryRow(ctx, query, entity.SettingsID).Scan(
		&s.ExchangeRate, &s.FreightPerKg, &types, &subs, &makes, &mfrs, &s.LastRecalc,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{types, &s.PartTypes}, {subs, &s.PartSubtypes}, {makes, &s.CarMakes}, {mfrs, &s.Manufacturers},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &s, nil
}

func nonNilList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
