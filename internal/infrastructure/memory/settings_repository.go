package memory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type settingsRepo struct {
	db db
}

func (r *settingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := r.db.read(ctx, func(st *state) error {
		out = st.settings.Clone()
		return nil
	})
	return out, err
}

func (r *settingsRepo) GetForUpdate(ctx context.Context) (*entity.Settings, error) {
	return r.Get(ctx)
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *entity.Settings) error {
	return r.db.write(ctx, func(st *state) error {
		st.settings = settings.Clone()
		return nil
	})
}
