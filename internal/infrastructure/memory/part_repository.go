package memory

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

type partRepo struct {
	db db
}

func (r *partRepo) Create(ctx context.Context, part *entity.Part) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.parts[part.PartNumber]; ok {
			return domain.ErrDuplicate
		}
		st.parts[part.PartNumber] = *part
		return nil
	})
}

func (r *partRepo) CreateIfAbsent(ctx context.Context, part *entity.Part) (bool, error) {
	var inserted bool
	err := r.db.write(ctx, func(st *state) error {
		if _, ok := st.parts[part.PartNumber]; ok {
			return nil
		}
		st.parts[part.PartNumber] = *part
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *partRepo) GetByPartNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	var out *entity.Part
	err := r.db.read(ctx, func(st *state) error {
		if p, ok := st.parts[partNumber]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una transacción el cerrojo de escritura ya está tomado.
func (r *partRepo) GetForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.GetByPartNumber(ctx, partNumber)
}

func (r *partRepo) ListForUpdate(ctx context.Context) ([]*entity.Part, error) {
	var out []*entity.Part
	err := r.db.read(ctx, func(st *state) error {
		out = sortedParts(st, func(entity.Part) bool { return true })
		return nil
	})
	return out, err
}

func (r *partRepo) Update(ctx context.Context, part *entity.Part) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.parts[part.PartNumber]; !ok {
			return domain.ErrNotFound
		}
		st.parts[part.PartNumber] = *part
		return nil
	})
}

func (r *partRepo) Search(ctx context.Context, filter repository.PartFilter, limit, offset int) ([]*entity.Part, error) {
	fold := cases.Fold()
	pn := fold.String(filter.PartNumber)
	models := fold.String(filter.ApplicableModels)
	match := func(p entity.Part) bool {
		if pn != "" && !strings.Contains(fold.String(p.PartNumber), pn) {
			return false
		}
		if models != "" && !strings.Contains(fold.String(p.ApplicableModels), models) {
			return false
		}
		return exact(filter.Status, p.Status) &&
			exact(filter.PartType, p.PartType) &&
			exact(filter.PartSubtype, p.PartSubtype) &&
			exact(filter.CarMake, p.CarMake) &&
			exact(filter.Manufacturer, p.Manufacturer)
	}
	var out []*entity.Part
	err := r.db.read(ctx, func(st *state) error {
		out = paginate(sortedParts(st, match), limit, offset)
		return nil
	})
	return out, err
}

func exact(want, got string) bool {
	return want == "" || want == got
}

func sortedParts(st *state, keep func(entity.Part) bool) []*entity.Part {
	out := make([]*entity.Part, 0, len(st.parts))
	for _, p := range st.parts {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out
}
