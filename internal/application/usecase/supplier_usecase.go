package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var supplierIDPattern = regexp.MustCompile(`^SUP-[A-Za-z0-9]{8}$`)

// SupplierUseCase directorio de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	log  *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, log: log.Component("suppliers")}
}

// Create registra un proveedor. El ID debe tener formato SUP-XXXXXXXX.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	in.Name = strings.TrimSpace(in.Name)
	if !supplierIDPattern.MatchString(in.SupplierID) || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	s := &entity.Supplier{
		SupplierID: in.SupplierID,
		Name:       in.Name,
		Contact:    in.Contact,
		Notes:      in.Notes,
		Active:     active,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrDuplicate)
		}
		return nil, err
	}
	uc.log.Info().Str("supplier_id", s.SupplierID).Bool("active", s.Active).Msg("proveedor registrado")
	return toSupplierResponse(s), nil
}

// List lista proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, activeOnly bool) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:         s.ID,
		SupplierID: s.SupplierID,
		Name:       s.Name,
		Contact:    s.Contact,
		Notes:      s.Notes,
		Active:     s.Active,
	}
}
