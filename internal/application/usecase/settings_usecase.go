package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// SettingsTxRunner transacción sobre la fila única de configuración.
type SettingsTxRunner interface {
	RunSettings(ctx context.Context, fn func(settingsRepo repository.SettingsRepository) error) error
}

// SettingsUseCase colaborador de configuración: expone la tasa y el flete vigentes y los catálogos.
// Implementa ports.PricingProvider.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	txRunner SettingsTxRunner
	log      *logger.Logger
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, txRunner SettingsTxRunner, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, txRunner: txRunner, log: log.Component("settings")}
}

// GetPricingContext lee la configuración en cada llamada; ErrConfigurationMissing si nunca se guardó.
func (uc *SettingsUseCase) GetPricingContext(ctx context.Context) (entity.PricingContext, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return entity.PricingContext{}, err
	}
	if s == nil {
		return entity.PricingContext{}, domain.ErrConfigurationMissing
	}
	return s.Pricing(), nil
}

// Get devuelve la configuración vigente o los valores por defecto (sin persistirlos).
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return toSettingsResponse(defaultSettings(), false), nil
	}
	return toSettingsResponse(s, true), nil
}

// Update aplica el parche con la fila bloqueada y la crea si no existía.
// Tasa o flete negativos se rechazan.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if (in.ExchangeRate != nil && in.ExchangeRate.IsNegative()) || (in.FreightPerKg != nil && in.FreightPerKg.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	var saved *entity.Settings
	err := uc.txRunner.RunSettings(ctx, func(settingsRepo repository.SettingsRepository) error {
		s, err := settingsRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			s = defaultSettings()
		}
		if in.ExchangeRate != nil {
			s.ExchangeRate = *in.ExchangeRate
		}
		if in.FreightPerKg != nil {
			s.FreightPerKg = *in.FreightPerKg
		}
		if in.PartTypes != nil {
			s.PartTypes = in.PartTypes
		}
		if in.PartSubtypes != nil {
			s.PartSubtypes = in.PartSubtypes
		}
		if in.CarMakes != nil {
			s.CarMakes = in.CarMakes
		}
		if in.Manufacturers != nil {
			s.Manufacturers = in.Manufacturers
		}
		if err := settingsRepo.Upsert(ctx, s); err != nil {
			return err
		}
		saved = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("exchange_rate", saved.ExchangeRate.String()).
		Str("freight_per_kg", saved.FreightPerKg.String()).
		Msg("configuración actualizada")
	return toSettingsResponse(saved, true), nil
}

func defaultSettings() *entity.Settings {
	return &entity.Settings{
		ExchangeRate:  decimal.Zero,
		FreightPerKg:  decimal.Zero,
		PartTypes:     []string{},
		PartSubtypes:  map[string][]string{},
		CarMakes:      []string{},
		Manufacturers: []string{},
	}
}

func toSettingsResponse(s *entity.Settings, configured bool) *dto.SettingsResponse {
	out := &dto.SettingsResponse{
		ExchangeRate:  s.ExchangeRate,
		FreightPerKg:  s.FreightPerKg,
		PartTypes:     s.PartTypes,
		PartSubtypes:  s.PartSubtypes,
		CarMakes:      s.CarMakes,
		Manufacturers: s.Manufacturers,
		LastRecalc:    s.LastRecalc,
		Configured:    configured,
	}
	if out.PartTypes == nil {
		out.PartTypes = []string{}
	}
	if out.PartSubtypes == nil {
		out.PartSubtypes = map[string][]string{}
	}
	if out.CarMakes == nil {
		out.CarMakes = []string{}
	}
	if out.Manufacturers == nil {
		out.Manufacturers = []string{}
	}
	return out
}
