package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// RecalcUseCase reaplica la tasa y el flete vigentes a todas las partes.
type RecalcUseCase struct {
	txRunner TxRunner
	metrics  ports.InventoryMetrics
	log      *logger.Logger
	now      func() time.Time
}

func NewRecalcUseCase(txRunner TxRunner, metrics ports.InventoryMetrics, log *logger.Logger) *RecalcUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RecalcUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log.Component("recalc"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecalcAll recalcula en una sola transacción: bloquea la configuración y todas las partes,
// sobrescribe la foto de tasa/flete y registra LastRecalc. Devuelve cuántas partes tocó.
func (uc *RecalcUseCase) RecalcAll(ctx context.Context) (int, error) {
	var count int
	now := uc.now()
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, _ repository.SalesLogRepository, settingsRepo repository.SettingsRepository) error {
		settings, err := settingsRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if settings == nil {
			return domain.ErrConfigurationMissing
		}
		pricing := settings.Pricing()

		parts, err := partRepo.ListForUpdate(ctx)
		if err != nil {
			return err
		}
		for _, p := range parts {
			applyCosts(p, pricing)
			p.UpdatedAt = now
			if err := partRepo.Update(ctx, p); err != nil {
				return err
			}
		}
		settings.LastRecalc = &now
		if err := settingsRepo.Upsert(ctx, settings); err != nil {
			return err
		}
		count = len(parts)
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.metrics.Recalculated(count)
	uc.log.Info().Int("parts", count).Msg("recálculo completado")
	return count, nil
}
