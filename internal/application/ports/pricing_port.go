package ports

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PricingProvider define el puerto hacia el colaborador de configuración.
// Se consulta en cada operación; los casos de uso no guardan la tasa entre llamadas.
// Devuelve domain.ErrConfigurationMissing si la configuración nunca se registró.
type PricingProvider interface {
	GetPricingContext(ctx context.Context) (entity.PricingContext, error)
}
