package inventory

import "github.com/shopspring/decimal"

// Multiplicadores de precio sugerido (política fija del negocio).
var (
	WholesaleMultiplier = decimal.RequireFromString("2.5")
	RetailMultiplier    = decimal.RequireFromString("3.5")
)

// CostPlaces decimales de todos los valores derivados.
const CostPlaces = 2

// CostBreakdown resultado del cálculo de costos, ya redondeado a CostPlaces.
type CostBreakdown struct {
	PurchaseCostLocal  decimal.Decimal
	ShippingCostLocal  decimal.Decimal
	LandedCost         decimal.Decimal
	SuggestedWholesale decimal.Decimal
	SuggestedRetail    decimal.Decimal
}

// ComputeCosts implementa el costo puesto en destino (servicio de dominio, puro).
//
//	CostoLocal  = CostoOrigen * Tasa
//	Envío       = PesoKg * FletePorKg
//	Puesto      = CostoLocal + Envío
//	Mayorista   = Puesto * 2.5
//	Minorista   = Puesto * 3.5
//
// Los intermedios no se redondean; cada salida se redondea a 2 decimales (mitad lejos de cero).
// Entradas nulas cuentan como cero.
func ComputeCosts(sourceCost, weightKg, rate, freightPerKg decimal.NullDecimal) CostBreakdown {
	purchase := orZero(sourceCost).Mul(orZero(rate))
	shipping := orZero(weightKg).Mul(orZero(freightPerKg))
	landed := purchase.Add(shipping)
	return CostBreakdown{
		PurchaseCostLocal:  purchase.Round(CostPlaces),
		ShippingCostLocal:  shipping.Round(CostPlaces),
		LandedCost:         landed.Round(CostPlaces),
		SuggestedWholesale: landed.Mul(WholesaleMultiplier).Round(CostPlaces),
		SuggestedRetail:    landed.Mul(RetailMultiplier).Round(CostPlaces),
	}
}

// Compute atajo para valores no nulos.
func Compute(sourceCost, weightKg, rate, freightPerKg decimal.Decimal) CostBreakdown {
	return ComputeCosts(
		decimal.NewNullDecimal(sourceCost),
		decimal.NewNullDecimal(weightKg),
		decimal.NewNullDecimal(rate),
		decimal.NewNullDecimal(freightPerKg),
	)
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
