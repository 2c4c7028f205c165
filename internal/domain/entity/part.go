package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una parte en inventario. Se derivan de Available; no se asignan libremente.
const (
	PartStatusInStock    = "In stock"
	PartStatusOutOfStock = "Out of stock"
)

// MaxQuantity tope de cualquier cantidad (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// ValidQuantity 0 <= qty <= MaxQuantity.
func ValidQuantity(qty int) bool {
	return qty >= 0 && qty <= MaxQuantity
}

// Part representa una referencia de repuesto en el inventario (una sola bodega).
// Los costos derivados quedan nulos hasta el primer cálculo; la tasa y el flete usados
// se guardan como foto del momento del cálculo.
type Part struct {
	PartNumber       string // clave única
	PhotoPath        string
	Quality          string
	PartType         string
	PartSubtype      string
	CarMake          string
	Manufacturer     string
	ApplicableModels string

	PurchaseCostSource decimal.Decimal // costo en moneda de origen
	WeightKg           decimal.Decimal
	ExchangeRateUsed   decimal.Decimal
	FreightPerKgUsed   decimal.Decimal

	PurchaseCostLocal  decimal.NullDecimal
	ShippingCostLocal  decimal.NullDecimal
	LandedCost         decimal.NullDecimal
	SuggestedWholesale decimal.NullDecimal
	SuggestedRetail    decimal.NullDecimal
	WholesaleActual    decimal.NullDecimal
	RetailActual       decimal.NullDecimal

	Available     int
	SoldWholesale int
	SoldRetail    int
	Status        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusForQuantity estado inicial de una parte según su disponible.
func StatusForQuantity(available int) string {
	if available > 0 {
		return PartStatusInStock
	}
	return PartStatusOutOfStock
}
