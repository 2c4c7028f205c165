package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para registrar una parte.
// Los costos derivados se calculan con la configuración vigente; no se aceptan del cliente.
type CreatePartRequest struct {
	PartNumber         string           `json:"part_number"`
	PhotoPath          string           `json:"photo_path"`
	Quality            string           `json:"quality"`
	PartType           string           `json:"part_type"`
	PartSubtype        string           `json:"part_subtype"`
	CarMake            string           `json:"car_make"`
	Manufacturer       string           `json:"manufacturer"`
	ApplicableModels   string           `json:"applicable_models"`
	PurchaseCostSource decimal.Decimal  `json:"purchase_cost_source"`
	WeightKg           decimal.Decimal  `json:"weight_kg"`
	WholesaleActual    *decimal.Decimal `json:"wholesale_actual"`
	RetailActual       *decimal.Decimal `json:"retail_actual"`
	AvailableQty       int              `json:"available_qty"`
}

// UpdatePartRequest parche parcial: solo se aplican los campos presentes (no nil).
// No recalcula costos ni cambia el estado.
type UpdatePartRequest struct {
	PhotoPath          *string          `json:"photo_path"`
	Quality            *string          `json:"quality"`
	PartType           *string          `json:"part_type"`
	PartSubtype        *string          `json:"part_subtype"`
	CarMake            *string          `json:"car_make"`
	Manufacturer       *string          `json:"manufacturer"`
	ApplicableModels   *string          `json:"applicable_models"`
	PurchaseCostSource *decimal.Decimal `json:"purchase_cost_source"`
	WeightKg           *decimal.Decimal `json:"weight_kg"`
	WholesaleActual    *decimal.Decimal `json:"wholesale_actual"`
	RetailActual       *decimal.Decimal `json:"retail_actual"`
	AvailableQty       *int             `json:"available_qty"`
}

// PartSearchRequest filtros de búsqueda (todos opcionales, conjuntivos) y página.
type PartSearchRequest struct {
	PartNumber       string `query:"part_number"`
	ApplicableModels string `query:"applicable_models"`
	Status           string `query:"status"`
	PartType         string `query:"part_type"`
	PartSubtype      string `query:"part_subtype"`
	CarMake          string `query:"car_make"`
	Manufacturer     string `query:"manufacturer"`
	PageRequest
}

// PartResponse salida de una parte.
type PartResponse struct {
	PartNumber         string              `json:"part_number"`
	PhotoPath          string              `json:"photo_path"`
	Quality            string              `json:"quality"`
	PartType           string              `json:"part_type"`
	PartSubtype        string              `json:"part_subtype"`
	CarMake            string              `json:"car_make"`
	Manufacturer       string              `json:"manufacturer"`
	ApplicableModels   string              `json:"applicable_models"`
	PurchaseCostSource decimal.Decimal     `json:"purchase_cost_source"`
	WeightKg           decimal.Decimal     `json:"weight_kg"`
	ExchangeRateUsed   decimal.Decimal     `json:"exchange_rate_used"`
	FreightPerKgUsed   decimal.Decimal     `json:"freight_per_kg_used"`
	PurchaseCostLocal  decimal.NullDecimal `json:"purchase_cost_local"`
	ShippingCostLocal  decimal.NullDecimal `json:"shipping_cost_local"`
	LandedCost         decimal.NullDecimal `json:"landed_cost"`
	SuggestedWholesale decimal.NullDecimal `json:"suggested_wholesale"`
	SuggestedRetail    decimal.NullDecimal `json:"suggested_retail"`
	WholesaleActual    decimal.NullDecimal `json:"wholesale_actual"`
	RetailActual       decimal.NullDecimal `json:"retail_actual"`
	AvailableQty       int                 `json:"available_qty"`
	SoldWholesaleQty   int                 `json:"sold_wholesale_qty"`
	SoldRetailQty      int                 `json:"sold_retail_qty"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// PartListResponse página de resultados de búsqueda.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
