package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsResponse configuración vigente. Configured=false si aún no se ha guardado.
type SettingsResponse struct {
	ExchangeRate  decimal.Decimal     `json:"exchange_rate"`
	FreightPerKg  decimal.Decimal     `json:"freight_per_kg"`
	PartTypes     []string            `json:"part_types"`
	PartSubtypes  map[string][]string `json:"part_subtypes"`
	CarMakes      []string            `json:"car_makes"`
	Manufacturers []string            `json:"manufacturers"`
	LastRecalc    *time.Time          `json:"last_recalc"`
	Configured    bool                `json:"configured"`
}

// UpdateSettingsRequest parche parcial de la configuración.
type UpdateSettingsRequest struct {
	ExchangeRate  *decimal.Decimal    `json:"exchange_rate"`
	FreightPerKg  *decimal.Decimal    `json:"freight_per_kg"`
	PartTypes     []string            `json:"part_types"`
	PartSubtypes  map[string][]string `json:"part_subtypes"`
	CarMakes      []string            `json:"car_makes"`
	Manufacturers []string            `json:"manufacturers"`
}

// RecalcResponse resultado del barrido de recálculo.
type RecalcResponse struct {
	Recalculated int `json:"recalculated"`
}
