package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID fila única de configuración.
const SettingsID = 1

// PricingContext tasa de cambio (origen -> local) y flete por kg vigentes.
type PricingContext struct {
	ExchangeRate decimal.Decimal
	FreightPerKg decimal.Decimal
}

// Settings configuración global del negocio: precios vigentes y catálogos para clasificar partes.
type Settings struct {
	ExchangeRate  decimal.Decimal
	FreightPerKg  decimal.Decimal
	PartTypes     []string
	PartSubtypes  map[string][]string // tipo -> subtipos
	CarMakes      []string
	Manufacturers []string
	LastRecalc    *time.Time
}

// Pricing extrae el contexto de precios.
func (s *Settings) Pricing() PricingContext {
	return PricingContext{ExchangeRate: s.ExchangeRate, FreightPerKg: s.FreightPerKg}
}

// Clone copia profunda (listas y mapa) para que el llamador no comparta estado.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	out := *s
	out.PartTypes = append([]string(nil), s.PartTypes...)
	out.CarMakes = append([]string(nil), s.CarMakes...)
	out.Manufacturers = append([]string(nil), s.Manufacturers...)
	out.PartSubtypes = make(map[string][]string, len(s.PartSubtypes))
	for k, v := range s.PartSubtypes {
		out.PartSubtypes[k] = append([]string(nil), v...)
	}
	if s.LastRecalc != nil {
		t := *s.LastRecalc
		out.LastRecalc = &t
	}
	return &out
}
