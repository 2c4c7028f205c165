package ports

import "github.com/shopspring/decimal"

// InventoryMetrics puerto de salida para métricas del libro de inventario.
// Se invoca solo después de un commit exitoso.
type InventoryMetrics interface {
	SaleLine(channel string, qty int, subtotal decimal.Decimal)
	Receipt(qty int, lineCompleted bool)
	PurchaseOrderCreated(lines int)
	Recalculated(parts int)
}

// NopMetrics implementación vacía (tests y arranque sin métricas).
type NopMetrics struct{}

func (NopMetrics) SaleLine(string, int, decimal.Decimal) {}
func (NopMetrics) Receipt(int, bool)                     {}
func (NopMetrics) PurchaseOrderCreated(int)              {}
func (NopMetrics) Recalculated(int)                      {}
