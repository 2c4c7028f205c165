package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de orden de compra. Received es terminal.
const (
	LineStatusShipping = "Shipping"
	LineStatusReceived = "Received"
)

// PurchaseOrderLine una cantidad ordenada de una parte, en tránsito desde el proveedor.
// Todas las líneas creadas en una misma orden comparten POID.
type PurchaseOrderLine struct {
	ID           int64
	POID         string
	OrderDate    time.Time
	SupplierID   string
	SupplierName string

	PartNumber   string
	Quality      string
	PartType     string
	PartSubtype  string
	CarMake      string
	Manufacturer string

	QtyOrdered  int
	QtyReceived int

	PurchaseCostSource decimal.Decimal
	WeightKg           decimal.Decimal
	ExchangeRateUsed   decimal.Decimal
	FreightPerKgUsed   decimal.Decimal
	LandedCost         decimal.Decimal

	Status    string
	Notes     string
	PhotoPath string
}

// Pending cantidad que falta por recibir.
func (l *PurchaseOrderLine) Pending() int {
	return l.QtyOrdered - l.QtyReceived
}
