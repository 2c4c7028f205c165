package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta; cada uno lleva su propio contador de vendidos.
const (
	ChannelWholesale = "Wholesale"
	ChannelRetail    = "Retail"
)

// ValidChannel indica si el canal es uno de los soportados.
func ValidChannel(ch string) bool {
	return ch == ChannelWholesale || ch == ChannelRetail
}

// SalesLogEntry registro de auditoría de una línea de venta finalizada (solo inserción).
type SalesLogEntry struct {
	ID         int64
	Date       time.Time
	PartNumber string
	Channel    string
	Qty        int
	PriceEach  decimal.Decimal
	Subtotal   decimal.Decimal
	Notes      string
}
