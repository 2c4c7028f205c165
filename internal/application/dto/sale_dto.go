package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del carrito.
type SaleItemRequest struct {
	PartNumber string          `json:"part_number"`
	Channel    string          `json:"channel"` // Wholesale | Retail
	Quantity   int             `json:"quantity"`
	PriceEach  decimal.Decimal `json:"price_each"`
}

// FinalizeSaleRequest carrito completo; la nota se copia a cada línea de la bitácora.
type FinalizeSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
	Note  string            `json:"note"`
}

// SalesLogResponse una entrada de la bitácora de ventas.
type SalesLogResponse struct {
	ID         int64           `json:"id"`
	Date       time.Time       `json:"date"`
	PartNumber string          `json:"part_number"`
	Channel    string          `json:"channel"`
	Qty        int             `json:"qty"`
	PriceEach  decimal.Decimal `json:"price_each"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Notes      string          `json:"notes"`
}
