package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest una línea de la orden de compra.
type PurchaseOrderLineRequest struct {
	PartNumber         string          `json:"part_number"`
	Quality            string          `json:"quality"`
	PartType           string          `json:"part_type"`
	PartSubtype        string          `json:"part_subtype"`
	CarMake            string          `json:"car_make"`
	Manufacturer       string          `json:"manufacturer"`
	QtyOrdered         int             `json:"qty_ordered"`
	PurchaseCostSource decimal.Decimal `json:"purchase_cost_source"`
	WeightKg           decimal.Decimal `json:"weight_kg"`
	Notes              string          `json:"notes"`
	PhotoPath          string          `json:"photo_path"`
}

// CreatePurchaseOrderRequest entrada para crear una orden (todas las líneas comparten po_id).
type CreatePurchaseOrderRequest struct {
	SupplierID   string                     `json:"supplier_id"`
	SupplierName string                     `json:"supplier_name"`
	Lines        []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderCreatedResponse salida de la creación.
type PurchaseOrderCreatedResponse struct {
	POID  string `json:"po_id"`
	Lines int    `json:"lines"`
}

// ReceiveRequest cantidad recibida de una línea.
type ReceiveRequest struct {
	QtyReceived int `json:"qty_received" query:"qty_received"`
}

// InTransitLineResponse resumen de una línea tras una recepción.
type InTransitLineResponse struct {
	ID          int64  `json:"id"`
	POID        string `json:"po_id"`
	Status      string `json:"status"`
	QtyOrdered  int    `json:"qty_ordered"`
	QtyReceived int    `json:"qty_received"`
	PartNumber  string `json:"part_number"`
}

// PurchaseOrderLineResponse línea completa (consulta de la orden y tablero en tránsito).
type PurchaseOrderLineResponse struct {
	ID                 int64           `json:"id"`
	POID               string          `json:"po_id"`
	OrderDate          time.Time       `json:"order_date"`
	SupplierID         string          `json:"supplier_id"`
	SupplierName       string          `json:"supplier_name"`
	PartNumber         string          `json:"part_number"`
	Quality            string          `json:"quality"`
	PartType           string          `json:"part_type"`
	PartSubtype        string          `json:"part_subtype"`
	CarMake            string          `json:"car_make"`
	Manufacturer       string          `json:"manufacturer"`
	QtyOrdered         int             `json:"qty_ordered"`
	QtyReceived        int             `json:"qty_received"`
	PurchaseCostSource decimal.Decimal `json:"purchase_cost_source"`
	WeightKg           decimal.Decimal `json:"weight_kg"`
	ExchangeRateUsed   decimal.Decimal `json:"exchange_rate_used"`
	FreightPerKgUsed   decimal.Decimal `json:"freight_per_kg_used"`
	LandedCost         decimal.Decimal `json:"landed_cost"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes"`
	PhotoPath          string          `json:"photo_path"`
}

// PurchaseOrderResponse orden completa agrupada por po_id.
type PurchaseOrderResponse struct {
	POID         string                      `json:"po_id"`
	SupplierID   string                      `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	OrderDate    time.Time                   `json:"order_date"`
	TotalLanded  decimal.Decimal             `json:"total_landed"` // suma landed_cost * qty_ordered
	Lines        []PurchaseOrderLineResponse `json:"lines"`
}
