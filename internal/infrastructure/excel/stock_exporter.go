// Package excel exporta el inventario a XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

var _ inventory.StockExporter = (*StockExporter)(nil)

var stockHeader = []interface{}{
	"part_number", "quality", "part_type", "part_subtype", "car_make", "manufacturer",
	"applicable_models", "purchase_cost_source", "weight_kg", "exchange_rate_used",
	"freight_per_kg_used", "landed_cost", "suggested_wholesale", "suggested_retail",
	"wholesale_actual", "retail_actual", "available_qty", "sold_wholesale_qty",
	"sold_retail_qty", "status", "updated_at",
}

// StockExporter una hoja con una fila por parte, en el orden recibido.
type StockExporter struct{}

func NewStockExporter() *StockExporter { return &StockExporter{} }

func (e *StockExporter) ExportParts(ctx context.Context, parts []*entity.Part) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &stockHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	row := 2
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := []interface{}{
			p.PartNumber, p.Quality, p.PartType, p.PartSubtype, p.CarMake, p.Manufacturer,
			p.ApplicableModels, number(p.PurchaseCostSource), number(p.WeightKg), number(p.ExchangeRateUsed),
			number(p.FreightPerKgUsed), nullable(p.LandedCost), nullable(p.SuggestedWholesale), nullable(p.SuggestedRetail),
			nullable(p.WholesaleActual), nullable(p.RetailActual), p.Available, p.SoldWholesale,
			p.SoldRetail, p.Status, p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %s: %w", p.PartNumber, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// nullable celda vacía para derivados aún no calculados.
func nullable(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}
