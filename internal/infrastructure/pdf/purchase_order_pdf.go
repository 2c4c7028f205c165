// Package pdf genera la hoja de una orden de compra para enviar al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: po_id + fecha      │  Proveedor + ID               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Parte | Descripción | Cant | Costo origen | Puesto   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / costo puesto total                      │
//	│  FOOTER: tasa y flete usados + QR con el po_id               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

var _ purchasing.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator implementa purchasing.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GeneratePurchaseOrderPDF genera la hoja de la orden. lines no puede estar vacío.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	poID string,
	lines []*entity.PurchaseOrderLine,
) ([]byte, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("orden %s sin líneas", poID)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+poID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)
	first := lines[0]

	m.AddRows(headerRow(poID, first))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(poID, first))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(poID string, first *entity.PurchaseOrderLine) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(poID, props.Text{Style: fontstyle.Bold, Size: 13, Top: 6}),
			text.New("Fecha: "+first.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(first.SupplierName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(nonEmpty(first.SupplierID, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Parte", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Costo origen", 2, align.Right),
		h("Puesto unit.", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableLineRows(lines []*entity.PurchaseOrderLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(l.PartNumber, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(describe(l), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.QtyOrdered), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatAmount(l.PurchaseCostSource), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+formatAmount(l.LandedCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(lines []*entity.PurchaseOrderLine) core.Row {
	units := 0
	total := decimal.Zero
	for _, l := range lines {
		units += l.QtyOrdered
		total = total.Add(l.LandedCost.Mul(decimal.NewFromInt(int64(l.QtyOrdered))))
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades:"),
			text.New("COSTO PUESTO TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", units), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("$"+formatAmount(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

func footerRow(poID string, first *entity.PurchaseOrderLine) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(poID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("Tasa de cambio usada: %s   |   Flete por kg: %s",
				first.ExchangeRateUsed.String(), first.FreightPerKgUsed.String(),
			), props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("El costo puesto incluye compra convertida y flete por peso.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

func describe(l *entity.PurchaseOrderLine) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{l.PartType, l.PartSubtype, l.CarMake, l.Manufacturer} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if l.Quality != "" {
		parts = append(parts, "("+l.Quality+")")
	}
	return nonEmpty(strings.Join(parts, " "), "-")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount separa miles con punto y deja dos decimales con coma.
// Ej: 64000 → "64.000,00", 1234.5 → "1.234,50"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
