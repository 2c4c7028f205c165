// Package metrics contadores Prometheus del libro de inventario.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
)

const namespace = "repuestos"

var _ ports.InventoryMetrics = (*Inventory)(nil)

// Inventory implementa ports.InventoryMetrics sobre un registro propio (no el global).
type Inventory struct {
	registry *prometheus.Registry

	saleLines    *prometheus.CounterVec
	unitsSold    *prometheus.CounterVec
	revenue      *prometheus.CounterVec
	unitsIn      prometheus.Counter
	receipts     *prometheus.CounterVec
	poLines      prometheus.Counter
	recalcParts  prometheus.Counter
	recalcSweeps prometheus.Counter
}

// NewInventory registra los contadores y los colectores de proceso y runtime.
func NewInventory() *Inventory {
	m := &Inventory{
		registry: prometheus.NewRegistry(),
		saleLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sale_lines_total",
			Help: "Líneas de venta finalizadas por canal.",
		}, []string{"channel"}),
		unitsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "units_sold_total",
			Help: "Unidades vendidas por canal.",
		}, []string{"channel"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_amount_total",
			Help: "Suma de subtotales vendidos por canal (moneda local).",
		}, []string{"channel"}),
		unitsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "units_received_total",
			Help: "Unidades recibidas de órdenes de compra.",
		}),
		receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "receipts_total",
			Help: "Recepciones registradas; completed=true si cerraron la línea.",
		}, []string{"completed"}),
		poLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "purchase_order_lines_total",
			Help: "Líneas de orden de compra creadas.",
		}),
		recalcParts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "recalc_parts_total",
			Help: "Partes recalculadas por barridos.",
		}),
		recalcSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "recalc_sweeps_total",
			Help: "Barridos de recálculo completados.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.saleLines, m.unitsSold, m.revenue, m.unitsIn, m.receipts, m.poLines, m.recalcParts, m.recalcSweeps,
	)
	return m
}

func (m *Inventory) SaleLine(channel string, qty int, subtotal decimal.Decimal) {
	m.saleLines.WithLabelValues(channel).Inc()
	m.unitsSold.WithLabelValues(channel).Add(float64(qty))
	m.revenue.WithLabelValues(channel).Add(subtotal.InexactFloat64())
}

func (m *Inventory) Receipt(qty int, lineCompleted bool) {
	m.unitsIn.Add(float64(qty))
	m.receipts.WithLabelValues(strconv.FormatBool(lineCompleted)).Inc()
}

func (m *Inventory) PurchaseOrderCreated(lines int) {
	m.poLines.Add(float64(lines))
}

func (m *Inventory) Recalculated(parts int) {
	m.recalcParts.Add(float64(parts))
	m.recalcSweeps.Inc()
}

// Registry para pruebas y colectores adicionales.
func (m *Inventory) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato de texto Prometheus.
func (m *Inventory) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
