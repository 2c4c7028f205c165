package inventory_test

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// ─── helpers ────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	settings *usecase.SettingsUseCase
	ledger   *inventory.LedgerUseCase
	sales    *inventory.SaleUseCase
	recalc   *inventory.RecalcUseCase
	exporter *countingExporter
}

type countingExporter struct {
	parts int
}

func (e *countingExporter) ExportParts(_ context.Context, parts []*entity.Part) ([]byte, error) {
	e.parts = len(parts)
	return []byte("ok"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Nop()
	s := memory.NewStore()
	settingsUC := usecase.NewSettingsUseCase(s.Settings(), s, log)
	exp := &countingExporter{}
	ledger := inventory.NewLedgerUseCase(s, s.Parts(), settingsUC, exp, log)
	return &fixture{
		store:    s,
		settings: settingsUC,
		ledger:   ledger,
		sales:    inventory.NewSaleUseCase(s, ledger, s.SalesLog(), nil, log),
		recalc:   inventory.NewRecalcUseCase(s, nil, log),
		exporter: exp,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) configure(t *testing.T, rate, freight string) {
	t.Helper()
	r, fr := dec(rate), dec(freight)
	_, err := f.settings.Update(context.Background(), dto.UpdateSettingsRequest{ExchangeRate: &r, FreightPerKg: &fr})
	require.NoError(t, err)
}

func (f *fixture) addPart(t *testing.T, partNumber string, available int) *dto.PartResponse {
	t.Helper()
	out, err := f.ledger.AddPart(context.Background(), dto.CreatePartRequest{
		PartNumber:         partNumber,
		PurchaseCostSource: dec("10"),
		WeightKg:           dec("0.5"),
		AvailableQty:       available,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) available(t *testing.T, partNumber string) int {
	t.Helper()
	p, err := f.ledger.GetPart(context.Background(), partNumber)
	require.NoError(t, err)
	return p.AvailableQty
}

func item(partNumber, channel string, qty int) dto.SaleItemRequest {
	return dto.SaleItemRequest{PartNumber: partNumber, Channel: channel, Quantity: qty, PriceEach: dec("1000")}
}

// ─── AddPart ────────────────────────────────────────────────────────────────

func TestAddPart_CalculaCostosYEstado(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")

	p := f.addPart(t, "  FIL-001 ", 3)
	assert.Equal(t, "FIL-001", p.PartNumber)
	assert.Equal(t, entity.PartStatusInStock, p.Status)
	assert.True(t, p.ExchangeRateUsed.Equal(dec("4000")))
	assert.True(t, p.PurchaseCostLocal.Decimal.Equal(dec("40000")))
	assert.True(t, p.ShippingCostLocal.Decimal.Equal(dec("10000")))
	assert.True(t, p.LandedCost.Decimal.Equal(dec("50000")))
	assert.True(t, p.SuggestedWholesale.Decimal.Equal(dec("125000")))
	assert.True(t, p.SuggestedRetail.Decimal.Equal(dec("175000")))

	empty := f.addPart(t, "FIL-002", 0)
	assert.Equal(t, entity.PartStatusOutOfStock, empty.Status)
}

func TestAddPart_Duplicada(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "FIL-001", 1)

	_, err := f.ledger.AddPart(context.Background(), dto.CreatePartRequest{PartNumber: "FIL-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePart)
}

func TestAddPart_SinConfiguracion(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.AddPart(context.Background(), dto.CreatePartRequest{PartNumber: "FIL-001"})
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestAddPart_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	ctx := context.Background()

	_, err := f.ledger.AddPart(ctx, dto.CreatePartRequest{PartNumber: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.AddPart(ctx, dto.CreatePartRequest{PartNumber: "X", AvailableQty: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ─── GetPart / UpdatePart / Search ──────────────────────────────────────────

func TestGetPart_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.GetPart(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePart_NoReviveEstado(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "FIL-001", 0)

	qty := 7
	model := "Corolla"
	out, err := f.ledger.UpdatePart(context.Background(), "FIL-001", dto.UpdatePartRequest{
		AvailableQty:     &qty,
		ApplicableModels: &model,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.AvailableQty)
	assert.Equal(t, "Corolla", out.ApplicableModels)
	assert.Equal(t, entity.PartStatusOutOfStock, out.Status)
}

func TestUpdatePart_NoRecalculaCostos(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "FIL-001", 1)

	cost := dec("99")
	out, err := f.ledger.UpdatePart(context.Background(), "FIL-001", dto.UpdatePartRequest{PurchaseCostSource: &cost})
	require.NoError(t, err)
	assert.True(t, out.PurchaseCostSource.Equal(cost))
	assert.True(t, out.LandedCost.Decimal.Equal(dec("50000")))
}

func TestUpdatePart_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.UpdatePart(context.Background(), "NOPE", dto.UpdatePartRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_Paginacion(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	for _, pn := range []string{"C-3", "A-1", "B-2"} {
		f.addPart(t, pn, 1)
	}
	ctx := context.Background()

	_, err := f.ledger.Search(ctx, dto.PartSearchRequest{PageRequest: dto.PageRequest{Page: 0, PageSize: 10}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.Search(ctx, dto.PartSearchRequest{PageRequest: dto.PageRequest{Page: 1, PageSize: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.ledger.Search(ctx, dto.PartSearchRequest{PageRequest: dto.PageRequest{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "C-3", out.Items[0].PartNumber)

	out, err = f.ledger.Search(ctx, dto.PartSearchRequest{PageRequest: dto.PageRequest{Page: 1, PageSize: 1000}})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageSize, out.Page.PageSize)
	assert.Len(t, out.Items, 3)
}

func TestExport_SinPaginar(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	for _, pn := range []string{"A-1", "A-2", "B-1"} {
		f.addPart(t, pn, 1)
	}
	data, err := f.ledger.Export(context.Background(), dto.PartSearchRequest{PartNumber: "a-"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 2, f.exporter.parts)
}

// ─── FinalizeSale ───────────────────────────────────────────────────────────

func TestFinalizeSale_DescuentaYRegistra(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "A", 5)
	f.addPart(t, "B", 2)
	ctx := context.Background()

	out, err := f.sales.FinalizeSale(ctx, dto.FinalizeSaleRequest{
		Items: []dto.SaleItemRequest{
			item("A", entity.ChannelWholesale, 2),
			item("B", entity.ChannelRetail, 2),
			item("A", entity.ChannelRetail, 1),
		},
		Note: "mostrador",
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "A", out[0].PartNumber)
	assert.Equal(t, "B", out[1].PartNumber)
	assert.True(t, out[0].Subtotal.Equal(dec("2000")))
	assert.Equal(t, "mostrador", out[2].Notes)

	a, err := f.ledger.GetPart(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, a.AvailableQty)
	assert.Equal(t, 2, a.SoldWholesaleQty)
	assert.Equal(t, 1, a.SoldRetailQty)
	assert.Equal(t, entity.PartStatusInStock, a.Status)

	b, err := f.ledger.GetPart(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 0, b.AvailableQty)
	assert.Equal(t, entity.PartStatusOutOfStock, b.Status)

	logged, err := f.sales.ListSales(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, logged, 3)
}

func TestFinalizeSale_TodoONada(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "A", 5)
	f.addPart(t, "B", 1)
	ctx := context.Background()

	_, err := f.sales.FinalizeSale(ctx, dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{
		item("A", entity.ChannelRetail, 2),
		item("B", entity.ChannelRetail, 2),
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.available(t, "A"))
	assert.Equal(t, 1, f.available(t, "B"))

	logged, err := f.sales.ListSales(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestFinalizeSale_LineasRepetidasSeSuman(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	f.addPart(t, "A", 3)

	_, err := f.sales.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{
		item("A", entity.ChannelRetail, 2),
		item("A", entity.ChannelWholesale, 2),
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.available(t, "A"))
}

func TestFinalizeSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	f.addPart(t, "A", 3)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.FinalizeSaleRequest
		want error
	}{
		{"carrito vacío", dto.FinalizeSaleRequest{}, domain.ErrInvalidInput},
		{"sin número de parte", dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{item(" ", entity.ChannelRetail, 1)}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{item("A", entity.ChannelRetail, 0)}}, domain.ErrInvalidQuantity},
		{"canal inválido", dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{item("A", "Online", 1)}}, domain.ErrInvalidQuantity},
		{"precio cero", dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{{PartNumber: "A", Channel: entity.ChannelRetail, Quantity: 1}}}, domain.ErrInvalidQuantity},
		{"parte inexistente", dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{item("NOPE", entity.ChannelRetail, 1)}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales.FinalizeSale(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 3, f.available(t, "A"))
}

func TestFinalizeSale_CantidadesEnormesNoDesbordan(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	f.addPart(t, "P-1", 5)
	ctx := context.Background()

	_, err := f.sales.FinalizeSale(ctx, dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{
		item("P-1", entity.ChannelWholesale, math.MaxInt),
		item("P-1", entity.ChannelRetail, 2),
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.sales.FinalizeSale(ctx, dto.FinalizeSaleRequest{Items: []dto.SaleItemRequest{
		item("P-1", entity.ChannelWholesale, entity.MaxQuantity),
		item("P-1", entity.ChannelRetail, entity.MaxQuantity),
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := f.ledger.GetPart(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.AvailableQty)
	assert.Equal(t, 0, p.SoldWholesaleQty)
	assert.Equal(t, entity.PartStatusInStock, p.Status)
}

func TestApplySaleInTx_RechazaCantidadFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	f.addPart(t, "P-1", 5)
	ctx := context.Background()

	err := f.store.Run(ctx, func(parts repository.PartRepository, _ repository.SalesLogRepository, _ repository.SettingsRepository) error {
		_, err := f.ledger.ApplySaleInTx(ctx, parts, []inventory.SaleLine{
			{PartNumber: "P-1", Channel: entity.ChannelRetail, Qty: 2},
			{PartNumber: "P-1", Channel: entity.ChannelWholesale, Qty: math.MaxInt},
		}, time.Now())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 5, f.available(t, "P-1"))
}

func TestAddPart_DisponibleSobreElTope(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	_, err := f.ledger.AddPart(context.Background(), dto.CreatePartRequest{PartNumber: "X", AvailableQty: entity.MaxQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestFinalizeSale_ConcurrenteNoSobrevende(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "1", "1")
	f.addPart(t, "A", 10)
	f.addPart(t, "B", 10)

	var (
		wg   sync.WaitGroup
		ok   atomic.Int32
		fail atomic.Int32
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// orden alterno de líneas para cruzar cerrojos
			items := []dto.SaleItemRequest{item("A", entity.ChannelRetail, 1), item("B", entity.ChannelRetail, 1)}
			if i%2 == 1 {
				items[0], items[1] = items[1], items[0]
			}
			_, err := f.sales.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{Items: items})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				fail.Add(1)
				return
			}
			ok.Add(1)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(15), fail.Load())
	assert.Equal(t, 0, f.available(t, "A"))
	assert.Equal(t, 0, f.available(t, "B"))
}

// ─── RecalcAll ──────────────────────────────────────────────────────────────

func TestRecalcAll_AplicaTasaNuevaEIdempotente(t *testing.T) {
	f := newFixture(t)
	f.configure(t, "4000", "20000")
	f.addPart(t, "A", 1)
	f.addPart(t, "B", 0)
	ctx := context.Background()

	f.configure(t, "5000", "20000")
	n, err := f.recalc.RecalcAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	first, err := f.ledger.GetPart(ctx, "A")
	require.NoError(t, err)
	assert.True(t, first.ExchangeRateUsed.Equal(dec("5000")))
	assert.True(t, first.LandedCost.Decimal.Equal(dec("60000")))
	assert.True(t, first.SuggestedRetail.Decimal.Equal(dec("210000")))

	_, err = f.recalc.RecalcAll(ctx)
	require.NoError(t, err)
	second, err := f.ledger.GetPart(ctx, "A")
	require.NoError(t, err)
	assert.True(t, second.LandedCost.Decimal.Equal(first.LandedCost.Decimal))
	assert.True(t, second.SuggestedWholesale.Decimal.Equal(first.SuggestedWholesale.Decimal))

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, s.LastRecalc)
}

func TestRecalcAll_SinConfiguracion(t *testing.T) {
	f := newFixture(t)
	_, err := f.recalc.RecalcAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}
