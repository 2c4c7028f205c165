package purchasing_test

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

type fakePDF struct {
	poID  string
	lines int
}

func (g *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, poID string, lines []*entity.PurchaseOrderLine) ([]byte, error) {
	g.poID, g.lines = poID, len(lines)
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	ledger *inventory.LedgerUseCase
	sales  *inventory.SaleUseCase
	po     *purchasing.PurchaseOrderUseCase
	pdf    *fakePDF
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T, configured bool) *fixture {
	t.Helper()
	log := logger.Nop()
	s := memory.NewStore()
	settingsUC := usecase.NewSettingsUseCase(s.Settings(), s, log)
	if configured {
		rate, freight := dec("4000"), dec("20000")
		_, err := settingsUC.Update(context.Background(), dto.UpdateSettingsRequest{ExchangeRate: &rate, FreightPerKg: &freight})
		require.NoError(t, err)
	}
	ledger := inventory.NewLedgerUseCase(s, s.Parts(), settingsUC, nil, log)
	pdf := &fakePDF{}
	return &fixture{
		ledger: ledger,
		sales:  inventory.NewSaleUseCase(s, ledger, s.SalesLog(), nil, log),
		po:     purchasing.NewPurchaseOrderUseCase(s, s.PurchaseOrders(), ledger, settingsUC, pdf, nil, log),
		pdf:    pdf,
	}
}

func line(partNumber string, qty int) dto.PurchaseOrderLineRequest {
	return dto.PurchaseOrderLineRequest{
		PartNumber:         partNumber,
		Quality:            "OEM",
		PartType:           "Motor",
		QtyOrdered:         qty,
		PurchaseCostSource: dec("10"),
		WeightKg:           dec("0.5"),
	}
}

// createOrder crea la orden y devuelve sus líneas en orden de ID.
func (f *fixture) createOrder(t *testing.T, lines ...dto.PurchaseOrderLineRequest) (string, []dto.PurchaseOrderLineResponse) {
	t.Helper()
	ctx := context.Background()
	created, err := f.po.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID:   "SUP-ABCD1234",
		SupplierName: "Importadora",
		Lines:        lines,
	})
	require.NoError(t, err)
	order, err := f.po.GetPurchaseOrder(ctx, created.POID)
	require.NoError(t, err)
	return created.POID, order.Lines
}

func TestCreatePurchaseOrder_IDYCostos(t *testing.T) {
	f := newFixture(t, true)
	poID, lines := f.createOrder(t, line("FIL-001", 3), line("FIL-002", 1))

	assert.Regexp(t, regexp.MustCompile(`^PO-\d{8}-[0-9A-F]{8}$`), poID)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, poID, l.POID)
		assert.Equal(t, entity.LineStatusShipping, l.Status)
		assert.Equal(t, 0, l.QtyReceived)
		assert.True(t, l.LandedCost.Equal(dec("50000")))
	}

	order, err := f.po.GetPurchaseOrder(context.Background(), poID)
	require.NoError(t, err)
	assert.True(t, order.TotalLanded.Equal(dec("200000")))
	assert.Equal(t, "SUP-ABCD1234", order.SupplierID)
}

func TestCreatePurchaseOrder_Validaciones(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.po.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.po.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{Lines: []dto.PurchaseOrderLineRequest{line("", 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.po.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{Lines: []dto.PurchaseOrderLineRequest{line("A", 0)}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreatePurchaseOrder_SinConfiguracion(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.po.CreatePurchaseOrder(context.Background(), dto.CreatePurchaseOrderRequest{
		Lines: []dto.PurchaseOrderLineRequest{line("A", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestReceive_CreaParteEnPrimeraRecepcion(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("NEW-1", 5))

	out, err := f.po.Receive(ctx, lines[0].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusShipping, out.Status)
	assert.Equal(t, 2, out.QtyReceived)

	p, err := f.ledger.GetPart(ctx, "NEW-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.AvailableQty)
	assert.Equal(t, entity.PartStatusInStock, p.Status)
	assert.Equal(t, "OEM", p.Quality)
	assert.True(t, p.LandedCost.Valid)
	assert.True(t, p.LandedCost.Decimal.Equal(dec("50000")))
	assert.False(t, p.SuggestedRetail.Valid)
}

func TestReceive_CompletaLaLinea(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("FIL-001", 3))
	id := lines[0].ID

	_, err := f.po.Receive(ctx, id, 1)
	require.NoError(t, err)
	out, err := f.po.Receive(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusReceived, out.Status)
	assert.Equal(t, 3, out.QtyReceived)

	p, err := f.ledger.GetPart(ctx, "FIL-001")
	require.NoError(t, err)
	assert.Equal(t, 3, p.AvailableQty)

	_, err = f.po.Receive(ctx, id, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	received, err := f.po.ListLines(ctx, entity.LineStatusReceived, 0, 0)
	require.NoError(t, err)
	assert.Len(t, received, 1)
	shipping, err := f.po.ListLines(ctx, entity.LineStatusShipping, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, shipping)
}

func TestReceive_SobreRecepcionNoCambiaNada(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("FIL-001", 2))

	_, err := f.po.Receive(ctx, lines[0].ID, 3)
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	_, err = f.ledger.GetPart(ctx, "FIL-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	order, _ := f.po.GetPurchaseOrder(ctx, lines[0].POID)
	assert.Equal(t, 0, order.Lines[0].QtyReceived)
}

func TestReceive_ParteExistenteAgotadaVuelveAStock(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.ledger.AddPart(ctx, dto.CreatePartRequest{PartNumber: "FIL-001", PurchaseCostSource: dec("1"), WeightKg: dec("1")})
	require.NoError(t, err)
	_, lines := f.createOrder(t, line("FIL-001", 4))

	_, err = f.po.Receive(ctx, lines[0].ID, 0)
	require.NoError(t, err)
	p, _ := f.ledger.GetPart(ctx, "FIL-001")
	assert.Equal(t, entity.PartStatusOutOfStock, p.Status)

	_, err = f.po.Receive(ctx, lines[0].ID, 4)
	require.NoError(t, err)
	p, _ = f.ledger.GetPart(ctx, "FIL-001")
	assert.Equal(t, 4, p.AvailableQty)
	assert.Equal(t, entity.PartStatusInStock, p.Status)
	assert.True(t, p.PurchaseCostSource.Equal(dec("1")), "la recepción no pisa la ficha existente")
}

func TestReceive_Errores(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.po.Receive(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.po.Receive(ctx, 1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestListLines_EstadoInvalido(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.po.ListLines(context.Background(), "Lost", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t, true)
	poID, _ := f.createOrder(t, line("A", 1), line("B", 2))

	data, name, err := f.po.RenderPDF(context.Background(), poID)
	require.NoError(t, err)
	assert.Equal(t, poID+".pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, 2, f.pdf.lines)

	_, _, err = f.po.RenderPDF(context.Background(), "PO-NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_PrimeraRecepcionEnCeroQuedaAgotada(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("NEW-0", 2))

	out, err := f.po.Receive(ctx, lines[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusShipping, out.Status)

	p, err := f.ledger.GetPart(ctx, "NEW-0")
	require.NoError(t, err)
	assert.Equal(t, 0, p.AvailableQty)
	assert.Equal(t, entity.PartStatusOutOfStock, p.Status)
}

func TestReceive_CantidadesEnormesNoDesbordan(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("P-1", 5))
	id := lines[0].ID

	_, err := f.po.Receive(ctx, id, 1)
	require.NoError(t, err)

	_, err = f.po.Receive(ctx, id, math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.po.Receive(ctx, id, entity.MaxQuantity)
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	order, err := f.po.GetPurchaseOrder(ctx, lines[0].POID)
	require.NoError(t, err)
	assert.Equal(t, 1, order.Lines[0].QtyReceived)
	assert.Equal(t, entity.LineStatusShipping, order.Lines[0].Status)
	p, err := f.ledger.GetPart(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.AvailableQty)
}

func TestReceive_DisponibleNoSuperaElTope(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.ledger.AddPart(ctx, dto.CreatePartRequest{PartNumber: "FULL", AvailableQty: entity.MaxQuantity})
	require.NoError(t, err)
	_, lines := f.createOrder(t, line("FULL", 1))

	_, err = f.po.Receive(ctx, lines[0].ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	p, err := f.ledger.GetPart(ctx, "FULL")
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, p.AvailableQty)
}

func TestCreatePurchaseOrder_CantidadSobreElTope(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.po.CreatePurchaseOrder(context.Background(), dto.CreatePurchaseOrderRequest{
		Lines: []dto.PurchaseOrderLineRequest{line("A", entity.MaxQuantity+1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Secuencia mixta de recepciones y carritos: tras cada paso el disponible no es negativo
// y ninguna línea recibe más de lo pedido.
func TestLedger_SecuenciaMixtaRespetaLimites(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, lines := f.createOrder(t, line("A", 10), line("B", 3))
	lineA, lineB := lines[0].ID, lines[1].ID

	sell := func(items ...dto.SaleItemRequest) func() error {
		return func() error {
			_, err := f.sales.FinalizeSale(ctx, dto.FinalizeSaleRequest{Items: items})
			return err
		}
	}
	receive := func(id int64, qty int) func() error {
		return func() error {
			_, err := f.po.Receive(ctx, id, qty)
			return err
		}
	}
	sale := func(pn, channel string, qty int) dto.SaleItemRequest {
		return dto.SaleItemRequest{PartNumber: pn, Channel: channel, Quantity: qty, PriceEach: dec("1")}
	}

	steps := []struct {
		name string
		run  func() error
		want error
	}{
		{"recibe A 0", receive(lineA, 0), nil},
		{"vende A sin stock", sell(sale("A", entity.ChannelRetail, 1)), domain.ErrInsufficientStock},
		{"recibe A 1", receive(lineA, 1), nil},
		{"vende A exacto", sell(sale("A", entity.ChannelRetail, 1)), nil},
		{"recibe A 4", receive(lineA, 4), nil},
		{"recibe B 3", receive(lineB, 3), nil},
		{"carrito A+B disponible+1", sell(sale("A", entity.ChannelRetail, 4), sale("B", entity.ChannelWholesale, 1), sale("A", entity.ChannelWholesale, 1)), domain.ErrInsufficientStock},
		{"carrito A+B exacto", sell(sale("B", entity.ChannelWholesale, 3), sale("A", entity.ChannelRetail, 4)), nil},
		{"vende A enorme", sell(sale("A", entity.ChannelRetail, math.MaxInt)), domain.ErrInvalidQuantity},
		{"recibe A enorme", receive(lineA, math.MaxInt), domain.ErrInvalidQuantity},
		{"recibe A pendiente+1", receive(lineA, 6), domain.ErrOverReceipt},
		{"recibe A pendiente", receive(lineA, 5), nil},
		{"recibe A cerrada", receive(lineA, 1), domain.ErrInvalidState},
		{"vende A todo", sell(sale("A", entity.ChannelWholesale, 5)), nil},
	}
	for i, st := range steps {
		err := st.run()
		if st.want == nil {
			require.NoError(t, err, st.name)
		} else {
			require.ErrorIs(t, err, st.want, st.name)
		}
		for _, pn := range []string{"A", "B"} {
			p, err := f.ledger.GetPart(ctx, pn)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p.AvailableQty, 0, fmt.Sprintf("paso %d (%s) parte %s", i, st.name, pn))
		}
		all, err := f.po.ListLines(ctx, "", 0, 0)
		require.NoError(t, err)
		for _, l := range all {
			assert.LessOrEqual(t, l.QtyReceived, l.QtyOrdered, fmt.Sprintf("paso %d (%s) línea %d", i, st.name, l.ID))
			assert.GreaterOrEqual(t, l.QtyReceived, 0)
		}
	}

	a, err := f.ledger.GetPart(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 0, a.AvailableQty)
	assert.Equal(t, entity.PartStatusOutOfStock, a.Status)
	assert.Equal(t, 5, a.SoldRetailQty)
	assert.Equal(t, 5, a.SoldWholesaleQty)
}
