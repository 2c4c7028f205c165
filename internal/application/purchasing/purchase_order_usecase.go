package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// Límites del tablero en tránsito.
const (
	defaultLinesLimit = 100
	maxLinesLimit     = 500
)

// PurchaseOrderUseCase seguimiento de órdenes de compra y recepción de mercancía.
type PurchaseOrderUseCase struct {
	txRunner  PurchasingTxRunner
	lineRepo  repository.PurchaseOrderRepository
	receiver  InventoryReceiver
	pricing   ports.PricingProvider
	generator PurchaseOrderPDFGenerator
	metrics   ports.InventoryMetrics
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewPurchaseOrderUseCase construye el caso de uso. generator y metrics pueden ser nil.
func NewPurchaseOrderUseCase(
	txRunner PurchasingTxRunner,
	lineRepo repository.PurchaseOrderRepository,
	receiver InventoryReceiver,
	pricing ports.PricingProvider,
	generator PurchaseOrderPDFGenerator,
	metrics ports.InventoryMetrics,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PurchaseOrderUseCase{
		txRunner:  txRunner,
		lineRepo:  lineRepo,
		receiver:  receiver,
		pricing:   pricing,
		generator: generator,
		metrics:   metrics,
		log:       log.Component("purchasing"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
}

// CreatePurchaseOrder crea todas las líneas en un lote con un po_id compartido.
// El costo puesto de cada línea se calcula con la configuración vigente.
func (uc *PurchaseOrderUseCase) CreatePurchaseOrder(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderCreatedResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.PartNumber) == "" {
			return nil, fmt.Errorf("línea %d sin número de parte: %w", i+1, domain.ErrInvalidInput)
		}
		if l.QtyOrdered <= 0 || l.QtyOrdered > entity.MaxQuantity || l.PurchaseCostSource.IsNegative() || l.WeightKg.IsNegative() {
			return nil, fmt.Errorf("línea %d (%s): %w", i+1, l.PartNumber, domain.ErrInvalidQuantity)
		}
	}
	pricing, err := uc.pricing.GetPricingContext(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	poID := uc.purchaseOrderID(now)
	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		costs := invdomain.Compute(l.PurchaseCostSource, l.WeightKg, pricing.ExchangeRate, pricing.FreightPerKg)
		lines = append(lines, &entity.PurchaseOrderLine{
			POID:               poID,
			OrderDate:          now,
			SupplierID:         in.SupplierID,
			SupplierName:       in.SupplierName,
			PartNumber:         strings.TrimSpace(l.PartNumber),
			Quality:            l.Quality,
			PartType:           l.PartType,
			PartSubtype:        l.PartSubtype,
			CarMake:            l.CarMake,
			Manufacturer:       l.Manufacturer,
			QtyOrdered:         l.QtyOrdered,
			QtyReceived:        0,
			PurchaseCostSource: l.PurchaseCostSource,
			WeightKg:           l.WeightKg,
			ExchangeRateUsed:   pricing.ExchangeRate,
			FreightPerKgUsed:   pricing.FreightPerKg,
			LandedCost:         costs.LandedCost,
			Status:             entity.LineStatusShipping,
			Notes:              l.Notes,
			PhotoPath:          l.PhotoPath,
		})
	}

	err = uc.txRunner.RunPurchasing(ctx, func(_ repository.PartRepository, lineRepo repository.PurchaseOrderRepository) error {
		return lineRepo.CreateLines(ctx, lines)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PurchaseOrderCreated(len(lines))
	uc.log.Info().Str("po_id", poID).Str("supplier_id", in.SupplierID).Int("lines", len(lines)).Msg("orden de compra creada")
	return &dto.PurchaseOrderCreatedResponse{POID: poID, Lines: len(lines)}, nil
}

// Receive registra la llegada de qty unidades de una línea y las suma al inventario en la misma
// transacción. Bloquea primero la línea y luego la parte.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, lineID int64, qty int) (*dto.InTransitLineResponse, error) {
	if !entity.ValidQuantity(qty) {
		return nil, domain.ErrInvalidQuantity
	}
	now := uc.now()
	var received *entity.PurchaseOrderLine
	err := uc.txRunner.RunPurchasing(ctx, func(partRepo repository.PartRepository, lineRepo repository.PurchaseOrderRepository) error {
		line, err := lineRepo.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("línea %d: %w", lineID, domain.ErrNotFound)
		}
		if line.Status != entity.LineStatusShipping {
			return fmt.Errorf("línea %d en estado %s: %w", lineID, line.Status, domain.ErrInvalidState)
		}
		if qty > line.Pending() {
			return fmt.Errorf("línea %d: pendiente %d, recibido %d: %w", lineID, line.Pending(), qty, domain.ErrOverReceipt)
		}

		if _, err := uc.receiver.ApplyReceiptInTx(ctx, partRepo, line.PartNumber, qty, seedFromLine(line), now); err != nil {
			return err
		}
		line.QtyReceived += qty
		if line.QtyReceived == line.QtyOrdered {
			line.Status = entity.LineStatusReceived
		}
		if err := lineRepo.UpdateReceipt(ctx, line); err != nil {
			return err
		}
		received = line
		return nil
	})
	if err != nil {
		return nil, err
	}

	completed := received.Status == entity.LineStatusReceived
	uc.metrics.Receipt(qty, completed)
	uc.log.Info().
		Int64("line_id", received.ID).
		Str("po_id", received.POID).
		Str("part_number", received.PartNumber).
		Int("qty", qty).
		Bool("completed", completed).
		Msg("recepción registrada")
	return &dto.InTransitLineResponse{
		ID:          received.ID,
		POID:        received.POID,
		Status:      received.Status,
		QtyOrdered:  received.QtyOrdered,
		QtyReceived: received.QtyReceived,
		PartNumber:  received.PartNumber,
	}, nil
}

// GetPurchaseOrder devuelve todas las líneas de una orden con el total puesto.
func (uc *PurchaseOrderUseCase) GetPurchaseOrder(ctx context.Context, poID string) (*dto.PurchaseOrderResponse, error) {
	lines, err := uc.loadOrder(ctx, poID)
	if err != nil {
		return nil, err
	}
	first := lines[0]
	out := &dto.PurchaseOrderResponse{
		POID:         first.POID,
		SupplierID:   first.SupplierID,
		SupplierName: first.SupplierName,
		OrderDate:    first.OrderDate,
		TotalLanded:  decimal.Zero,
		Lines:        make([]dto.PurchaseOrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.TotalLanded = out.TotalLanded.Add(l.LandedCost.Mul(decimal.NewFromInt(int64(l.QtyOrdered))))
		out.Lines = append(out.Lines, toLineResponse(l))
	}
	return out, nil
}

// ListLines tablero en tránsito: líneas por estado (vacío = todas), ordenadas por ID.
func (uc *PurchaseOrderUseCase) ListLines(ctx context.Context, status string, limit, offset int) ([]dto.PurchaseOrderLineResponse, error) {
	switch status {
	case "", entity.LineStatusShipping, entity.LineStatusReceived:
	default:
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultLinesLimit
	}
	if limit > maxLinesLimit {
		limit = maxLinesLimit
	}
	if offset < 0 {
		offset = 0
	}
	lines, err := uc.lineRepo.ListLines(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, toLineResponse(l))
	}
	return out, nil
}

// RenderPDF genera la hoja de la orden. Retorna (pdf, nombre de archivo).
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, poID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("generador PDF no configurado")
	}
	lines, err := uc.loadOrder(ctx, poID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GeneratePurchaseOrderPDF(ctx, poID, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar orden %s: %w", poID, err)
	}
	return pdf, poID + ".pdf", nil
}

func (uc *PurchaseOrderUseCase) loadOrder(ctx context.Context, poID string) ([]*entity.PurchaseOrderLine, error) {
	poID = strings.TrimSpace(poID)
	if poID == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.lineRepo.ListByPO(ctx, poID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("orden %s: %w", poID, domain.ErrNotFound)
	}
	return lines, nil
}

// purchaseOrderID PO-YYYYMMDD-xxxxxxxx.
func (uc *PurchaseOrderUseCase) purchaseOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uc.newID(), "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), strings.ToUpper(suffix))
}

// seedFromLine datos para crear la parte en su primera recepción: la clasificación y la foto de
// costos de la línea. Solo se arrastra el costo puesto; el resto de derivados queda nulo.
func seedFromLine(l *entity.PurchaseOrderLine) *entity.Part {
	return &entity.Part{
		PartNumber:         l.PartNumber,
		PhotoPath:          l.PhotoPath,
		Quality:            l.Quality,
		PartType:           l.PartType,
		PartSubtype:        l.PartSubtype,
		CarMake:            l.CarMake,
		Manufacturer:       l.Manufacturer,
		PurchaseCostSource: l.PurchaseCostSource,
		WeightKg:           l.WeightKg,
		ExchangeRateUsed:   l.ExchangeRateUsed,
		FreightPerKgUsed:   l.FreightPerKgUsed,
		LandedCost:         decimal.NewNullDecimal(l.LandedCost),
	}
}

func toLineResponse(l *entity.PurchaseOrderLine) dto.PurchaseOrderLineResponse {
	return dto.PurchaseOrderLineResponse{
		ID:                 l.ID,
		POID:               l.POID,
		OrderDate:          l.OrderDate,
		SupplierID:         l.SupplierID,
		SupplierName:       l.SupplierName,
		PartNumber:         l.PartNumber,
		Quality:            l.Quality,
		PartType:           l.PartType,
		PartSubtype:        l.PartSubtype,
		CarMake:            l.CarMake,
		Manufacturer:       l.Manufacturer,
		QtyOrdered:         l.QtyOrdered,
		QtyReceived:        l.QtyReceived,
		PurchaseCostSource: l.PurchaseCostSource,
		WeightKg:           l.WeightKg,
		ExchangeRateUsed:   l.ExchangeRateUsed,
		FreightPerKgUsed:   l.FreightPerKgUsed,
		LandedCost:         l.LandedCost,
		Status:             l.Status,
		Notes:              l.Notes,
		PhotoPath:          l.PhotoPath,
	}
}
