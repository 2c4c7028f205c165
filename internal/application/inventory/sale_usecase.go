package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// Límites del listado de la bitácora de ventas.
const (
	defaultSalesLimit = 100
	maxSalesLimit     = 500
)

// SaleUseCase cierra carritos de venta contra el libro de inventario.
type SaleUseCase struct {
	txRunner  TxRunner
	ledger    *LedgerUseCase
	salesRepo repository.SalesLogRepository
	metrics   ports.InventoryMetrics
	log       *logger.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso. metrics nil = sin métricas.
func NewSaleUseCase(
	txRunner TxRunner,
	ledger *LedgerUseCase,
	salesRepo repository.SalesLogRepository,
	metrics ports.InventoryMetrics,
	log *logger.Logger,
) *SaleUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &SaleUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		salesRepo: salesRepo,
		metrics:   metrics,
		log:       log.Component("sales"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// FinalizeSale valida todo el carrito, descuenta stock y escribe la bitácora en una sola transacción.
// O se aplican todas las líneas o ninguna. Devuelve las entradas en el orden del carrito.
func (uc *SaleUseCase) FinalizeSale(ctx context.Context, in dto.FinalizeSaleRequest) ([]dto.SalesLogResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]SaleLine, 0, len(in.Items))
	for i, it := range in.Items {
		pn := strings.TrimSpace(it.PartNumber)
		if pn == "" {
			return nil, fmt.Errorf("línea %d sin número de parte: %w", i+1, domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 || it.Quantity > entity.MaxQuantity || !it.PriceEach.IsPositive() {
			return nil, fmt.Errorf("línea %d (%s): %w", i+1, pn, domain.ErrInvalidQuantity)
		}
		if !entity.ValidChannel(it.Channel) {
			return nil, fmt.Errorf("línea %d canal %q: %w", i+1, it.Channel, domain.ErrInvalidQuantity)
		}
		in.Items[i].PartNumber = pn
		lines = append(lines, SaleLine{PartNumber: pn, Channel: it.Channel, Qty: it.Quantity})
	}

	now := uc.now()
	entries := make([]*entity.SalesLogEntry, 0, len(in.Items))
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, salesRepo repository.SalesLogRepository, _ repository.SettingsRepository) error {
		if _, err := uc.ledger.ApplySaleInTx(ctx, partRepo, lines, now); err != nil {
			return err
		}
		for _, it := range in.Items {
			entry := &entity.SalesLogEntry{
				Date:       now,
				PartNumber: it.PartNumber,
				Channel:    it.Channel,
				Qty:        it.Quantity,
				PriceEach:  it.PriceEach,
				Subtotal:   it.PriceEach.Mul(decimalInt(it.Quantity)),
				Notes:      in.Note,
			}
			if err := salesRepo.Create(ctx, entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.SalesLogResponse, 0, len(entries))
	for _, e := range entries {
		uc.metrics.SaleLine(e.Channel, e.Qty, e.Subtotal)
		out = append(out, toSalesLogResponse(e))
	}
	uc.log.Info().Int("lines", len(entries)).Msg("venta finalizada")
	return out, nil
}

// ListSales lista la bitácora, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, partNumber string, limit, offset int) ([]dto.SalesLogResponse, error) {
	if limit <= 0 {
		limit = defaultSalesLimit
	}
	if limit > maxSalesLimit {
		limit = maxSalesLimit
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.salesRepo.List(ctx, strings.TrimSpace(partNumber), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesLogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toSalesLogResponse(e))
	}
	return out, nil
}

func toSalesLogResponse(e *entity.SalesLogEntry) dto.SalesLogResponse {
	return dto.SalesLogResponse{
		ID:         e.ID,
		Date:       e.Date,
		PartNumber: e.PartNumber,
		Channel:    e.Channel,
		Qty:        e.Qty,
		PriceEach:  e.PriceEach,
		Subtotal:   e.Subtotal,
		Notes:      e.Notes,
	}
}

func decimalInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
