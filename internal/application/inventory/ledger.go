package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/Repuestos-api/internal/domain/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// exportBatch tamaño de página al recorrer el inventario para exportar.
const exportBatch = 500

// LedgerUseCase dueño del estado de stock por parte: alta, edición, búsqueda y
// las operaciones ...InTx que otros casos de uso llaman dentro de su propia transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	pricing  ports.PricingProvider
	exporter StockExporter
	log      *logger.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. exporter puede ser nil (sin exportación).
func NewLedgerUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	pricing ports.PricingProvider,
	exporter StockExporter,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		partRepo: partRepo,
		pricing:  pricing,
		exporter: exporter,
		log:      log.Component("ledger"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddPart registra una parte nueva calculando sus costos con la configuración vigente.
func (uc *LedgerUseCase) AddPart(ctx context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	if in.PartNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidQuantity(in.AvailableQty) || in.PurchaseCostSource.IsNegative() || in.WeightKg.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	existing, err := uc.partRepo.GetByPartNumber(ctx, in.PartNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("parte %s: %w", in.PartNumber, domain.ErrDuplicatePart)
	}
	pricing, err := uc.pricing.GetPricingContext(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	part := &entity.Part{
		PartNumber:         in.PartNumber,
		PhotoPath:          in.PhotoPath,
		Quality:            in.Quality,
		PartType:           in.PartType,
		PartSubtype:        in.PartSubtype,
		CarMake:            in.CarMake,
		Manufacturer:       in.Manufacturer,
		ApplicableModels:   in.ApplicableModels,
		PurchaseCostSource: in.PurchaseCostSource,
		WeightKg:           in.WeightKg,
		WholesaleActual:    nullable(in.WholesaleActual),
		RetailActual:       nullable(in.RetailActual),
		Available:          in.AvailableQty,
		Status:             entity.StatusForQuantity(in.AvailableQty),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	applyCosts(part, pricing)

	if err := uc.partRepo.Create(ctx, part); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("parte %s: %w", in.PartNumber, domain.ErrDuplicatePart)
		}
		return nil, err
	}
	uc.log.Info().Str("part_number", part.PartNumber).Int("available", part.Available).Msg("parte registrada")
	return toPartResponse(part), nil
}

// GetPart obtiene una parte por número.
func (uc *LedgerUseCase) GetPart(ctx context.Context, partNumber string) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("parte %s: %w", partNumber, domain.ErrNotFound)
	}
	return toPartResponse(part), nil
}

// UpdatePart aplica un parche parcial con la fila bloqueada. No recalcula costos ni toca el estado:
// subir el disponible por esta vía no devuelve la parte a "In stock".
func (uc *LedgerUseCase) UpdatePart(ctx context.Context, partNumber string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if in.AvailableQty != nil && !entity.ValidQuantity(*in.AvailableQty) {
		return nil, domain.ErrInvalidQuantity
	}
	if (in.PurchaseCostSource != nil && in.PurchaseCostSource.IsNegative()) || (in.WeightKg != nil && in.WeightKg.IsNegative()) {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Part
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, _ repository.SalesLogRepository, _ repository.SettingsRepository) error {
		part, err := partRepo.GetForUpdate(ctx, partNumber)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("parte %s: %w", partNumber, domain.ErrNotFound)
		}
		applyPatch(part, in)
		part.UpdatedAt = uc.now()
		if err := partRepo.Update(ctx, part); err != nil {
			return err
		}
		updated = part
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(updated), nil
}

// Search busca partes con filtros conjuntivos, ordenadas por número de parte.
// page y page_size por debajo de 1 se rechazan; page_size por encima del máximo se recorta.
func (uc *LedgerUseCase) Search(ctx context.Context, in dto.PartSearchRequest) (*dto.PartListResponse, error) {
	if in.Page < 1 || in.PageSize < 1 {
		return nil, domain.ErrInvalidInput
	}
	if in.PageSize > dto.MaxPageSize {
		in.PageSize = dto.MaxPageSize
	}
	list, err := uc.partRepo.Search(ctx, toFilter(in), in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: in.Page, PageSize: in.PageSize},
	}, nil
}

// Export genera el archivo de stock con todas las partes que cumplen los filtros (sin paginar).
func (uc *LedgerUseCase) Export(ctx context.Context, in dto.PartSearchRequest) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportación no configurada")
	}
	filter := toFilter(in)
	var all []*entity.Part
	for offset := 0; ; offset += exportBatch {
		batch, err := uc.partRepo.Search(ctx, filter, exportBatch, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportBatch {
			break
		}
	}
	return uc.exporter.ExportParts(ctx, all)
}

// ApplyReceiptInTx suma qty al disponible usando el repositorio del caller (misma transacción).
// Si la parte no existe y seed != nil, la crea a partir de seed con disponible 0 antes de sumar.
// Pasa a "In stock" solo si el disponible resultante es > 0; nunca fuerza "Out of stock".
func (uc *LedgerUseCase) ApplyReceiptInTx(
	ctx context.Context,
	partRepo repository.PartRepository,
	partNumber string,
	qty int,
	seed *entity.Part,
	now time.Time,
) (*entity.Part, error) {
	if !entity.ValidQuantity(qty) {
		return nil, domain.ErrInvalidQuantity
	}
	if seed != nil {
		fresh := *seed
		fresh.PartNumber = partNumber
		fresh.Available = 0
		fresh.SoldWholesale = 0
		fresh.SoldRetail = 0
		fresh.Status = entity.PartStatusOutOfStock
		fresh.CreatedAt = now
		fresh.UpdatedAt = now
		if _, err := partRepo.CreateIfAbsent(ctx, &fresh); err != nil {
			return nil, err
		}
	}
	part, err := partRepo.GetForUpdate(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("parte %s: %w", partNumber, domain.ErrNotFound)
	}
	if qty > entity.MaxQuantity-part.Available {
		return nil, fmt.Errorf("parte %s: disponible %d + %d excede el tope: %w",
			partNumber, part.Available, qty, domain.ErrInvalidQuantity)
	}
	part.Available += qty
	if part.Available > 0 {
		part.Status = entity.PartStatusInStock
	}
	part.UpdatedAt = now
	if err := partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// SaleLine una línea ya validada que descuenta stock.
type SaleLine struct {
	PartNumber string
	Channel    string
	Qty        int
}

// ApplySaleInTx bloquea las partes en orden de número de parte, verifica que el total pedido por
// parte no supere el disponible y solo entonces descuenta. Ningún error deja cambios aplicados
// dentro de la transacción del caller.
func (uc *LedgerUseCase) ApplySaleInTx(
	ctx context.Context,
	partRepo repository.PartRepository,
	lines []SaleLine,
	now time.Time,
) (map[string]*entity.Part, error) {
	requested := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Qty <= 0 || l.Qty > entity.MaxQuantity || !entity.ValidChannel(l.Channel) {
			return nil, domain.ErrInvalidQuantity
		}
		// el disponible nunca supera MaxQuantity: un total mayor ya es stock insuficiente
		if requested[l.PartNumber] > entity.MaxQuantity-l.Qty {
			return nil, fmt.Errorf("parte %s: cantidad total excede el tope: %w", l.PartNumber, domain.ErrInsufficientStock)
		}
		requested[l.PartNumber] += l.Qty
	}
	keys := make([]string, 0, len(requested))
	for k := range requested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make(map[string]*entity.Part, len(keys))
	for _, pn := range keys {
		part, err := partRepo.GetForUpdate(ctx, pn)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, fmt.Errorf("parte %s: %w", pn, domain.ErrNotFound)
		}
		if requested[pn] > part.Available {
			return nil, fmt.Errorf("parte %s: solicitado %d, disponible %d: %w",
				pn, requested[pn], part.Available, domain.ErrInsufficientStock)
		}
		parts[pn] = part
	}

	for _, l := range lines {
		part := parts[l.PartNumber]
		part.Available -= l.Qty
		if l.Channel == entity.ChannelWholesale {
			part.SoldWholesale += l.Qty
		} else {
			part.SoldRetail += l.Qty
		}
		if part.Available == 0 {
			part.Status = entity.PartStatusOutOfStock
		}
		part.UpdatedAt = now
	}
	for _, pn := range keys {
		if err := partRepo.Update(ctx, parts[pn]); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

// applyCosts calcula los costos derivados con pricing y guarda la foto de tasa y flete.
func applyCosts(part *entity.Part, pricing entity.PricingContext) {
	c := invdomain.Compute(part.PurchaseCostSource, part.WeightKg, pricing.ExchangeRate, pricing.FreightPerKg)
	part.ExchangeRateUsed = pricing.ExchangeRate
	part.FreightPerKgUsed = pricing.FreightPerKg
	part.PurchaseCostLocal = decimal.NewNullDecimal(c.PurchaseCostLocal)
	part.ShippingCostLocal = decimal.NewNullDecimal(c.ShippingCostLocal)
	part.LandedCost = decimal.NewNullDecimal(c.LandedCost)
	part.SuggestedWholesale = decimal.NewNullDecimal(c.SuggestedWholesale)
	part.SuggestedRetail = decimal.NewNullDecimal(c.SuggestedRetail)
}

func applyPatch(part *entity.Part, in dto.UpdatePartRequest) {
	if in.PhotoPath != nil {
		part.PhotoPath = *in.PhotoPath
	}
	if in.Quality != nil {
		part.Quality = *in.Quality
	}
	if in.PartType != nil {
		part.PartType = *in.PartType
	}
	if in.PartSubtype != nil {
		part.PartSubtype = *in.PartSubtype
	}
	if in.CarMake != nil {
		part.CarMake = *in.CarMake
	}
	if in.Manufacturer != nil {
		part.Manufacturer = *in.Manufacturer
	}
	if in.ApplicableModels != nil {
		part.ApplicableModels = *in.ApplicableModels
	}
	if in.PurchaseCostSource != nil {
		part.PurchaseCostSource = *in.PurchaseCostSource
	}
	if in.WeightKg != nil {
		part.WeightKg = *in.WeightKg
	}
	if in.WholesaleActual != nil {
		part.WholesaleActual = decimal.NewNullDecimal(*in.WholesaleActual)
	}
	if in.RetailActual != nil {
		part.RetailActual = decimal.NewNullDecimal(*in.RetailActual)
	}
	if in.AvailableQty != nil {
		part.Available = *in.AvailableQty
	}
}

func toFilter(in dto.PartSearchRequest) repository.PartFilter {
	return repository.PartFilter{
		PartNumber:       strings.TrimSpace(in.PartNumber),
		ApplicableModels: strings.TrimSpace(in.ApplicableModels),
		Status:           in.Status,
		PartType:         in.PartType,
		PartSubtype:      in.PartSubtype,
		CarMake:          in.CarMake,
		Manufacturer:     in.Manufacturer,
	}
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		PartNumber:         p.PartNumber,
		PhotoPath:          p.PhotoPath,
		Quality:            p.Quality,
		PartType:           p.PartType,
		PartSubtype:        p.PartSubtype,
		CarMake:            p.CarMake,
		Manufacturer:       p.Manufacturer,
		ApplicableModels:   p.ApplicableModels,
		PurchaseCostSource: p.PurchaseCostSource,
		WeightKg:           p.WeightKg,
		ExchangeRateUsed:   p.ExchangeRateUsed,
		FreightPerKgUsed:   p.FreightPerKgUsed,
		PurchaseCostLocal:  p.PurchaseCostLocal,
		ShippingCostLocal:  p.ShippingCostLocal,
		LandedCost:         p.LandedCost,
		SuggestedWholesale: p.SuggestedWholesale,
		SuggestedRetail:    p.SuggestedRetail,
		WholesaleActual:    p.WholesaleActual,
		RetailActual:       p.RetailActual,
		AvailableQty:       p.Available,
		SoldWholesaleQty:   p.SoldWholesale,
		SoldRetailQty:      p.SoldRetail,
		Status:             p.Status,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
