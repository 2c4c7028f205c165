// Package memory implementa los repositorios sobre un almacén transaccional en proceso.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para las pruebas de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// state datos confirmados. Cada transacción trabaja sobre un clon y lo publica al confirmar.
type state struct {
	parts     map[string]entity.Part
	lines     map[int64]entity.PurchaseOrderLine
	sales     []entity.SalesLogEntry
	settings  *entity.Settings
	suppliers map[string]entity.Supplier

	nextLineID     int64
	nextSaleID     int64
	nextSupplierID int64
}

func newState() *state {
	return &state{
		parts:     map[string]entity.Part{},
		lines:     map[int64]entity.PurchaseOrderLine{},
		suppliers: map[string]entity.Supplier{},
	}
}

func (s *state) clone() *state {
	out := &state{
		parts:          make(map[string]entity.Part, len(s.parts)),
		lines:          make(map[int64]entity.PurchaseOrderLine, len(s.lines)),
		sales:          append([]entity.SalesLogEntry(nil), s.sales...),
		settings:       s.settings.Clone(),
		suppliers:      make(map[string]entity.Supplier, len(s.suppliers)),
		nextLineID:     s.nextLineID,
		nextSaleID:     s.nextSaleID,
		nextSupplierID: s.nextSupplierID,
	}
	for k, v := range s.parts {
		out.parts[k] = v
	}
	for k, v := range s.lines {
		out.lines[k] = v
	}
	for k, v := range s.suppliers {
		out.suppliers[k] = v
	}
	return out
}

// db acceso a un estado: confirmado (autocommit) o el de una transacción abierta.
type db interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// Store almacén en memoria. Las escrituras se serializan con un único cerrojo de escritura que se
// mantiene durante toda la transacción, de modo que las lecturas ...ForUpdate equivalen a filas
// bloqueadas. La espera por el cerrojo respeta la cancelación del contexto.
type Store struct {
	gate chan struct{}
	mu   sync.RWMutex
	st   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{gate: make(chan struct{}, 1), st: newState()}
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.runTx(ctx, fn)
}

// runTx toma el cerrojo de escritura, ejecuta fn sobre un clon y lo publica si fn no falla.
func (s *Store) runTx(ctx context.Context, fn func(st *state) error) error {
	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.gate }()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// txDB estado de trabajo de una transacción abierta.
type txDB struct {
	st *state
}

func (t txDB) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

func (t txDB) write(ctx context.Context, fn func(st *state) error) error {
	return t.read(ctx, fn)
}

// Parts repositorio de partes fuera de transacción.
func (s *Store) Parts() repository.PartRepository { return &partRepo{db: s} }

// PurchaseOrders repositorio de líneas de orden fuera de transacción.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return &purchaseOrderRepo{db: s} }

// SalesLog bitácora de ventas fuera de transacción.
func (s *Store) SalesLog() repository.SalesLogRepository { return &salesLogRepo{db: s} }

// Settings repositorio de configuración fuera de transacción.
func (s *Store) Settings() repository.SettingsRepository { return &settingsRepo{db: s} }

// Suppliers directorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{db: s} }

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	salesRepo repository.SalesLogRepository,
	settingsRepo repository.SettingsRepository,
) error) error {
	return s.runTx(ctx, func(st *state) error {
		tx := txDB{st: st}
		return fn(&partRepo{db: tx}, &salesLogRepo{db: tx}, &settingsRepo{db: tx})
	})
}

// RunPurchasing implementa purchasing.PurchasingTxRunner.
func (s *Store) RunPurchasing(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	lineRepo repository.PurchaseOrderRepository,
) error) error {
	return s.runTx(ctx, func(st *state) error {
		tx := txDB{st: st}
		return fn(&partRepo{db: tx}, &purchaseOrderRepo{db: tx})
	})
}

// RunSettings implementa usecase.SettingsTxRunner.
func (s *Store) RunSettings(ctx context.Context, fn func(settingsRepo repository.SettingsRepository) error) error {
	return s.runTx(ctx, func(st *state) error {
		return fn(&settingsRepo{db: txDB{st: st}})
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
