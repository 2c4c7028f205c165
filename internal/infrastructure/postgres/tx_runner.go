package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*TxRunner)(nil)
	_ purchasing.PurchasingTxRunner = (*TxRunner)(nil)
	_ usecase.SettingsTxRunner      = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia la transacción, ejecuta fn y hace Commit; cualquier error deja Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del libro de inventario (ventas, edición de partes, recálculo).
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	salesRepo repository.SalesLogRepository,
	settingsRepo repository.SettingsRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewSalesLogRepository(tx), NewSettingsRepository(tx))
	})
}

// RunPurchasing transacción de órdenes de compra: líneas y partes (recepción).
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	lineRepo repository.PurchaseOrderRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewPurchaseOrderRepository(tx))
	})
}

// RunSettings transacción sobre la fila de configuración.
func (r *TxRunner) RunSettings(ctx context.Context, fn func(settingsRepo repository.SettingsRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewSettingsRepository(tx))
	})
}
