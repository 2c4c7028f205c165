package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	infraexcel "github.com/jhoicas/Repuestos-api/internal/infrastructure/excel"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	inframetrics "github.com/jhoicas/Repuestos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Repuestos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// txRunner lo implementan tanto postgres.TxRunner como memory.Store.
type txRunner interface {
	inventory.TxRunner
	purchasing.PurchasingTxRunner
	usecase.SettingsTxRunner
}

type stores struct {
	tx        txRunner
	parts     repository.PartRepository
	lines     repository.PurchaseOrderRepository
	sales     repository.SalesLogRepository
	settings  repository.SettingsRepository
	suppliers repository.SupplierRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	var (
		invMetrics     ports.InventoryMetrics
		metricsHandler nethttp.Handler
	)
	if cfg.Metrics.Enabled {
		m := inframetrics.NewInventory()
		invMetrics, metricsHandler = m, m.Handler()
	}

	settingsUC := usecase.NewSettingsUseCase(st.settings, st.tx, log)
	supplierUC := usecase.NewSupplierUseCase(st.suppliers, log)
	ledgerUC := inventory.NewLedgerUseCase(st.tx, st.parts, settingsUC, infraexcel.NewStockExporter(), log)
	saleUC := inventory.NewSaleUseCase(st.tx, ledgerUC, st.sales, invMetrics, log)
	recalcUC := inventory.NewRecalcUseCase(st.tx, invMetrics, log)
	purchaseUC := purchasing.NewPurchaseOrderUseCase(
		st.tx, st.lines, ledgerUC, settingsUC,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), invMetrics, log,
	)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	app.Use(recover.New())

	if cfg.App.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Repuestos API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		LedgerUC:    ledgerUC,
		SaleUC:      saleUC,
		RecalcUC:    recalcUC,
		PurchaseUC:  purchaseUC,
		SettingsUC:  settingsUC,
		SupplierUC:  supplierUC,
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
	})

	addr := cfg.HTTP.Addr()
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", addr).Msg("servidor escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("servidor detenido")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		s := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{
			tx:        s,
			parts:     s.Parts(),
			lines:     s.PurchaseOrders(),
			sales:     s.SalesLog(),
			settings:  s.Settings(),
			suppliers: s.Suppliers(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool),
		parts:     postgres.NewPartRepository(pool),
		lines:     postgres.NewPurchaseOrderRepository(pool),
		sales:     postgres.NewSalesLogRepository(pool),
		settings:  postgres.NewSettingsRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		close:     pool.Close,
	}, nil
}
