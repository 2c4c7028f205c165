package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/purchasing"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	LedgerUC    *inventory.LedgerUseCase
	SaleUC      *inventory.SaleUseCase
	RecalcUC    *inventory.RecalcUseCase
	PurchaseUC  *purchasing.PurchaseOrderUseCase
	SettingsUC  *usecase.SettingsUseCase
	SupplierUC  *usecase.SupplierUseCase
	Metrics     nethttp.Handler // nil = sin /metrics
	MetricsPath string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.RecalcUC)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)
	api.Post("/settings/recalc", settingsHandler.Recalc)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	api.Post("/suppliers", supplierHandler.Create)
	api.Get("/suppliers", supplierHandler.List)

	// /export antes de /:part_number
	partHandler := NewPartHandler(deps.LedgerUC)
	inv := api.Group("/inventory")
	inv.Post("/", partHandler.Create)
	inv.Get("/", partHandler.Search)
	inv.Get("/export", partHandler.Export)
	inv.Get("/:part_number", partHandler.GetByPartNumber)
	inv.Put("/:part_number", partHandler.Update)

	saleHandler := NewSaleHandler(deps.SaleUC)
	api.Post("/sales/finalize", saleHandler.Finalize)
	api.Get("/sales", saleHandler.List)

	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	pos := api.Group("/purchase-orders")
	pos.Post("/", poHandler.Create)
	pos.Get("/:po_id", poHandler.GetByID)
	pos.Get("/:po_id/pdf", poHandler.DownloadPDF)
	api.Get("/intransit", poHandler.ListInTransit)
	api.Post("/intransit/:id/receive", poHandler.Receive)
}
