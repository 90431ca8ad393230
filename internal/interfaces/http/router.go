package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/application/catalog"
	"github.com/mdhome/bella-api/internal/application/ledger"
	"github.com/mdhome/bella-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	LedgerUC  *ledger.UseCase
	ReportsUC *reports.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de prendas
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.CatalogUC)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:name", stockHandler.GetByName)
	stock.Put("/:name", stockHandler.Update)
	stock.Put("/:name/sizes/:size", stockHandler.SetSizeQuantity)
	stock.Delete("/:name", stockHandler.Delete)

	// Clientas y su libro de movimientos
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.LedgerUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/movements", clientHandler.Movements)
	clients.Get("/:id/trials", clientHandler.Trials)

	// Operaciones sobre el libro
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	clients.Post("/:id/purchases", ledgerHandler.RecordPurchase)
	clients.Post("/:id/payments", ledgerHandler.RecordPayment)
	clients.Post("/:id/trials", ledgerHandler.RecordTrial)
	clients.Post("/:id/trials/:movementId/purchase", ledgerHandler.ResolveTrialAsPurchase)
	clients.Post("/:id/trials/:movementId/return", ledgerHandler.ResolveTrialAsReturn)

	// Ventas (vista derivada) y estadísticas
	sales := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.ReportsUC)
	sales.Get("/", salesHandler.List)
	sales.Get("/statistics", salesHandler.Statistics)
}
