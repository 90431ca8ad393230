package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mdhome/bella-api/internal/application/catalog"
	"github.com/mdhome/bella-api/internal/application/ledger"
	"github.com/mdhome/bella-api/internal/application/reports"
	"github.com/mdhome/bella-api/internal/domain/repository"
	"github.com/mdhome/bella-api/internal/infrastructure/memstore"
	"github.com/mdhome/bella-api/internal/infrastructure/postgres"
	httpRouter "github.com/mdhome/bella-api/internal/interfaces/http"
	"github.com/mdhome/bella-api/pkg/config"
	"github.com/mdhome/bella-api/pkg/logger"
)

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
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner   ledger.TxRunner
		clientRepo repository.ClientRepository
		stockRepo  repository.StockRepository
	)

	switch cfg.Store.Backend {
	case "memory":
		store := memstore.New()
		txRunner = store
		clientRepo = store
		stockRepo = store.Stock()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		clientRepo = postgres.NewClientRepository(pool)
		stockRepo = postgres.NewStockRepository(pool)
	}

	catalogUC := catalog.NewUseCase(stockRepo)
	ledgerUC := ledger.NewUseCase(txRunner, clientRepo, stockRepo)
	reportsUC := reports.NewUseCase(clientRepo, stockRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		ReportsUC: reportsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
