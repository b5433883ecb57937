package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/transfer"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/almacen-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool; el TxRunner entrega versiones
	// transaccionales de los que participan en el ledger.
	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	inventoryRepo := postgres.NewInventoryRecordRepository(pool)
	consumptionRepo := postgres.NewConsumptionRecordRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedger(txRunner, stockRepo)

	// Caché del tablero: si Redis no responde se sigue sin caché.
	reportCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, reportes sin caché")
		reportCache, _ = cache.NewRedisCache(config.RedisConfig{Enabled: false})
	}
	defer reportCache.Close()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	materialUC := usecase.NewMaterialUseCase(materialRepo, stockRepo, purchaseRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	stockUC := usecase.NewStockUseCase(ledger, stockRepo, movementRepo, materialRepo, locationRepo)
	transferUC := transfer.NewUseCase(txRunner, ledger, transferRepo, stockRepo, materialRepo, locationRepo)
	purchaseUC := usecase.NewPurchaseUseCase(txRunner, ledger, purchaseRepo, materialRepo, locationRepo)
	inventoryUC := usecase.NewInventoryUseCase(txRunner, ledger, inventoryRepo, materialRepo, locationRepo, stockRepo)
	consumptionUC := usecase.NewConsumptionUseCase(txRunner, ledger, consumptionRepo, inventoryRepo, materialRepo, purchaseRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, locationRepo, reportCache, log)

	pdfGenerator := infrapdf.NewFormPDFGenerator()
	spreadsheetExporter := infraexcel.NewSpreadsheetExporter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MaterialUC:    materialUC,
		CategoryUC:    categoryUC,
		LocationUC:    locationUC,
		StockUC:       stockUC,
		TransferUC:    transferUC,
		PurchaseUC:    purchaseUC,
		InventoryUC:   inventoryUC,
		ConsumptionUC: consumptionUC,
		ReportUC:      reportUC,
		PDF:           pdfGenerator,
		Spreadsheet:   spreadsheetExporter,
		JWTSecret:     cfg.JWT.Secret,
	})

	var sweep *scheduler.ExpirySweep
	if cfg.Scheduler.Enabled {
		sweep, err = scheduler.NewExpirySweep(reportUC, cfg.Scheduler, log)
		if err != nil {
			log.Fatal().Err(err).Msg("crear scheduler")
		}
		if err := sweep.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar barrido de vencimientos")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sweep != nil {
		if err := sweep.Shutdown(); err != nil {
			log.Error().Err(err).Msg("apagado del scheduler")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
