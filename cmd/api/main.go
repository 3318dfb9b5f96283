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

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/warehouse-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/warehouse-pos/internal/interfaces/http"
	"github.com/jhoicas/warehouse-pos/pkg/config"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer backend.Close()

	repos := backend.Repos
	authUC := auth.NewAuthUseCase(repos.Users, repos.Employees, backend.Blocklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	receipts := infrapdf.NewReceiptGenerator(cfg.App.ReceiptFont)
	deps := httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  usecase.NewCategoryUseCase(backend.Categories),
		ProductUC:   usecase.NewProductUseCase(repos.Products, backend.Categories),
		WarehouseUC: usecase.NewWarehouseUseCase(repos.Warehouses),
		EmployeeUC:  usecase.NewEmployeeUseCase(backend.Tx, repos.Employees),
		SectionSvc:  usecase.NewSectionService(backend.Sections),
		ActivityUC:  usecase.NewActivityUseCase(repos.Activity),
		StockUC:     usecase.NewStockUseCase(repos.Stocks),
		IncomingUC:  inventory.NewIncomingUseCase(backend.Tx, repos.Incoming, log),
		MovementUC:  inventory.NewMovementUseCase(backend.Tx, repos.Movements, log),
		CheckoutUC:  sales.NewCheckoutUseCase(backend.Tx, log),
		OrdersUC:    sales.NewOrdersUseCase(repos.Sales, repos.Products, repos.Stocks, receipts, loc),
		ReportUC:    sales.NewReportUseCase(repos.Sales, export.NewSalesExporter(), loc),
		JWTSecret:   cfg.JWT.Secret,
		Blocklist:   backend.Blocklist,
		Location:    loc,
		Log:         log,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.FiberErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Warehouse POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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
