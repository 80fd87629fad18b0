// @title           Inventory API
// @version         1.0
// @description     API de gestión de inventario: catálogo, ventas, compras y reportes.
// @BasePath        /
// @securityDefinitions.apikey  Cookie
// @in                          cookie
// @name                        auth-token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/inventory-manager/docs"
	appanalytics "github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/application/inventory"
	"github.com/jhoicas/inventory-manager/internal/application/usecase"
	infrakafka "github.com/jhoicas/inventory-manager/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/inventory-manager/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-manager/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventory-manager/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventory-manager/internal/interfaces/http"
	"github.com/jhoicas/inventory-manager/pkg/config"
	"github.com/jhoicas/inventory-manager/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("la aplicación terminó con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arma dependencias y sirve HTTP hasta recibir SIGINT/SIGTERM. Los recursos
// abiertos se cierran en sus defer aunque un paso posterior falle.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	// Revocación de tokens en logout (opcional)
	var denylist auth.TokenDenylist
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("conexión a Redis %s: %w", cfg.Redis.Addr, err)
		}
		defer client.Close()
		denylist = infraredis.NewDenylist(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("denylist de tokens habilitada")
	}

	// Eventos de stock tras cada posteo (opcional)
	var publisher inventory.EventPublisher = infrakafka.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer, err := infrakafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("productor Kafka %v: %w", cfg.Kafka.Brokers, err)
		}
		defer producer.Close()
		publisher = producer
		log.Info().Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos de stock habilitada")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, denylist, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, txRunner)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo, txRunner)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo, txRunner)
	customerUC := usecase.NewCustomerUseCase(customerRepo, saleRepo, txRunner)
	postingUC := inventory.NewPostingUseCase(txRunner, saleRepo, purchaseRepo, customerRepo, supplierRepo, publisher, log)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo, saleRepo, purchaseRepo, cfg.Reports.LowStockThreshold)

	// PDF: inventario valorizado
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := appanalytics.NewReportUseCase(reportRepo, productRepo, saleRepo, purchaseRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		PostingUC:    postingUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		Log:          log,
		SecureCookie: cfg.App.IsProduction(),
		SessionTTL:   cfg.JWT.TTL(),
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
