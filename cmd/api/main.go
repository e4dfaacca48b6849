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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	inframail "github.com/jhoicas/stockflow-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/stockflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/scheduler"
	infraxlsx "github.com/jhoicas/stockflow-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// bodyLimit admite 6 imágenes de 10 MiB en base64.
const bodyLimit = 100 << 20

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
		Str("db", postgres.RedactDSN(cfg.DB.ConnectionString())).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	gormDB, err := postgres.NewGorm(pool, log.Component("gorm").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar gorm")
	}
	if err := postgres.Migrate(ctx, gormDB, pool); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}

	// Repositorios
	productRepo := postgres.NewProductRepository(pool)
	imageRepo := postgres.NewProductImageRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	mailRepo := postgres.NewMailConfigRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	lookups := usecase.Lookups{
		Categories: postgres.NewLookupRepository[entity.Category](gormDB),
		Brands:     postgres.NewLookupRepository[entity.Brand](gormDB),
		Models:     postgres.NewLookupRepository[entity.Model](gormDB, "Brand", "Category"),
		Suppliers:  postgres.NewLookupRepository[entity.Supplier](gormDB),
		Locations:  postgres.NewLookupRepository[entity.Location](gormDB),
		Partners:   postgres.NewLookupRepository[entity.Partner](gormDB),
		Projects:   postgres.NewLookupRepository[entity.Project](gormDB, "Partner"),
	}

	// Servicios de infraestructura
	mailer := inframail.NewSMTPMailer(cfg.SMTP, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	xlsxGenerator := infraxlsx.NewExcelizeGenerator()

	// Casos de uso
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo, productRepo, userRepo, lookups.Partners, lookups.Suppliers)
	productUC := usecase.NewProductUseCase(usecase.ProductDeps{
		TxRunner:   txRunner,
		Products:   productRepo,
		Images:     imageRepo,
		Movements:  movementRepo,
		Brands:     lookups.Brands,
		Categories: lookups.Categories,
		Models:     lookups.Models,
		Locations:  lookups.Locations,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	mailUC := usecase.NewMailUseCase(mailRepo, mailer)
	settingsUC := usecase.NewSettingsUseCase(lookups, userUC, mailUC)
	reportUC := report.NewReportUseCase(productRepo, movementRepo, pdfGenerator, xlsxGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, movementRepo)
	digestUC := appanalytics.NewDigestUseCase(dashboardUC, reportUC, mailRepo, mailer)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Resumen periódico por correo
	sched := scheduler.New(cfg.Digest.Cron, digestUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		ProductUC:        productUC,
		SettingsUC:       settingsUC,
		MailUC:           mailUC,
		RegisterMovement: registerMovementUC,
		MovementQueries:  movementQueryUC,
		ReportUC:         reportUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log,
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
	sched.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
