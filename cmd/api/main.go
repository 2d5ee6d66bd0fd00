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

	"github.com/jhoicas/cpr-api/internal/application/auth"
	"github.com/jhoicas/cpr-api/internal/application/closure"
	"github.com/jhoicas/cpr-api/internal/application/production"
	infrapdf "github.com/jhoicas/cpr-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cpr-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cpr-api/internal/interfaces/http"
	"github.com/jhoicas/cpr-api/pkg/config"
	"github.com/jhoicas/cpr-api/pkg/logger"
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
		Str("centro", cfg.CPR.CentroID).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	ordenRepo := postgres.NewOrdenRepository(pool)
	produccionRepo := postgres.NewProduccionRepository(pool)
	movRepo := postgres.NewStockMovimientoRepository(pool)
	cierreRepo := postgres.NewCierreRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	catalogo := postgres.NewElaboracionCatalog(pool)
	txRunner := postgres.NewTxRunner(pool)

	lifecycleUC := production.NewLifecycleUseCase(txRunner, ordenRepo, catalogo)
	produccionUC := production.NewProduccionUseCase(produccionRepo, catalogo, cfg.CPR.UmbralAjustePorcent)

	// PDF: informe imprimible del cierre mensual
	reportGenerator := infrapdf.NewClosureReportGenerator()
	cierreUC := closure.NewUseCase(cierreRepo, movRepo, stockRepo, reportGenerator, cfg.CPR.CentroID)

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CPR API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LifecycleUC:  lifecycleUC,
		ProduccionUC: produccionUC,
		CierreUC:     cierreUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
