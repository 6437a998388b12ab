package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	zlog "github.com/rs/zerolog/log"

	_ "github.com/jhoicas/pos-api/docs"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// @title        POS API
// @version      1.0
// @description  Autenticación y membresía de tiendas del punto de venta.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingEnv) {
			zlog.Fatal().Err(err).Msg("configuración de base de datos incompleta")
		}
		zlog.Fatal().Err(err).Msg("cargar configuración")
	}

	log, err := logger.New(logger.Config{
		Env:          cfg.App.Env,
		Level:        cfg.Log.Level,
		Port:         cfg.HTTP.Port,
		ToFile:       cfg.Log.ToFile,
		FilePath:     cfg.Log.FilePath,
		EnableSentry: cfg.Log.EnableSentry,
		SentryDSN:    cfg.Log.SentryDSN,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("inicializar logger")
	}
	defer log.Flush(2 * time.Second)

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.HandleCritical(err, "Database", "connect")
		log.Flush(2 * time.Second)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(pool, log); err != nil {
			log.HandleCritical(err, "Database", "migrate")
			log.Flush(2 * time.Second)
			os.Exit(1)
		}
	}

	tokens, err := jwt.LoadManager(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath, cfg.JWT.Issuer)
	if err != nil {
		log.HandleCritical(err, "AuthService", "load-keys")
		log.Flush(2 * time.Second)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	authUC := auth.NewAuthUseCase(userRepo, tokens, auth.Config{BcryptCost: cfg.Auth.BcryptCost})
	storeUC := usecase.NewStoreUseCase(storeRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpRouter.NewMetrics(reg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		StoreUC:   storeUC,
		ProductUC: productUC,
		Tokens:    tokens,
		Log:       log,
		Metrics:   metrics,
		Gatherer:  reg,
		AppName:   cfg.App.Name,
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
		log.Handle(err, "HTTP", "shutdown")
	}

	log.Info().Msg("aplicación detenida")
}
