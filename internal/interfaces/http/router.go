package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	StoreUC   *usecase.StoreUseCase
	ProductUC *usecase.ProductUseCase
	Tokens    *jwt.Manager
	Log       *logger.Logger
	Metrics   *Metrics
	Gatherer  prometheus.Gatherer // si es nil no se expone /metrics
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", MetricsHandler(deps.Gatherer))
	}

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Tokens, deps.Log)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Tokens, deps.Log, deps.Metrics)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/public-key", authHandler.PublicKey)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Stores (protegido: admin o cajero)
	stores := api.Group("/stores", requireAuth, RequireRole(entity.RoleAdmin, entity.RoleCashier))
	storeHandler := NewStoreHandler(deps.StoreUC, deps.Log)
	stores.Get("/current", storeHandler.Current)
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	stores.Get("/current/products", productHandler.List)
}
