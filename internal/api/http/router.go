package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Licenses       *handlers.LicensesHandler
	Purchasers     *handlers.PurchasersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Public endpoints are registered outside
// the guarded groups; everything else passes the authorization gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/adm", cfg.Auth.GetAdminAccounts)
	authProtected.Put("/adm/:id", cfg.Auth.UpdateAdminAccount)
	authProtected.Patch("/:id", cfg.Auth.UpdatePassword)

	purchasers := app.Group("/purchasers", cfg.AuthMiddleware.Handle)
	purchasers.Get("/", cfg.Purchasers.List)
	purchasers.Get("/:id", cfg.Purchasers.Get)
	purchasers.Put("/:id", cfg.Purchasers.Update)
	purchasers.Delete("/:id", cfg.Purchasers.Delete)

	products := app.Group("/products", cfg.AuthMiddleware.Handle)
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Products.Create)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)

	licenses := app.Group("/licenses", cfg.AuthMiddleware.Handle)
	licenses.Get("/", cfg.Licenses.List)
	licenses.Get("/:id", cfg.Licenses.Get)
	licenses.Post("/", cfg.Licenses.Create)
	licenses.Patch("/:id", cfg.Licenses.Update)
}
