package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stormkid2009/restooo/internal/api/http/handlers"
	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Menu           *handlers.MenuHandler
	Reservations   *handlers.ReservationHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.RequireAuth, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.AuthMiddleware.RequireAuth, cfg.Auth.Logout)

	menu := app.Group("/menu")
	menu.Get("/", cfg.AuthMiddleware.OptionalAuth, cfg.Menu.List)
	menuAdmin := menu.Group("", cfg.AuthMiddleware.RequireAuth,
		auth.RequireRole(domain.RoleAdmin, domain.RoleManager))
	menuAdmin.Post("/", cfg.Menu.Create)
	menuAdmin.Put("/:id", cfg.Menu.Update)
	menuAdmin.Delete("/:id", cfg.Menu.Delete)

	reservations := app.Group("/reservations", cfg.AuthMiddleware.RequireAuth)
	reservations.Post("/", cfg.Reservations.Book)
	reservationsStaff := reservations.Group("",
		auth.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff))
	reservationsStaff.Get("/", cfg.Reservations.ListByDay)
	reservationsStaff.Delete("/:id", cfg.Reservations.Cancel)
}
