package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/http/handlers"
	"github.com/enpl/fieldops-console/internal/auth"
	"github.com/enpl/fieldops-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Customers      *handlers.CustomersHandler
	Sites          *handlers.SitesHandler
	Services       *handlers.ServicesHandler
	Devices        *handlers.DevicesHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Post("/register", auth.RequireRole(domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleManager), cfg.Users.Register)
	users.Get("/", auth.RequireRole(domain.RoleSuperadmin), cfg.Users.List)
	users.Get("/all", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListScoped)
	users.Get("/managers", auth.RequireRole(), cfg.Users.Managers)
	users.Get("/executives", auth.RequireRole(), cfg.Users.Executives)
	users.Get("/:id", auth.RequireRole(), cfg.Users.Get)
	users.Patch("/:id/change-password", auth.RequireRole(), cfg.Users.ChangePassword)
	users.Patch("/:id", auth.RequireRole(domain.RoleSuperadmin, domain.RoleAdmin), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleSuperadmin, domain.RoleAdmin), cfg.Users.Delete)

	registerCRUD(app, "/customers", cfg.AuthMiddleware, crudHandlers{
		create: cfg.Customers.Create,
		list:   cfg.Customers.List,
		get:    cfg.Customers.Get,
		update: cfg.Customers.Update,
		delete: cfg.Customers.Delete,
	})
	registerCRUD(app, "/services", cfg.AuthMiddleware, crudHandlers{
		create: cfg.Services.Create,
		list:   cfg.Services.List,
		get:    cfg.Services.Get,
		update: cfg.Services.Update,
		delete: cfg.Services.Delete,
	})
	// The original console exposes sites under a singular base path.
	registerCRUD(app, "/site", cfg.AuthMiddleware, crudHandlers{
		create: cfg.Sites.Create,
		list:   cfg.Sites.List,
		get:    cfg.Sites.Get,
		update: cfg.Sites.Update,
		delete: cfg.Sites.Delete,
	})
	registerCRUD(app, "/devices", cfg.AuthMiddleware, crudHandlers{
		create: cfg.Devices.Create,
		list:   cfg.Devices.List,
		get:    cfg.Devices.Get,
		update: cfg.Devices.Update,
		delete: cfg.Devices.Delete,
	})
	registerCRUD(app, "/tasks", cfg.AuthMiddleware, crudHandlers{
		create: cfg.Tasks.Create,
		list:   cfg.Tasks.List,
		get:    cfg.Tasks.Get,
		update: cfg.Tasks.Update,
		delete: cfg.Tasks.Delete,
	})
}

type crudHandlers struct {
	create fiber.Handler
	list   fiber.Handler
	get    fiber.Handler
	update fiber.Handler
	delete fiber.Handler
}

// registerCRUD wires the uniform record-module contract: authenticated
// list/create/get/update/delete under one base path.
func registerCRUD(app *fiber.App, basePath string, authMiddleware *auth.AuthMiddleware, h crudHandlers) {
	group := app.Group(basePath, authMiddleware.Handle, auth.RequireRole())
	group.Post("/", h.create)
	group.Get("/", h.list)
	group.Get("/:id", h.get)
	group.Patch("/:id", h.update)
	group.Delete("/:id", h.delete)
}
