package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studiosadmin/admin-console/internal/api/http/handlers"
	"github.com/studiosadmin/admin-console/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Members    *handlers.MembersHandler
	BugReports *handlers.BugReportsHandler
	System     *handlers.SystemHandler
	Metrics    *handlers.MetricsHandler
	// ProtectAdminRoutes requires an admin session on the admin routes.
	ProtectAdminRoutes bool
	// StaticDir serves the pre-built dashboard when set.
	StaticDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	guard := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.ProtectAdminRoutes {
		guard = auth.RequireAdmin()
	}

	api.Post("/admin-login", cfg.Auth.Login)
	api.Get("/auth/me", cfg.Auth.Me)
	api.Post("/logout", cfg.Auth.Logout)

	api.Get("/admin/crash", cfg.System.Crash)
	api.Post("/admin/crash", guard, cfg.System.SetCrash)

	members := api.Group("/members", guard)
	members.Get("/", cfg.Members.List)
	members.Post("/", cfg.Members.Create)
	members.Get("/:id", cfg.Members.Get)
	members.Put("/:id", cfg.Members.Update)
	members.Delete("/:id", cfg.Members.Delete)
	members.Put("/:id/access", cfg.Members.UpdateAccess)

	api.Post("/bug-reports", cfg.BugReports.Create)
	api.Get("/bug-reports", guard, cfg.BugReports.List)
	api.Put("/bug-reports/resolve/:id", guard, cfg.BugReports.Resolve)
	api.Get("/bug-reports/:id", guard, cfg.BugReports.Get)
	api.Put("/bug-reports/:id", guard, cfg.BugReports.Update)

	api.Get("/storage", guard, cfg.Metrics.Storage)
	api.Get("/usage", cfg.Metrics.Usage)
	api.Post("/usage", cfg.Metrics.RecordUsage)
	api.Get("/dashboard/summary", guard, cfg.Metrics.DashboardSummary)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
	}
}
