package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentorship-service/internal/api/http/handlers"
	"github.com/spec-kit/mentorship-service/internal/auth"
	"github.com/spec-kit/mentorship-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Subjects       *handlers.SubjectsHandler
	Appointments   *handlers.AppointmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Provisioning is restricted to
// administrators; appointment status management to administrators and
// monitors. Slot listing and booking are open to any caller.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	app.Get("/appointments/slots", cfg.Appointments.AvailableSlots)
	app.Post("/appointments", cfg.Appointments.Create)
	app.Get("/resources", cfg.Appointments.ListResources)

	staff := app.Group("", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAdministrator, domain.RoleMonitor))
	staff.Post("/appointments/:id/cancel", cfg.Appointments.Cancel)
	staff.Patch("/appointments/:id/status", cfg.Appointments.UpdateStatus)

	admin := app.Group("/subjects", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleAdministrator))
	admin.Post("", cfg.Subjects.Create)
	admin.Get("", cfg.Subjects.List)
	admin.Get("/:id", cfg.Subjects.Get)
	admin.Put("/:id", cfg.Subjects.Update)
	admin.Delete("/:id", cfg.Subjects.Delete)
}
