package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civic-portal/appeal-service/internal/api/http/handlers"
	"github.com/civic-portal/appeal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Appeals        *handlers.AppealsHandler
	StaffAppeals   *handlers.StaffAppealsHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/appeals", cfg.Appeals.SubmitAppeal)
	app.Get("/appeals/:number", cfg.Appeals.GetAppealStatus)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	staffGroup := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())
	staffGroup.Get("/appeals", cfg.StaffAppeals.ListAppeals)
	staffGroup.Get("/appeals/:number", cfg.StaffAppeals.GetAppeal)
	staffGroup.Post("/appeals/:number/status", cfg.StaffAppeals.UpdateStatus)
	staffGroup.Post("/appeals/:number/priority", cfg.StaffAppeals.UpdatePriority)
	staffGroup.Post("/appeals/:number/assign", cfg.StaffAppeals.AssignAppeal)
	staffGroup.Get("/analytics", cfg.StaffAppeals.GetAnalytics)
}
