package handler

import (
	"github.com/AnthoniusHendriyanto/account-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Use installs the middleware chain shared by every route.
func Use(app *fiber.App, l *zap.Logger, m *metrics.Metrics) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(l))
	app.Use(m.Middleware())
}

func RegisterRoutes(app *fiber.App, h *AccountHandler, m *metrics.Metrics) {
	app.Get("/healthz", h.HealthCheck)
	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	user := app.Group("/api/v1/user")
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)

	// Bearer-protected; the admin role is checked by the service.
	user.Delete("/deleteUser/:userId", h.RequireToken(), h.DeleteUser)
	user.Get("/getAllUsers", h.RequireToken(), h.ListUsers)
}
