package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, task *handlers.TaskHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	a := app.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Tasks are owner-scoped; the whole group sits behind the auth gate.
	t := app.Group("/tasks", authMW)
	t.Post("/", task.Create)
	t.Get("/", task.List)
	t.Get("/:id", task.GetByID)
	t.Patch("/:id", task.Update)
	t.Delete("/:id", task.Delete)
}
