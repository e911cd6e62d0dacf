package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
	"github.com/wafulabr/mentor_connect/middleware"
)

func AppointmentRoutes(app *fiber.App, h *handlers.AppointmentHandler, secret []byte) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected(secret), middleware.SessionOnly())
	appointments.Get("", h.List)
	appointments.Post("", h.Create)
	appointments.Get("/:id", h.Get)
	appointments.Put("/:id", h.Update)
	appointments.Delete("/:id", h.Delete)
}
