package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
	"github.com/wafulabr/mentor_connect/middleware"
)

func AvailabilityRoutes(app *fiber.App, h *handlers.AvailabilityHandler, secret []byte) {
	api := app.Group("/api/v1")

	availability := api.Group("/availability",
		middleware.Protected(secret), middleware.SessionOnly(), middleware.MentorRequired())
	availability.Get("", h.ListMySlots)
	availability.Post("", h.CreateSlot)
	availability.Delete("/:slotId", h.DeleteSlot)
}
