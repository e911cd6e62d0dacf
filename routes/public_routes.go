package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
)

func PublicRoutes(app *fiber.App, h *handlers.MentorHandler) {
	api := app.Group("/api/v1")

	api.Get("/mentors", h.ListMentors)
	api.Get("/mentors/:mentorId/availability", h.GetMentorAvailability)
}
