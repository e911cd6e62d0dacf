package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
	"github.com/wafulabr/mentor_connect/middleware"
)

func ProfileRoutes(app *fiber.App, h *handlers.ProfileHandler, secret []byte) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected(secret), middleware.SessionOnly())
	profile.Get("", h.Me)
	profile.Put("", h.UpdateProfile)
	profile.Put("/password", h.ChangePassword)
}
