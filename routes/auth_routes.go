package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/verify-reset-token", h.VerifyResetToken)
	auth.Post("/reset-password", h.ResetPassword)
}
