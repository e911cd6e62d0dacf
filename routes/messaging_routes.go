package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/handlers"
	"github.com/wafulabr/mentor_connect/middleware"
)

func MessagingRoutes(app *fiber.App, h *handlers.ChatHandler, secret []byte) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected(secret), middleware.SessionOnly())
	conversations.Get("", h.ListConversations)
	conversations.Post("", h.StartOrGetConversation)
	conversations.Get("/:conversationId/messages", h.GetMessages)
	conversations.Post("/:conversationId/messages", h.SendMessage)
	conversations.Delete("/:conversationId", h.Deactivate)
}
