package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/services"
)

// ChatHandler is the poll-based conversation surface; clients fetch messages
// with plain GETs.
type ChatHandler struct {
	conversations *services.ConversationService
}

func NewChatHandler(conversations *services.ConversationService) *ChatHandler {
	return &ChatHandler{conversations: conversations}
}

type StartConversationRequest struct {
	CounterpartID *string `json:"counterpart_id" validate:"omitempty,uuid"`
	AppointmentID *string `json:"appointment_id" validate:"omitempty,uuid"`
}

func (h *ChatHandler) StartOrGetConversation(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var counterpartID, appointmentID *uuid.UUID
	if req.CounterpartID != nil {
		id, _ := uuid.Parse(*req.CounterpartID)
		counterpartID = &id
	}
	if req.AppointmentID != nil {
		id, _ := uuid.Parse(*req.AppointmentID)
		appointmentID = &id
	}

	conv, err := h.conversations.StartOrGet(c.Context(), accountID, counterpartID, appointmentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	convs, err := h.conversations.ListConversations(c.Context(), accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(convs)
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	convID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}

	messages, err := h.conversations.ListMessages(c.Context(), convID, accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	convID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	msg, err := h.conversations.AppendMessage(c.Context(), convID, accountID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ChatHandler) Deactivate(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	convID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation id"})
	}

	if err := h.conversations.Deactivate(c.Context(), convID, accountID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
