package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/services"
)

// MentorHandler is the public discovery surface: a plain mentor listing and
// each mentor's published weekly availability. No search, no ranking.
type MentorHandler struct {
	credentials  *services.CredentialService
	availability *services.AvailabilityService
}

func NewMentorHandler(credentials *services.CredentialService, availability *services.AvailabilityService) *MentorHandler {
	return &MentorHandler{credentials: credentials, availability: availability}
}

func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	mentors, err := h.credentials.ListMentors(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mentors)
}

func (h *MentorHandler) GetMentorAvailability(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(c.Params("mentorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	slots, err := h.availability.ListSlots(c.Context(), mentorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(slots)
}
