package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/services"
)

type ProfileHandler struct {
	credentials *services.CredentialService
}

func NewProfileHandler(credentials *services.CredentialService) *ProfileHandler {
	return &ProfileHandler{credentials: credentials}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.credentials.GetProfile(c.Context(), accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest exposes the editable profile fields. Role and email
// are absent on purpose: neither changes after registration.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Phone    *string `json:"phone,omitempty"`

	Specialization  *string  `json:"specialization,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	Bio             *string  `json:"bio,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Issues          *string  `json:"issues,omitempty"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.credentials.UpdateProfile(c.Context(), accountID, services.UpdateProfileInput{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		HourlyRate:      req.HourlyRate,
		Issues:          req.Issues,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.credentials.ChangePassword(c.Context(), accountID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully."})
}
