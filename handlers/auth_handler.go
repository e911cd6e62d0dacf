package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/services"
)

type AuthHandler struct {
	credentials *services.CredentialService
}

func NewAuthHandler(credentials *services.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

type RegisterRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=client mentor"`
	Phone    *string `json:"phone,omitempty"`

	Specialization  *string  `json:"specialization,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	Issues          *string  `json:"issues,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, token, err := h.credentials.Register(c.Context(), services.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
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

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  userResponse(user),
		"token": token,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, token, err := h.credentials.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  userResponse(user),
		"token": token,
	})
}

const resetAck = "If an account with that email exists, a password reset link has been sent."

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	type Request struct {
		Email string `json:"email" validate:"required,email"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// The ack is identical whether or not the email matched.
	if _, err := h.credentials.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": resetAck})
}

func (h *AuthHandler) VerifyResetToken(c *fiber.Ctx) error {
	type Request struct {
		Token string `json:"token" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	grant, err := h.credentials.VerifyResetToken(c.Context(), req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reset_token": grant})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	type Request struct {
		ResetToken  string `json:"reset_token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.credentials.ConsumeResetToken(c.Context(), req.ResetToken, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password has been reset successfully."})
}
