package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/services"
)

var validate = validator.New()

// requesterID pulls the authenticated account id out of the JWT the
// Protected middleware stored on the context.
func requesterID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("missing auth token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("malformed claims")
	}
	idStr, _ := claims["user_id"].(string)
	return uuid.Parse(idStr)
}

// respondError is the single translation point from the service error
// taxonomy to HTTP statuses. Unknown errors are logged in full and leave as
// a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOverlapConflict),
		errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidOrExpiredToken),
		errors.Is(err, services.ErrInvalidTimeFormat),
		errors.Is(err, services.ErrInvalidParticipants),
		errors.Is(err, services.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("🔥 internal error: %v | Path: %s", err, c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}
