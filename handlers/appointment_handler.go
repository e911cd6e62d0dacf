package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/services"
)

type AppointmentHandler struct {
	bookings *services.BookingService
}

func NewAppointmentHandler(bookings *services.BookingService) *AppointmentHandler {
	return &AppointmentHandler{bookings: bookings}
}

type CreateAppointmentRequest struct {
	MentorID  string  `json:"mentor_id" validate:"required,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Kind      string  `json:"kind" validate:"omitempty,oneof=chat video"`
	Amount    float64 `json:"amount" validate:"omitempty,gte=0"`
	Notes     *string `json:"notes,omitempty"`
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	clientID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mentorID, _ := uuid.Parse(req.MentorID)
	date, _ := time.Parse("2006-01-02", req.Date)

	appt, err := h.bookings.CreateAppointment(c.Context(), clientID, services.CreateAppointmentInput{
		MentorID:  mentorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appt)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	appts, err := h.bookings.ListAppointments(c.Context(), accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appts)
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appt, err := h.bookings.GetAppointment(c.Context(), apptID, accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appt)
}

// UpdateAppointmentRequest carries either a status transition or a
// reschedule (all three window fields together), not both.
type UpdateAppointmentRequest struct {
	Status    *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	var req UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch {
	case req.Status != nil:
		appt, err := h.bookings.UpdateStatus(c.Context(), apptID, accountID, *req.Status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(appt)
	case req.Date != nil && req.StartTime != nil && req.EndTime != nil:
		date, _ := time.Parse("2006-01-02", *req.Date)
		appt, err := h.bookings.Reschedule(c.Context(), apptID, accountID, date, *req.StartTime, *req.EndTime)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(appt)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Provide a status or a full reschedule window"})
	}
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	accountID, err := requesterID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	if err := h.bookings.Delete(c.Context(), apptID, accountID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
