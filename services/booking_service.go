package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/utils"
)

// Reachable appointment states per current state. Nothing leaves cancelled
// or completed.
var appointmentTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BookingService struct {
	appointments AppointmentRepository
	users        UserRepository
}

func NewBookingService(appointments AppointmentRepository, users UserRepository) *BookingService {
	return &BookingService{appointments: appointments, users: users}
}

type CreateAppointmentInput struct {
	MentorID  uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
	Kind      string
	Amount    float64
	Notes     *string
}

// CreateAppointment books a pending session for the client. The availability
// containment and overlap checks run atomically with the insert in the
// appointment store, so of two racing conflicting requests one gets
// ErrOverlapConflict.
func (s *BookingService) CreateAppointment(ctx context.Context, clientID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	if clientID == in.MentorID {
		return nil, ErrInvalidParticipants
	}
	mentor, err := s.users.FindByID(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.IsMentor() {
		return nil, ErrNotFound
	}
	if _, _, err := utils.ParseClockRange(in.StartTime, in.EndTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	kind := in.Kind
	if kind == "" {
		kind = models.AppointmentKindChat
	}
	appt := &models.Appointment{
		ClientID:  clientID,
		MentorID:  in.MentorID,
		Date:      NormalizeDate(in.Date),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    models.AppointmentPending,
		Kind:      kind,
		Amount:    in.Amount,
		Notes:     in.Notes,
	}
	if err := s.appointments.CreateBooked(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListAppointments returns every appointment the account participates in,
// ordered by date then start time.
func (s *BookingService) ListAppointments(ctx context.Context, accountID uuid.UUID) ([]models.Appointment, error) {
	appts, err := s.appointments.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Date.Equal(appts[j].Date) {
			return appts[i].Date.Before(appts[j].Date)
		}
		return appts[i].StartTime < appts[j].StartTime
	})
	return appts, nil
}

func (s *BookingService) GetAppointment(ctx context.Context, id, requesterID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Participant(requesterID) {
		return nil, ErrForbidden
	}
	return appt, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id, requesterID uuid.UUID, newStatus string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Participant(requesterID) {
		return nil, ErrForbidden
	}
	if !transitionAllowed(appt.Status, newStatus) {
		return nil, ErrInvalidTransition
	}
	if err := s.appointments.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	appt.Status = newStatus
	return appt, nil
}

// Reschedule moves a pending or confirmed appointment to a new window,
// re-running the same containment and overlap checks as creation.
func (s *BookingService) Reschedule(ctx context.Context, id, requesterID uuid.UUID, date time.Time, start, end string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Participant(requesterID) {
		return nil, ErrForbidden
	}
	if appt.Status != models.AppointmentPending && appt.Status != models.AppointmentConfirmed {
		return nil, ErrInvalidTransition
	}
	if _, _, err := utils.ParseClockRange(start, end); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	appt.Date = NormalizeDate(date)
	appt.StartTime = start
	appt.EndTime = end
	if err := s.appointments.Reschedule(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Delete hard-deletes an appointment, allowed only while it is still
// pending; anything later must go through cancellation.
func (s *BookingService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !appt.Participant(requesterID) {
		return ErrForbidden
	}
	if appt.Status != models.AppointmentPending {
		return ErrInvalidTransition
	}
	return s.appointments.Delete(ctx, id)
}

// NormalizeDate truncates to a UTC calendar date so equality checks ignore
// the time-of-day and zone the transport parsed.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HasBookingConflict reports whether any non-cancelled appointment in the
// list overlaps [start,end) in minutes on the given date, ignoring
// excludeID. Shared with the storage layer's booking transaction.
func HasBookingConflict(existing []models.Appointment, date time.Time, start, end int, excludeID uuid.UUID) bool {
	day := NormalizeDate(date)
	for i := range existing {
		other := &existing[i]
		if other.ID == excludeID || other.Status == models.AppointmentCancelled {
			continue
		}
		if !NormalizeDate(other.Date).Equal(day) {
			continue
		}
		os, oe, err := utils.ParseClockRange(other.StartTime, other.EndTime)
		if err != nil {
			continue
		}
		if utils.Overlaps(os, oe, start, end) {
			return true
		}
	}
	return false
}
