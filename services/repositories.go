package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/models"
)

// Storage contracts the services are built against. The gorm implementations
// live in the repository package; tests substitute in-memory fakes.
//
// Conflict-checked creates (slots, appointments) must perform their check and
// the insert as one atomic unit against the store, so that of two concurrent
// conflicting writes exactly one succeeds.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error // ErrDuplicateEmail on unique violation
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Update(ctx context.Context, user *models.User) error
	ListMentors(ctx context.Context) ([]models.User, error)
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	// FindActiveByHash returns the unused, unexpired record for the digest,
	// or ErrNotFound.
	FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error)
	// Consume flips Used exactly once; ErrInvalidOrExpiredToken if the record
	// is missing, already used, or expired at the time of the write.
	Consume(ctx context.Context, id uuid.UUID, now time.Time) (*models.PasswordReset, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type AvailabilityRepository interface {
	// Create inserts the slot unless it overlaps an existing slot for the
	// same mentor and day (ErrOverlapConflict). Check and insert are atomic.
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, error)
	ListByMentorDay(ctx context.Context, mentorID uuid.UUID, day string) ([]models.AvailabilitySlot, error)
	// Delete removes the mentor's slot; ErrNotFound if it does not exist or
	// belongs to someone else.
	Delete(ctx context.Context, mentorID, slotID uuid.UUID) error
}

type AppointmentRepository interface {
	// CreateBooked validates, atomically with the insert, that the window
	// fits the mentor's availability (ErrSlotUnavailable) and collides with
	// no non-cancelled appointment on that date (ErrOverlapConflict).
	CreateBooked(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// Reschedule re-runs the CreateBooked checks for the new window,
	// ignoring the appointment itself, and persists the new fields.
	Reschedule(ctx context.Context, appt *models.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationRepository interface {
	FindActiveByPair(ctx context.Context, clientID, mentorID uuid.UUID) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.Conversation, error)
	// AppendMessage stores the message and bumps the conversation's
	// UpdatedAt so ListForAccount ordering follows activity.
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Mailer is the outbound email collaborator. Failures are soft: the caller
// logs and carries on, it never rolls back state already written.
type Mailer interface {
	Send(toName, toEmail, subject, htmlContent string) error
}
