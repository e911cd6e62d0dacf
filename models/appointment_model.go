package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"

	AppointmentKindChat  = "chat"
	AppointmentKindVideo = "video"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID  uuid.UUID `gorm:"not null;index" json:"client_id"`
	MentorID  uuid.UUID `gorm:"not null;index" json:"mentor_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Kind      string    `gorm:"size:10;not null;default:'chat'" json:"kind"`
	IsPaid    bool      `gorm:"not null;default:false" json:"is_paid"`
	Amount    float64   `gorm:"type:numeric(10,2);default:0" json:"amount"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`

	Client User `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Mentor User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant reports whether the account is the client or mentor side.
func (a *Appointment) Participant(accountID uuid.UUID) bool {
	return a.ClientID == accountID || a.MentorID == accountID
}
