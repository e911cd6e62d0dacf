package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the single active message thread for one (client, mentor)
// pair, optionally anchored to an appointment. Deactivated, never deleted.
type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID      uuid.UUID  `gorm:"not null;index" json:"client_id"`
	MentorID      uuid.UUID  `gorm:"not null;index" json:"mentor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`

	Client   User      `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Mentor   User      `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`
	Messages []Message `json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) Participant(accountID uuid.UUID) bool {
	return c.ClientID == accountID || c.MentorID == accountID
}
