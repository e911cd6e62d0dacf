package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a mentor's recurring weekly open window. Times are
// 24-hour "HH:MM" wall-clock strings, Day a lowercase weekday name.
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID  uuid.UUID `gorm:"not null;index" json:"-"`
	Day       string    `gorm:"size:10;not null" json:"day"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Mentor User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
