package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleMentor = "mentor"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null" json:"role"`
	Phone    *string   `gorm:"size:30" json:"phone,omitempty"`

	// Mentor profile attribute group.
	Specialization  *string  `gorm:"size:255" json:"specialization,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Bio             *string  `gorm:"type:text" json:"bio,omitempty"`
	HourlyRate      *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate,omitempty"`

	// Client profile attribute group.
	Issues *string `gorm:"type:text" json:"issues,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsMentor() bool { return u.Role == RoleMentor }
func (u *User) IsClient() bool { return u.Role == RoleClient }
