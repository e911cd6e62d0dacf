package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset holds only the sha256 digest of the recovery secret; the raw
// secret leaves the process exactly once, inside the reset email.
type PasswordReset struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	UserID    uuid.UUID `gorm:"not null;index" json:"-"`
	TokenHash string    `gorm:"size:64;not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
	Used      bool      `gorm:"not null;default:false" json:"-"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"-"`
}
