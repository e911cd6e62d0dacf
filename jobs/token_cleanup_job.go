package jobs

import (
	"context"
	"log"
	"time"

	"github.com/wafulabr/mentor_connect/services"
)

// TokenCleanup garbage-collects password-reset records once they are used or
// past expiry. Expiry is still enforced at verification time; this just keeps
// the table from growing.
type TokenCleanup struct {
	resets services.PasswordResetRepository
}

func NewTokenCleanup(resets services.PasswordResetRepository) *TokenCleanup {
	return &TokenCleanup{resets: resets}
}

func (j *TokenCleanup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := j.resets.PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Printf("🔥 Reset token cleanup failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d expired reset tokens", purged)
	}
}
