package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/services"
)

type GormPasswordResetRepository struct {
	db *gorm.DB
}

func NewGormPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

func (r *GormPasswordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *GormPasswordResetRepository) FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND used = ? AND expires_at > ?", tokenHash, false, now).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &reset, nil
}

// Consume is a conditional write: the WHERE clause re-checks used and expiry
// at the moment of the update, so a token can be burned at most once even
// under concurrent attempts.
func (r *GormPasswordResetRepository) Consume(ctx context.Context, id uuid.UUID, now time.Time) (*models.PasswordReset, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("id = ? AND used = ? AND expires_at > ?", id, false, now).
		Update("used", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, services.ErrInvalidOrExpiredToken
	}

	var reset models.PasswordReset
	if err := r.db.WithContext(ctx).First(&reset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *GormPasswordResetRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used = ? OR expires_at <= ?", true, now).
		Delete(&models.PasswordReset{})
	return res.RowsAffected, res.Error
}
