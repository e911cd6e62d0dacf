package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/services"
	"github.com/wafulabr/mentor_connect/utils"
)

type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// Create locks the mentor's existing slots for the day, checks overlap, and
// inserts in one transaction.
func (r *GormAvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	start, end, err := utils.ParseClockRange(slot.StartTime, slot.EndTime)
	if err != nil {
		return services.ErrInvalidTimeFormat
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.AvailabilitySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ? AND day = ?", slot.MentorID, slot.Day).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, other := range existing {
			os, oe, err := utils.ParseClockRange(other.StartTime, other.EndTime)
			if err != nil {
				continue
			}
			if utils.Overlaps(os, oe, start, end) {
				return services.ErrOverlapConflict
			}
		}
		return tx.Create(slot).Error
	})
}

func (r *GormAvailabilityRepository) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Find(&slots).Error
	return slots, err
}

func (r *GormAvailabilityRepository) ListByMentorDay(ctx context.Context, mentorID uuid.UUID, day string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND day = ?", mentorID, day).
		Find(&slots).Error
	return slots, err
}

func (r *GormAvailabilityRepository) Delete(ctx context.Context, mentorID, slotID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND mentor_id = ?", slotID, mentorID).
		Delete(&models.AvailabilitySlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}
