package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/services"
	"github.com/wafulabr/mentor_connect/utils"
)

type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// CreateBooked runs the availability containment and overlap checks inside
// the insert transaction. The covering slot rows are locked FOR UPDATE:
// every booking for the same mentor and weekday contends on those rows, so
// two racing overlapping requests serialize and the loser sees the winner's
// row when it re-reads the appointments.
func (r *GormAppointmentRepository) CreateBooked(ctx context.Context, appt *models.Appointment) error {
	start, end, err := utils.ParseClockRange(appt.StartTime, appt.EndTime)
	if err != nil {
		return services.ErrInvalidTimeFormat
	}
	day := utils.WeekdayName(appt.Date.Weekday())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slots []models.AvailabilitySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ? AND day = ?", appt.MentorID, day).
			Find(&slots).Error; err != nil {
			return err
		}
		if !services.SlotsCover(slots, start, end) {
			return services.ErrSlotUnavailable
		}

		var existing []models.Appointment
		if err := tx.
			Where("mentor_id = ? AND date = ? AND status <> ?", appt.MentorID, appt.Date, models.AppointmentCancelled).
			Find(&existing).Error; err != nil {
			return err
		}
		if services.HasBookingConflict(existing, appt.Date, start, end, uuid.Nil) {
			return services.ErrOverlapConflict
		}
		return tx.Create(appt).Error
	})
}

func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("client_id = ? OR mentor_id = ?", accountID, accountID).
		Order("date asc, start_time asc").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

// Reschedule re-runs the booking checks for the new window, ignoring the
// appointment itself, under the same locking discipline as CreateBooked.
func (r *GormAppointmentRepository) Reschedule(ctx context.Context, appt *models.Appointment) error {
	start, end, err := utils.ParseClockRange(appt.StartTime, appt.EndTime)
	if err != nil {
		return services.ErrInvalidTimeFormat
	}
	day := utils.WeekdayName(appt.Date.Weekday())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slots []models.AvailabilitySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ? AND day = ?", appt.MentorID, day).
			Find(&slots).Error; err != nil {
			return err
		}
		if !services.SlotsCover(slots, start, end) {
			return services.ErrSlotUnavailable
		}

		var existing []models.Appointment
		if err := tx.
			Where("mentor_id = ? AND date = ? AND status <> ?", appt.MentorID, appt.Date, models.AppointmentCancelled).
			Find(&existing).Error; err != nil {
			return err
		}
		if services.HasBookingConflict(existing, appt.Date, start, end, appt.ID) {
			return services.ErrOverlapConflict
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", appt.ID).
			Updates(map[string]interface{}{
				"date":       appt.Date,
				"start_time": appt.StartTime,
				"end_time":   appt.EndTime,
			}).Error
	})
}

func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}
