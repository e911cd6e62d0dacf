package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/utils"
)

// AvailabilityService owns a mentor's recurring weekly open windows.
type AvailabilityService struct {
	slots AvailabilityRepository
}

func NewAvailabilityService(slots AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{slots: slots}
}

func (s *AvailabilityService) AddSlot(ctx context.Context, mentorID uuid.UUID, day, start, end string) (*models.AvailabilitySlot, error) {
	weekday, ok := utils.ParseWeekday(day)
	if !ok {
		return nil, ErrInvalidTimeFormat
	}
	if _, _, err := utils.ParseClockRange(start, end); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	slot := &models.AvailabilitySlot{
		MentorID:  mentorID,
		Day:       utils.WeekdayName(weekday),
		StartTime: start,
		EndTime:   end,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// ListSlots returns the mentor's slots ordered by weekday (Sunday first),
// then start time.
func (s *AvailabilityService) ListSlots(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, error) {
	slots, err := s.slots.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(slots, func(i, j int) bool {
		di, _ := utils.ParseWeekday(slots[i].Day)
		dj, _ := utils.ParseWeekday(slots[j].Day)
		if di != dj {
			return di < dj
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

func (s *AvailabilityService) RemoveSlot(ctx context.Context, mentorID, slotID uuid.UUID) error {
	return s.slots.Delete(ctx, mentorID, slotID)
}

// SlotsCover reports whether [start,end) in minutes fits entirely inside one
// of the given slots. Used by the storage layer inside its booking
// transaction so the check and the insert stay atomic.
func SlotsCover(slots []models.AvailabilitySlot, start, end int) bool {
	for _, slot := range slots {
		ss, se, err := utils.ParseClockRange(slot.StartTime, slot.EndTime)
		if err != nil {
			continue
		}
		if utils.Contains(ss, se, start, end) {
			return true
		}
	}
	return false
}
