package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSlotValidation(t *testing.T) {
	svc := NewAvailabilityService(newFakeSlotRepo())
	mentorID := uuid.New()
	ctx := context.Background()

	cases := []struct {
		name            string
		day, start, end string
	}{
		{"bad day", "funday", "09:00", "12:00"},
		{"bad start", "monday", "9:00", "12:00"},
		{"bad end", "monday", "09:00", "25:00"},
		{"start after end", "monday", "12:00", "09:00"},
		{"zero length", "monday", "09:00", "09:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddSlot(ctx, mentorID, tc.day, tc.start, tc.end)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestAddSlotOverlap(t *testing.T) {
	svc := NewAvailabilityService(newFakeSlotRepo())
	mentorID := uuid.New()
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, mentorID, "Monday", "09:00", "12:00")
	require.NoError(t, err)

	_, err = svc.AddSlot(ctx, mentorID, "monday", "11:00", "13:00")
	assert.ErrorIs(t, err, ErrOverlapConflict)

	// Adjacent is fine, and so is the same window on another day or for
	// another mentor.
	_, err = svc.AddSlot(ctx, mentorID, "monday", "12:00", "14:00")
	assert.NoError(t, err)
	_, err = svc.AddSlot(ctx, mentorID, "tuesday", "09:00", "12:00")
	assert.NoError(t, err)
	_, err = svc.AddSlot(ctx, uuid.New(), "monday", "09:00", "12:00")
	assert.NoError(t, err)
}

func TestListSlotsOrdering(t *testing.T) {
	svc := NewAvailabilityService(newFakeSlotRepo())
	mentorID := uuid.New()
	ctx := context.Background()

	for _, s := range []struct{ day, start, end string }{
		{"friday", "10:00", "11:00"},
		{"monday", "14:00", "16:00"},
		{"monday", "09:00", "12:00"},
		{"sunday", "08:00", "09:00"},
	} {
		_, err := svc.AddSlot(ctx, mentorID, s.day, s.start, s.end)
		require.NoError(t, err)
	}

	slots, err := svc.ListSlots(ctx, mentorID)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "sunday", slots[0].Day)
	assert.Equal(t, "monday", slots[1].Day)
	assert.Equal(t, "09:00", slots[1].StartTime)
	assert.Equal(t, "monday", slots[2].Day)
	assert.Equal(t, "14:00", slots[2].StartTime)
	assert.Equal(t, "friday", slots[3].Day)
}

func TestRemoveSlot(t *testing.T) {
	svc := NewAvailabilityService(newFakeSlotRepo())
	mentorID := uuid.New()
	ctx := context.Background()

	slot, err := svc.AddSlot(ctx, mentorID, "monday", "09:00", "12:00")
	require.NoError(t, err)

	// Someone else's mentor id does not reach the slot.
	assert.ErrorIs(t, svc.RemoveSlot(ctx, uuid.New(), slot.ID), ErrNotFound)

	require.NoError(t, svc.RemoveSlot(ctx, mentorID, slot.ID))
	assert.ErrorIs(t, svc.RemoveSlot(ctx, mentorID, slot.ID), ErrNotFound)

	slots, err := svc.ListSlots(ctx, mentorID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
