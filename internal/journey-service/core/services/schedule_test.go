package services

import (
	"testing"
	"time"

	"bus-track/internal/journey-service/core/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSlot_PicksSmallestForwardOffset(t *testing.T) {
	cursor := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	slots := []model.TimeSlot{
		{StartTime: "09:00", EndTime: "10:30"}, // already started, wraps to tomorrow
		{StartTime: "10:30", EndTime: "11:00"},
	}

	slot, next := NextSlot(slots, cursor)

	require.NotNil(t, slot)
	assert.Equal(t, "10:30", slot.StartTime)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), next)
}

func TestNextSlot_AdvancedCursorStaggersSequentialLegs(t *testing.T) {
	cursor := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	slots := []model.TimeSlot{
		{StartTime: "08:00", EndTime: "09:00"},
		{StartTime: "12:00", EndTime: "13:00"},
	}

	first, cursor := NextSlot(slots, cursor)
	require.NotNil(t, first)
	assert.Equal(t, "08:00", first.StartTime)

	// The cursor now sits past the first slot's end, so a second leg on the
	// same schedule gets the later window instead of the same one.
	second, _ := NextSlot(slots, cursor)
	require.NotNil(t, second)
	assert.Equal(t, "12:00", second.StartTime)
}

func TestNextSlot_WrapsPastMidnight(t *testing.T) {
	cursor := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	slots := []model.TimeSlot{
		{StartTime: "23:45", EndTime: "00:30"},
	}

	slot, next := NextSlot(slots, cursor)

	require.NotNil(t, slot)
	assert.Equal(t, "23:45", slot.StartTime)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC), next)
}

func TestNextSlot_NoUsableSlots(t *testing.T) {
	cursor := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	slot, next := NextSlot(nil, cursor)
	assert.Nil(t, slot)
	assert.Equal(t, cursor, next)

	slot, next = NextSlot([]model.TimeSlot{{StartTime: "25:99", EndTime: "bad"}}, cursor)
	assert.Nil(t, slot)
	assert.Equal(t, cursor, next)
}
