package services

import (
	"fmt"
	"time"

	"bus-track/internal/journey-service/core/domain/model"
)

const minutesPerDay = 24 * 60

// NextSlot picks the operating window whose start is the smallest
// non-negative forward offset from cursor, wrapping past midnight, and
// returns the cursor advanced past that slot's end so sequential legs get
// staggered suggestions. Nil when the vehicle has no usable slots; a missing
// schedule is never fatal.
func NextSlot(slots []model.TimeSlot, cursor time.Time) (*model.TimeSlot, time.Time) {
	cursorMinute := cursor.Hour()*60 + cursor.Minute()

	best := -1
	bestOffset := minutesPerDay + 1
	bestDuration := 0
	for i, s := range slots {
		startMinute, err := parseWallClock(s.StartTime)
		if err != nil {
			continue
		}
		endMinute, err := parseWallClock(s.EndTime)
		if err != nil {
			continue
		}
		offset := (startMinute - cursorMinute + minutesPerDay) % minutesPerDay
		if offset < bestOffset {
			bestOffset = offset
			bestDuration = (endMinute - startMinute + minutesPerDay) % minutesPerDay
			best = i
		}
	}
	if best == -1 {
		return nil, cursor
	}

	slot := slots[best]
	start := cursor.Truncate(time.Minute).Add(time.Duration(bestOffset) * time.Minute)
	return &slot, start.Add(time.Duration(bestDuration) * time.Minute)
}

func parseWallClock(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("parse time slot %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
