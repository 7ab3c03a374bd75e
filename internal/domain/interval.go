package domain

import (
	"time"

	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// Interval is a half-open time range [StartTime, EndTime) on a date.
// Invariant: StartTime < EndTime, both aligned to the resource's slot
// granularity.
type Interval struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps reports whether two intervals on the same date intersect.
// Half-open comparison: touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(i.EndTime)
}

// DurationMinutes returns EndTime - StartTime in minutes
func (i Interval) DurationMinutes() (int, error) {
	return i.EndTime.Sub(i.StartTime)
}

// SlotsCovered returns the start of every granularity-sized slot the
// interval [start, end) covers. Assumes aligned, validated endpoints.
func SlotsCovered(start, end types.TimeString, granularityMinutes int) ([]types.TimeString, error) {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultSlotGranularityMinutes
	}

	slots := make([]types.TimeString, 0)
	current := start

	for current.IsBefore(end) {
		slots = append(slots, current)
		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return slots, nil
}
