// Package policy evaluates a resource's temporal policy against a candidate
// interval. The evaluator is a pure function: no state, no side effects,
// safe to call repeatedly and concurrently.
package policy

import (
	"fmt"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// Reason is a stable machine-readable rejection code. The UI renders
// localized guidance per code, so codes never change once published.
type Reason string

const (
	ReasonInvalidInterval       Reason = "invalid_interval"
	ReasonDurationOutOfRange    Reason = "duration_out_of_range"
	ReasonPastDate              Reason = "past_date"
	ReasonTooFarInAdvance       Reason = "too_far_in_advance"
	ReasonOutsideOperatingHours Reason = "outside_operating_hours"
	ReasonBlackoutDate          Reason = "blackout_date"
)

// Violation is a structured policy rejection: a stable code plus a
// human-readable message
type Violation struct {
	Reason  Reason
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("policy violation %s: %s", v.Reason, v.Message)
}

func violation(reason Reason, format string, args ...interface{}) *Violation {
	return &Violation{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Evaluate checks a candidate interval against the resource policy.
// Checks run in a fixed order and the first violation wins, so rejection
// messages are deterministic. Returns nil if the interval is legal.
func Evaluate(p domain.ResourcePolicy, date time.Time, start, end types.TimeString, now time.Time) *Violation {
	granularity := p.EffectiveGranularity()

	// 1. Interval validity and slot alignment
	startMin, err := start.Minutes()
	if err != nil {
		return violation(ReasonInvalidInterval, "start time %q is not a valid HH:MM value", start)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return violation(ReasonInvalidInterval, "end time %q is not a valid HH:MM value", end)
	}
	if startMin >= endMin {
		return violation(ReasonInvalidInterval, "start time %s must be before end time %s", start, end)
	}
	// The slot grid is anchored at the day's opening time, so a resource
	// opening on a half hour advertises exactly the intervals that pass
	// here. On a closed day the anchor falls back to midnight; the
	// operating-hours check rejects the interval anyway.
	alignOrigin := 0
	if schedule := p.OpeningHours.ForDate(date); schedule.IsOpen && schedule.OpenTime != nil {
		if openMin, err := types.TimeString(*schedule.OpenTime).Minutes(); err == nil {
			alignOrigin = openMin
		}
	}
	if (startMin-alignOrigin)%granularity != 0 || (endMin-alignOrigin)%granularity != 0 {
		return violation(ReasonInvalidInterval, "interval %s-%s is not aligned to the %d-minute slot grid", start, end, granularity)
	}

	// 2. Duration bounds
	duration := endMin - startMin
	minDuration := p.MinDurationMinutes
	if minDuration <= 0 {
		minDuration = granularity
	}
	maxDuration := p.MaxDurationMinutes
	if maxDuration <= 0 {
		maxDuration = domain.DefaultMaxDurationMinutes
	}
	if duration < minDuration || duration > maxDuration {
		return violation(ReasonDurationOutOfRange, "duration %d minutes is outside the allowed range %d-%d", duration, minDuration, maxDuration)
	}

	// 3. The date must not be in the past
	dateOnly := truncateToDay(date)
	today := truncateToDay(now)
	if dateOnly.Before(today) {
		return violation(ReasonPastDate, "date %s is in the past", date.Format(domain.DateFormat))
	}

	// 4. Advance booking horizon (0 = unlimited)
	if horizonDays := p.EffectiveHorizonDays(); horizonDays > 0 {
		horizon := today.AddDate(0, 0, horizonDays)
		if dateOnly.After(horizon) {
			return violation(ReasonTooFarInAdvance, "date %s is more than %d days ahead", date.Format(domain.DateFormat), horizonDays)
		}
	}

	// 5. Containment within the weekday's opening hours
	schedule := p.OpeningHours.ForDate(date)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return violation(ReasonOutsideOperatingHours, "resource is closed on %s", date.Weekday())
	}
	openTime := types.TimeString(*schedule.OpenTime)
	closeTime := types.TimeString(*schedule.CloseTime)
	if start.IsBefore(openTime) || end.IsAfter(closeTime) {
		return violation(ReasonOutsideOperatingHours, "interval %s-%s is outside operating hours %s-%s", start, end, openTime, closeTime)
	}

	// 6. Blackout dates
	if p.IsBlackout(date) {
		return violation(ReasonBlackoutDate, "date %s is blocked for booking", date.Format(domain.DateFormat))
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
