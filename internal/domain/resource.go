package domain

import "time"

// OccupancyModel determines how many active bookings may hold a slot
type OccupancyModel string

const (
	// OccupancyExclusive allows at most one active booking per interval
	// (pavilions, kiosks, exclusive-use courts)
	OccupancyExclusive OccupancyModel = "exclusive"

	// OccupancyCapacity allows up to Capacity concurrent occupants per slot
	// (activities with registration seats)
	OccupancyCapacity OccupancyModel = "capacity"
)

// Resource is a bookable space or activity. Owned by the administrative
// catalog; the engine only reads it. The policy is read once per booking
// decision, so catalog changes apply to future bookings only.
type Resource struct {
	ID               int64
	Name             string
	OccupancyModel   OccupancyModel
	Capacity         int // 1 for exclusive resources
	RequiresApproval bool
	RequiresPayment  bool
	Price            float64
	Policy           ResourcePolicy
}

// IsExclusive returns true if the resource admits one occupant per slot
func (r *Resource) IsExclusive() bool {
	return r.OccupancyModel == OccupancyExclusive
}

// EffectiveCapacity returns the capacity bound used by the ledger
func (r *Resource) EffectiveCapacity() int {
	if r.IsExclusive() {
		return 1
	}
	return r.Capacity
}

// ResourcePolicy is the temporal policy of a resource
type ResourcePolicy struct {
	SlotGranularityMinutes int
	MinDurationMinutes     int
	MaxDurationMinutes     int
	AdvanceBookingDays     int // 0 = unlimited
	OpeningHours           WeekSchedule
	BlackoutDates          []string // "2006-01-02"
}

// EffectiveGranularity returns the slot granularity bounded to the legal
// range, falling back to the default when the catalog value is unusable
func (p *ResourcePolicy) EffectiveGranularity() int {
	g := p.SlotGranularityMinutes
	if g < MinSlotGranularityMinutes || g > MaxSlotGranularityMinutes {
		return DefaultSlotGranularityMinutes
	}
	return g
}

// EffectiveHorizonDays returns the advance-booking horizon bounded to the
// legal range. 0 means unlimited.
func (p *ResourcePolicy) EffectiveHorizonDays() int {
	d := p.AdvanceBookingDays
	if d < MinAdvanceBookingDays {
		return DefaultAdvanceBookingDays
	}
	if d > MaxAdvanceBookingDays {
		return MaxAdvanceBookingDays
	}
	return d
}

// IsBlackout reports whether the date is in the blackout set
func (p *ResourcePolicy) IsBlackout(date time.Time) bool {
	formatted := date.Format(DateFormat)
	for _, d := range p.BlackoutDates {
		if d == formatted {
			return true
		}
	}
	return false
}

// WeekSchedule holds the opening hours per weekday
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDate returns the schedule of the weekday the date falls on
func (w *WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// DaySchedule holds the opening hours of a single weekday
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *string // "HH:MM", nil when closed
	CloseTime *string // "HH:MM", nil when closed
}
