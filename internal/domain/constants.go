package domain

// Default policy values, applied when the catalog omits a parameter
const (
	DefaultSlotGranularityMinutes = 60
	DefaultMinDurationMinutes     = 60
	DefaultMaxDurationMinutes     = 480 // 8 hours
	DefaultAdvanceBookingDays     = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 1440 // all-day slots
	MinAdvanceBookingDays     = 0    // 0 = unlimited
	MaxAdvanceBookingDays     = 365
	MaxNotesLength            = 500
	MaxDecisionNotesLength    = 500
	MaxRequesterPayloadBytes  = 4096
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов
// Терминальные бронирования не учитываются при подсчёте занятости
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов, удерживающих резерв слота
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
