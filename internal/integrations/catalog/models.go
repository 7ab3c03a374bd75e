package catalog

import "github.com/mosparks/PKS-BookingService/internal/domain"

// Resource модель ресурса из каталога (административный модуль)
type Resource struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	OccupancyModel   string  `json:"occupancy_model"` // "exclusive" | "capacity"
	Capacity         int     `json:"capacity"`
	RequiresApproval bool    `json:"requires_approval"`
	RequiresPayment  bool    `json:"requires_payment"`
	Price            float64 `json:"price"`
	Policy           Policy  `json:"policy"`
}

// Policy временная политика ресурса
type Policy struct {
	SlotGranularityMinutes int          `json:"slot_granularity_minutes"`
	MinDurationMinutes     int          `json:"min_duration_minutes"`
	MaxDurationMinutes     int          `json:"max_duration_minutes"`
	AdvanceBookingDays     int          `json:"advance_booking_days"`
	OpeningHours           WeekSchedule `json:"opening_hours"`
	BlackoutDates          []string     `json:"blackout_dates"`
}

// WeekSchedule расписание работы по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`
	CloseTime *string `json:"close_time,omitempty"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует модель каталога в доменную
func (r *Resource) ToDomain() *domain.Resource {
	return &domain.Resource{
		ID:               r.ID,
		Name:             r.Name,
		OccupancyModel:   domain.OccupancyModel(r.OccupancyModel),
		Capacity:         r.Capacity,
		RequiresApproval: r.RequiresApproval,
		RequiresPayment:  r.RequiresPayment,
		Price:            r.Price,
		Policy: domain.ResourcePolicy{
			SlotGranularityMinutes: r.Policy.SlotGranularityMinutes,
			MinDurationMinutes:     r.Policy.MinDurationMinutes,
			MaxDurationMinutes:     r.Policy.MaxDurationMinutes,
			AdvanceBookingDays:     r.Policy.AdvanceBookingDays,
			OpeningHours: domain.WeekSchedule{
				Monday:    toDomainDay(r.Policy.OpeningHours.Monday),
				Tuesday:   toDomainDay(r.Policy.OpeningHours.Tuesday),
				Wednesday: toDomainDay(r.Policy.OpeningHours.Wednesday),
				Thursday:  toDomainDay(r.Policy.OpeningHours.Thursday),
				Friday:    toDomainDay(r.Policy.OpeningHours.Friday),
				Saturday:  toDomainDay(r.Policy.OpeningHours.Saturday),
				Sunday:    toDomainDay(r.Policy.OpeningHours.Sunday),
			},
			BlackoutDates: r.Policy.BlackoutDates,
		},
	}
}

func toDomainDay(d DaySchedule) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:    d.IsOpen,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
	}
}
