package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

// Типы событий жизненного цикла бронирования
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingRejected  = "booking.rejected"
	TypeBookingCancelled = "booking.cancelled"
)

// Event событие для нотификатора
// Доставка - забота потребителя (at-least-once на его стороне);
// движок публикует событие только после коммита единицы работы
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id"`
	ResourceID  int64     `json:"resource_id"`
	RequesterID int64     `json:"requester_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewEvent собирает событие из бронирования
func NewEvent(eventType string, b *domain.Booking) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		BookingID:   b.ID,
		ResourceID:  b.ResourceID,
		RequesterID: b.RequesterID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		OccurredAt:  time.Now().UTC(),
	}
}
