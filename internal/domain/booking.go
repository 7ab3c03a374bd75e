package domain

import (
	"encoding/json"
	"time"

	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a request to occupy a resource for a time interval.
// Bookings are never deleted: terminal rows are kept for audit and so that
// historical availability queries stay correct.
type Booking struct {
	ID          int64
	ResourceID  int64
	RequesterID int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	// Requester is the opaque contact payload (name, email, phone).
	// The engine stores and forwards it without interpreting it.
	Requester json.RawMessage

	// Denormalized resource data for history
	ResourceName string
	Price        float64

	// Confirmation gates, captured from the resource policy at creation
	// time. Policy changes never affect bookings already in flight.
	RequiresApproval bool
	RequiresPayment  bool
	ApprovalGranted  bool
	PaymentSettled   bool

	Notes         *string
	DecisionNotes *string
	DecidedAt     *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its reservation
// (counts against capacity and exclusivity)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// GatesSatisfied returns true if every confirmation gate has passed
// (moderation approval and payment settlement, where required)
func (b *Booking) GatesSatisfied() bool {
	if b.RequiresApproval && !b.ApprovalGranted {
		return false
	}
	if b.RequiresPayment && !b.PaymentSettled {
		return false
	}
	return true
}

// Interval returns the requested interval as a value type
func (b *Booking) Interval() Interval {
	return Interval{
		Date:      b.BookingDate,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}
