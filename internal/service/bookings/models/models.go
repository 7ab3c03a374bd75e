package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetRequesterBookingsRequest запрос на получение бронирований заявителя
type GetRequesterBookingsRequest struct {
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// GetResourceBookingsRequest запрос на получение бронирований ресурса
type GetResourceBookingsRequest struct {
	ResourceID      int64      `json:"resourceId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить терминальные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetResourceBookingsRequest) ToDomainFilter() (domain.ResourceBookingsFilter, error) {
	filter := domain.ResourceBookingsFilter{
		ResourceID:      r.ResourceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	ResourceID  int64  `json:"resourceId"`
	RequesterID int64  `json:"requesterId"`
	BookingDate string `json:"bookingDate"` // "2026-07-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "12:00"
	Status      string `json:"status"`

	// Денормализованные данные
	ResourceName string          `json:"resourceName"`
	Price        float64         `json:"price"`
	Requester    json.RawMessage `json:"requester,omitempty"`

	RequiresApproval bool `json:"requiresApproval"`
	RequiresPayment  bool `json:"requiresPayment"`
	ApprovalGranted  bool `json:"approvalGranted"`
	PaymentSettled   bool `json:"paymentSettled"`

	Notes         *string `json:"notes,omitempty"`
	DecisionNotes *string `json:"decisionNotes,omitempty"`
	DecidedAt     *string `json:"decidedAt,omitempty"` // ISO 8601 format

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ResourceID:         b.ResourceID,
		RequesterID:        b.RequesterID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		ResourceName:       b.ResourceName,
		Price:              b.Price,
		Requester:          b.Requester,
		RequiresApproval:   b.RequiresApproval,
		RequiresPayment:    b.RequiresPayment,
		ApprovalGranted:    b.ApprovalGranted,
		PaymentSettled:     b.PaymentSettled,
		Notes:              b.Notes,
		DecisionNotes:      b.DecisionNotes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.DecidedAt != nil {
		decidedAt := b.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result.Bookings = append(result.Bookings, *resp)
		}
	}

	return result
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending:
		return domain.StatusPending, nil
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusRejected:
		return domain.StatusRejected, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	default:
		return "", ErrInvalidStatus
	}
}
