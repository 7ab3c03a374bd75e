package create_booking

import (
	"encoding/json"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	createBooking "github.com/mosparks/PKS-BookingService/internal/usecase/create_booking"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID  int64           `json:"resourceId"`
	BookingDate string          `json:"bookingDate"` // "2026-07-15"
	StartTime   string          `json:"startTime"`   // "10:00"
	EndTime     string          `json:"endTime"`     // "12:00"
	Requester   json.RawMessage `json:"requester,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	ResourceID       int64   `json:"resourceId"`
	RequesterID      int64   `json:"requesterId"`
	BookingDate      string  `json:"bookingDate"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Status           string  `json:"status"`
	ResourceName     string  `json:"resourceName"`
	Price            float64 `json:"price"`
	RequiresApproval bool    `json:"requiresApproval"`
	RequiresPayment  bool    `json:"requiresPayment"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID int64) (createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return createBooking.Request{}, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return createBooking.Request{}, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		RequesterID: requesterID,
		ResourceID:  r.ResourceID,
		Date:        bookingDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Requester:   r.Requester,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ResourceID:       resp.ResourceID,
		RequesterID:      resp.RequesterID,
		BookingDate:      resp.BookingDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		Status:           resp.Status,
		ResourceName:     resp.ResourceName,
		Price:            resp.Price,
		RequiresApproval: resp.RequiresApproval,
		RequiresPayment:  resp.RequiresPayment,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
