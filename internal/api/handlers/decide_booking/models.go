package decide_booking

import (
	"time"

	decideBooking "github.com/mosparks/PKS-BookingService/internal/usecase/decide_booking"
)

// DecideBookingRequest HTTP request model
type DecideBookingRequest struct {
	Decision string  `json:"decision"` // "approve" | "reject"
	Notes    *string `json:"notes,omitempty"`
}

// DecisionResponse HTTP response model
type DecisionResponse struct {
	ID        int64   `json:"id"`
	Status    string  `json:"status"`
	DecidedAt *string `json:"decidedAt,omitempty"` // ISO 8601 format
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *decideBooking.Response) *DecisionResponse {
	result := &DecisionResponse{
		ID:     resp.ID,
		Status: resp.Status,
	}
	if resp.DecidedAt != nil {
		decidedAt := resp.DecidedAt.UTC().Format(time.RFC3339)
		result.DecidedAt = &decidedAt
	}
	return result
}
