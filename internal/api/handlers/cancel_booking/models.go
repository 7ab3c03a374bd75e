package cancel_booking

import (
	cancelBooking "github.com/mosparks/PKS-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelResponse {
	return &CancelResponse{
		ID:     resp.ID,
		Status: resp.Status,
	}
}
