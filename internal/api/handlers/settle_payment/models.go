package settle_payment

import (
	settlePayment "github.com/mosparks/PKS-BookingService/internal/usecase/settle_payment"
)

// SettlePaymentRequest HTTP request model
// Приходит от платёжного модуля после успешного списания
type SettlePaymentRequest struct {
	BookingID int64  `json:"bookingId"`
	PaymentID string `json:"paymentId"`
}

// SettlePaymentResponse HTTP response model
type SettlePaymentResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settlePayment.Response) *SettlePaymentResponse {
	return &SettlePaymentResponse{
		ID:     resp.ID,
		Status: resp.Status,
	}
}
