package settle_payment

import (
	"errors"
	"net/http"

	"github.com/mosparks/PKS-BookingService/internal/api/handlers"
	settlePayment "github.com/mosparks/PKS-BookingService/internal/usecase/settle_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgPaymentNotRequired = "бронирование не требует оплаты"
	msgNotPending         = "бронирование уже обработано"
	msgAlreadySettled     = "оплата по бронированию уже учтена"
)

type Handler struct {
	useCase SettlePaymentUseCase
	logger  Logger
}

func NewHandler(useCase SettlePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/v1/payments/settle
// Внутренний endpoint для платёжного модуля, недоступен через гейтвей
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SettlePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/payments/settle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), settlePayment.Request{
		BookingID: req.BookingID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, settlePayment.ErrBookingNotFound):
			h.logger.Warn("POST /internal/payments/settle - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, handlers.ReasonBookingNotFound, msgBookingNotFound)

		case errors.Is(err, settlePayment.ErrPaymentNotRequired):
			h.logger.Warn("POST /internal/payments/settle - Payment not required: booking_id=%d", req.BookingID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonPaymentNotRequired, msgPaymentNotRequired)

		case errors.Is(err, settlePayment.ErrNotPending):
			h.logger.Warn("POST /internal/payments/settle - Not pending: booking_id=%d", req.BookingID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonNotPending, msgNotPending)

		case errors.Is(err, settlePayment.ErrAlreadySettled):
			h.logger.Warn("POST /internal/payments/settle - Already settled: booking_id=%d", req.BookingID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonAlreadySettled, msgAlreadySettled)

		case errors.Is(err, settlePayment.ErrInvalidInput):
			h.logger.Warn("POST /internal/payments/settle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /internal/payments/settle - Failed to settle: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/payments/settle - Payment settled: booking_id=%d, status=%s, payment_id=%s",
		result.ID, result.Status, req.PaymentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
