package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mosparks/PKS-BookingService/internal/api/handlers"
	"github.com/mosparks/PKS-BookingService/internal/api/middleware"
	decideBooking "github.com/mosparks/PKS-BookingService/internal/usecase/decide_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgBookingNotFound     = "бронирование не найдено"
	msgNotPending          = "решение по бронированию уже вынесено"
	msgApprovalNotRequired = "бронирование не требует решения модерации"
	msgInvalidDecision     = "некорректное решение, ожидается approve или reject"
	msgAdminOnly           = "операция доступна только администраторам"
)

type Handler struct {
	useCase DecideBookingUseCase
	logger  Logger
}

func NewHandler(useCase DecideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequestBody)
		return
	}

	// Решение модерации выносят только администраторы
	if !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("POST /bookings/{id}/decision - Access denied: user_id=%d", moderatorID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DecideBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), decideBooking.Request{
		BookingID:   bookingID,
		ModeratorID: moderatorID,
		Decision:    req.Decision,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, decideBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, handlers.ReasonBookingNotFound, msgBookingNotFound)

		case errors.Is(err, decideBooking.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/decision - Not pending: booking_id=%d", bookingID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonNotPending, msgNotPending)

		case errors.Is(err, decideBooking.ErrApprovalNotRequired):
			h.logger.Warn("POST /bookings/{id}/decision - Approval not required: booking_id=%d", bookingID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonApprovalNotRequired, msgApprovalNotRequired)

		case errors.Is(err, decideBooking.ErrInvalidDecision):
			h.logger.Warn("POST /bookings/{id}/decision - Invalid decision: booking_id=%d, decision=%s", bookingID, req.Decision)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.ReasonInvalidDecision, msgInvalidDecision)

		case errors.Is(err, decideBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/decision - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/decision - Failed to decide: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/decision - Decision applied: booking_id=%d, status=%s, moderator_id=%d",
		result.ID, result.Status, moderatorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
