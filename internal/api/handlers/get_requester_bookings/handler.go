package get_requester_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mosparks/PKS-BookingService/internal/api/handlers"
	"github.com/mosparks/PKS-BookingService/internal/api/middleware"
	"github.com/mosparks/PKS-BookingService/internal/service/bookings"
	"github.com/mosparks/PKS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус бронирования"
	msgAccessDenied  = "нет прав для просмотра чужих бронирований"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	requesterID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || requesterID <= 0 {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Пользователь видит только свою историю, администратор - любую
	if requesterID != actorID && !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: actor_id=%d, requester_id=%d", actorID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetRequesterBookingsRequest{
		RequesterID: requesterID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetRequesterBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid status: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to fetch bookings: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
