package create_booking

import (
	"errors"
	"net/http"

	"github.com/mosparks/PKS-BookingService/internal/api/handlers"
	"github.com/mosparks/PKS-BookingService/internal/api/middleware"
	"github.com/mosparks/PKS-BookingService/internal/policy"
	createBooking "github.com/mosparks/PKS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgResourceNotFound      = "ресурс не найден"
	msgInvalidInterval       = "некорректный интервал бронирования"
	msgDurationOutOfRange    = "длительность бронирования вне допустимых пределов"
	msgPastDate              = "дата бронирования уже прошла"
	msgTooFarInAdvance       = "дата бронирования слишком далеко в будущем"
	msgOutsideOperatingHours = "интервал вне часов работы ресурса"
	msgBlackoutDate          = "дата закрыта для бронирования"
	msgSlotTaken             = "выбранный интервал уже занят"
	msgCapacityExceeded      = "в выбранном слоте не осталось мест"
	msgDuplicateBooking      = "у вас уже есть бронирование на этот интервал"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequestBody)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, handlers.ReasonResourceNotFound, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonSlotTaken, msgSlotTaken)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonCapacityExceeded, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusConflict, handlers.ReasonDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonInvalidInterval), msgInvalidInterval)

		case errors.Is(err, createBooking.ErrDurationOutOfRange):
			h.logger.Warn("POST /bookings - Duration out of range: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonDurationOutOfRange), msgDurationOutOfRange)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonPastDate), msgPastDate)

		case errors.Is(err, createBooking.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Too far in advance: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonTooFarInAdvance), msgTooFarInAdvance)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonOutsideOperatingHours), msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrBlackoutDate):
			h.logger.Warn("POST /bookings - Blackout date: requester_id=%d, resource_id=%d", requesterID, req.ResourceID)
			handlers.RespondRejection(w, http.StatusBadRequest, string(policy.ReasonBlackoutDate), msgBlackoutDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: requester_id=%d: %v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: requester_id=%d, resource_id=%d, error=%v",
				requesterID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, requester_id=%d, resource_id=%d",
		result.ID, requesterID, req.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
