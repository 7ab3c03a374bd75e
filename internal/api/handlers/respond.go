package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const msgInternalError = "внутренняя ошибка сервера"

// Стабильные машинные коды причин отказа. Портал подбирает локализованную
// подсказку по коду, поэтому опубликованные значения не меняются
const (
	ReasonResourceNotFound    = "resource_not_found"
	ReasonBookingNotFound     = "booking_not_found"
	ReasonAccessDenied        = "access_denied"
	ReasonSlotTaken           = "slot_taken"
	ReasonCapacityExceeded    = "capacity_exceeded"
	ReasonDuplicateBooking    = "duplicate_booking"
	ReasonNotPending          = "not_pending"
	ReasonApprovalNotRequired = "approval_not_required"
	ReasonInvalidDecision     = "invalid_decision"
	ReasonNotCancellable      = "not_cancellable"
	ReasonDatePassed          = "date_passed"
	ReasonPaymentNotRequired  = "payment_not_required"
	ReasonAlreadySettled      = "already_settled"
	ReasonInvalidInput        = "invalid_input"
)

// ErrorResponse модель ошибки API: code дублирует HTTP статус, reason -
// стабильный машинный код причины, message - человекочитаемое описание
type ErrorResponse struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в структуру
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		// Ответ уже начат, ошибку кодирования можно только проигнорировать
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с указанным статусом и сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// RespondRejection отправляет отказ со стабильным машинным кодом причины
func RespondRejection(w http.ResponseWriter, status int, reason string, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Reason:  reason,
		Message: message,
	})
}

// RespondBadRequest отправляет ошибку 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondRejection(w, http.StatusBadRequest, ReasonInvalidInput, message)
}

// RespondNotFound отправляет ошибку 404
func RespondNotFound(w http.ResponseWriter, reason string, message string) {
	RespondRejection(w, http.StatusNotFound, reason, message)
}

// RespondForbidden отправляет ошибку 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondRejection(w, http.StatusForbidden, ReasonAccessDenied, message)
}

// RespondInternalError отправляет ошибку 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
