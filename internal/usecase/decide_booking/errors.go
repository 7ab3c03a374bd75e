package decide_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decide_booking: booking not found")

	// ErrNotPending возвращается, когда решение выносится по бронированию
	// вне статуса pending (уже решено или завершено)
	ErrNotPending = errors.New("decide_booking: booking is not pending")

	// ErrApprovalNotRequired возвращается, когда бронирование не требует
	// решения модерации
	ErrApprovalNotRequired = errors.New("decide_booking: booking does not require approval")

	// ErrInvalidDecision возвращается при неизвестном значении решения
	ErrInvalidDecision = errors.New("decide_booking: invalid decision")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("decide_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_booking: internal error")
)
