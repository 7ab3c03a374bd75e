package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда отменяет не заявитель и не
	// администратор
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotCancellable возвращается, когда бронирование уже в терминальном
	// статусе
	ErrNotCancellable = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrDatePassed возвращается при попытке отменить бронирование на
	// прошедшую дату
	ErrDatePassed = errors.New("cancel_booking: booking date has passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
