package settle_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("settle_payment: booking not found")

	// ErrPaymentNotRequired возвращается, когда бронирование не требует
	// оплаты
	ErrPaymentNotRequired = errors.New("settle_payment: booking does not require payment")

	// ErrNotPending возвращается, когда оплата приходит по бронированию
	// вне статуса pending
	ErrNotPending = errors.New("settle_payment: booking is not pending")

	// ErrAlreadySettled возвращается при повторном уведомлении об оплате
	ErrAlreadySettled = errors.New("settle_payment: payment already settled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settle_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settle_payment: internal error")
)
