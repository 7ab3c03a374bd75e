package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrInvalidInterval возвращается при некорректном или невыровненном интервале
	ErrInvalidInterval = errors.New("create_booking: invalid interval")

	// ErrDurationOutOfRange возвращается, когда длительность вне лимитов политики
	ErrDurationOutOfRange = errors.New("create_booking: duration out of range")

	// ErrPastDate возвращается при дате в прошлом
	ErrPastDate = errors.New("create_booking: date is in the past")

	// ErrTooFarInAdvance возвращается, когда дата превышает горизонт бронирования
	ErrTooFarInAdvance = errors.New("create_booking: date is too far in advance")

	// ErrOutsideOperatingHours возвращается, когда интервал вне часов работы
	ErrOutsideOperatingHours = errors.New("create_booking: outside operating hours")

	// ErrBlackoutDate возвращается, когда дата закрыта для бронирования
	ErrBlackoutDate = errors.New("create_booking: blackout date")

	// ErrSlotTaken возвращается, когда интервал эксклюзивного ресурса занят
	ErrSlotTaken = errors.New("create_booking: slot is taken")

	// ErrCapacityExceeded возвращается, когда в слоте не осталось мест
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrDuplicateBooking возвращается, когда у заявителя уже есть активное
	// бронирование, пересекающееся с запрошенным интервалом
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
