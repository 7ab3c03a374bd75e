package get_availability

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("get_availability: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
