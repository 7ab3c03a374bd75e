package catalog

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("catalog client: resource not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
