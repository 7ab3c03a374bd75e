package ledger

import "errors"

var (
	// ErrCapacityExceeded возвращается, когда в слоте не осталось мест
	ErrCapacityExceeded = errors.New("ledger.repository: slot capacity exceeded")

	// ErrInvalidAmount возвращается при некорректном количестве мест
	ErrInvalidAmount = errors.New("ledger.repository: invalid reservation amount")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ledger.repository: failed to scan row")
)
