package decide_booking

import "time"

// Возможные решения модерации
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Request модель запроса на решение модерации по бронированию
type Request struct {
	BookingID   int64   // ID бронирования
	ModeratorID int64   // ID модератора, выносящего решение
	Decision    string  // "approve" | "reject"
	Notes       *string // Комментарий модератора (опционально)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID        int64      // ID бронирования
	Status    string     // Новый статус (confirmed/rejected или pending при ожидании оплаты)
	DecidedAt *time.Time // Время решения
}
