package settle_payment

// Request модель уведомления об оплате бронирования
type Request struct {
	BookingID int64  // ID бронирования
	PaymentID string // Идентификатор платежа во внешней платёжной системе
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID     int64  // ID бронирования
	Status string // Новый статус (confirmed или pending при ожидании модерации)
}
