package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя, выполняющего отмену
	IsAdmin   bool   // Администратор может отменять чужие бронирования
	Reason    string // Причина отмены
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID     int64  // ID бронирования
	Status string // Новый статус (cancelled)
}
