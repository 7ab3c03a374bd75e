package get_availability

import (
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

// Request модель запроса витрины доступности
type Request struct {
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата, на которую строится сетка слотов
}

// Response модель ответа с сеткой доступности на день
//
// Снапшот без блокировок: между чтением витрины и созданием бронирования
// слот может занять другой заявитель; истина устанавливается атомарной
// единицей работы при создании
type Response struct {
	ResourceID   int64                  // ID ресурса
	ResourceName string                 // Название ресурса
	Date         time.Time              // Дата
	IsOpen       bool                   // Работает ли ресурс в этот день
	Slots        []domain.AvailableSlot // Сетка слотов (пустая, если закрыто)
}
