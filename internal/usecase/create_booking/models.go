package create_booking

import (
	"encoding/json"
	"time"

	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID int64            // ID пользователя, создающего бронирование
	ResourceID  int64            // ID ресурса (павильон, корт, активность)
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Начало интервала, например "10:00"
	EndTime     types.TimeString // Конец интервала (полуоткрытый), например "12:00"
	Requester   json.RawMessage  // Контактные данные заявителя (прозрачный payload)
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	ResourceID  int64            // ID ресурса
	RequesterID int64            // ID заявителя
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Начало интервала
	EndTime     types.TimeString // Конец интервала
	Status      string           // Статус бронирования (pending/confirmed)

	// Денормализованные данные ресурса
	ResourceName     string  // Название ресурса
	Price            float64 // Цена (предрассчитана каталогом)
	RequiresApproval bool    // Требуется ли решение модерации
	RequiresPayment  bool    // Требуется ли оплата

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
