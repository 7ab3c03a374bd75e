package create_booking

import (
	"context"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	"github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveForDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error)
}

// LedgerRepository интерфейс реестра занятости слотов
type LedgerRepository interface {
	TryReserve(ctx context.Context, resourceID int64, date time.Time, slot types.TimeString, capacity, amount int) error
}

// CatalogClient интерфейс клиента каталога ресурсов
type CatalogClient interface {
	GetResource(ctx context.Context, resourceID int64) (*catalog.Resource, error)
}

// EventPublisher интерфейс публикации событий для нотификатора
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
