package decide_booking

import (
	"context"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Decide(ctx context.Context, id int64, status domain.BookingStatus, notes *string) error
	RecordApproval(ctx context.Context, id int64, notes *string) error
}

// LedgerRepository интерфейс реестра занятости слотов
type LedgerRepository interface {
	ReleaseRange(ctx context.Context, resourceID int64, date time.Time, start, end types.TimeString, amount int) error
}

// EventPublisher интерфейс публикации событий для нотификатора
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
