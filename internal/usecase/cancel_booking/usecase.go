package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
)

// UseCase отмены бронирования: заявитель (или администратор) снимает
// активное бронирование, освобождая занятые слоты в той же единице работы
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// New создает новый UseCase отмены бронирования
func New(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	u.logger.Info("[CancelBooking] Отмена бронирования: bookingID=%d, actorID=%d, isAdmin=%t",
		req.BookingID, req.ActorID, req.IsAdmin)

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[CancelBooking] Ошибка валидации: %v", err)
		return nil, err
	}

	var cancelled *domain.Booking

	// 2. Атомарная единица работы: проверки и освобождение слотов под
	// блокировкой строки бронирования
	err := u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := u.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return fmt.Errorf("%w: bookingID=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - получение бронирования: %v", ErrInternal, err)
		}

		// Отменять может заявитель или администратор
		if booking.RequesterID != req.ActorID && !req.IsAdmin {
			return fmt.Errorf("%w: bookingID=%d, actorID=%d", ErrAccessDenied, booking.ID, req.ActorID)
		}

		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: bookingID=%d, status=%s", ErrNotCancellable, booking.ID, booking.Status)
		}

		// Бронирования на прошедшие даты не отменяются: их закрывает
		// фоновая задача завершения
		today := truncateToDay(u.timeProvider.Now())
		if truncateToDay(booking.BookingDate).Before(today) {
			return fmt.Errorf("%w: bookingID=%d, date=%s", ErrDatePassed, booking.ID, booking.BookingDate.Format(domain.DateFormat))
		}

		if err := booking.Transition(domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Execute - переход статуса: %v", ErrInternal, err)
		}

		if err := u.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
			return fmt.Errorf("%w: Execute - фиксация отмены: %v", ErrInternal, err)
		}

		// Освобождаем резерв в той же единице работы: после коммита
		// слоты сразу доступны другим заявителям
		if err := u.ledgerRepo.ReleaseRange(txCtx, booking.ResourceID, booking.BookingDate, booking.StartTime, booking.EndTime, 1); err != nil {
			return fmt.Errorf("%w: Execute - освобождение слотов: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("[CancelBooking] Бронирование отменено: bookingID=%d", cancelled.ID)

	// 3. Публикуем событие только после коммита единицы работы
	if pubErr := u.publisher.Publish(ctx, events.NewEvent(events.TypeBookingCancelled, cancelled)); pubErr != nil {
		u.logger.Error("[CancelBooking] Ошибка публикации события: bookingID=%d: %v", cancelled.ID, pubErr)
	}

	return &Response{
		ID:     cancelled.ID,
		Status: string(cancelled.Status),
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
