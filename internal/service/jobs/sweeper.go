package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
)

// Причина автоматической отмены просроченных ожидающих бронирований
const expiredPendingReason = "срок бронирования истёк до вынесения решения"

// CompletionSweeper фоновая задача завершения прошедших бронирований:
// подтверждённые с прошедшей датой переводятся в completed, ожидающие -
// отменяются с освобождением резерва. Строки не удаляются: история
// сохраняется для отчётности
type CompletionSweeper struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewCompletionSweeper создает новую задачу завершения бронирований
func NewCompletionSweeper(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *CompletionSweeper {
	return &CompletionSweeper{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Run выполняет один проход по прошедшим активным бронированиям.
// Каждое бронирование обрабатывается в отдельной единице работы: сбой на
// одном не блокирует остальные, пропущенные подберёт следующий запуск
func (s *CompletionSweeper) Run(ctx context.Context) error {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	elapsed, err := s.bookingRepo.GetElapsedActive(ctx, today)
	if err != nil {
		s.logger.Error("[CompletionSweeper] Ошибка выборки прошедших бронирований: %v", err)
		return fmt.Errorf("completion sweep: %w", err)
	}

	if len(elapsed) == 0 {
		return nil
	}

	s.logger.Info("[CompletionSweeper] Найдено %d прошедших активных бронирований", len(elapsed))

	var failures int
	for _, booking := range elapsed {
		if err := s.sweepOne(ctx, booking.ID); err != nil {
			s.logger.Error("[CompletionSweeper] Ошибка обработки бронирования id=%d: %v", booking.ID, err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("completion sweep: %d of %d bookings failed", failures, len(elapsed))
	}
	return nil
}

func (s *CompletionSweeper) sweepOne(ctx context.Context, bookingID int64) error {
	var (
		eventType string
		swept     *domain.Booking
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем под блокировкой строки: между выборкой и этой
		// транзакцией статус мог измениться (модератор, отмена).
		// Терминальные бронирования не трогаем - повторное освобождение
		// резерва испортило бы счётчики реестра
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return nil
			}
			return err
		}

		switch booking.Status {
		case domain.StatusConfirmed:
			// Подтверждённое бронирование с прошедшей датой завершается
			if err := booking.Transition(domain.StatusCompleted); err != nil {
				return err
			}
			if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCompleted); err != nil {
				return err
			}
			swept = booking
			return nil

		case domain.StatusPending:
			// Решение так и не было вынесено - отменяем и освобождаем
			// резерв, чтобы реестр не накапливал мёртвые слоты
			if err := booking.Transition(domain.StatusCancelled); err != nil {
				return err
			}
			if err := s.bookingRepo.Cancel(txCtx, booking.ID, expiredPendingReason); err != nil {
				return err
			}
			if err := s.ledgerRepo.ReleaseRange(txCtx, booking.ResourceID, booking.BookingDate, booking.StartTime, booking.EndTime, 1); err != nil {
				return err
			}
			eventType = events.TypeBookingCancelled
			swept = booking
			return nil

		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	if swept == nil {
		return nil
	}

	if eventType != "" {
		if pubErr := s.publisher.Publish(ctx, events.NewEvent(eventType, swept)); pubErr != nil {
			s.logger.Error("[CompletionSweeper] Ошибка публикации события: bookingID=%d: %v", swept.ID, pubErr)
		}
	}

	s.logger.Info("[CompletionSweeper] Бронирование id=%d переведено в %s", swept.ID, swept.Status)
	return nil
}
