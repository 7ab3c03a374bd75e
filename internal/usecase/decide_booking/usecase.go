package decide_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
)

// UseCase решения модерации: утверждает или отклоняет ожидающее
// бронирование. Отклонение освобождает занятые слоты в той же единице
// работы, утверждение переводит в confirmed только когда закрыты все
// условия подтверждения (для платных ресурсов - после оплаты)
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// New создает новый UseCase решения модерации
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

// Execute выполняет решение модерации по бронированию
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	u.logger.Info("[DecideBooking] Решение модерации: bookingID=%d, moderatorID=%d, decision=%s",
		req.BookingID, req.ModeratorID, req.Decision)

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[DecideBooking] Ошибка валидации: %v", err)
		return nil, err
	}

	var (
		updated   *domain.Booking
		eventType string
	)

	// 2. Атомарная единица работы: проверка статуса, переход и
	// освобождение слотов выполняются под блокировкой строки бронирования
	err := u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := u.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return fmt.Errorf("%w: bookingID=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - получение бронирования: %v", ErrInternal, err)
		}

		// Решение выносится только по ожидающим бронированиям.
		// Повторное решение по тому же бронированию - ошибка, а не no-op:
		// терминальные статусы окончательны
		if booking.Status != domain.StatusPending {
			return fmt.Errorf("%w: bookingID=%d, status=%s", ErrNotPending, booking.ID, booking.Status)
		}

		if !booking.RequiresApproval {
			return fmt.Errorf("%w: bookingID=%d", ErrApprovalNotRequired, booking.ID)
		}

		switch req.Decision {
		case DecisionApprove:
			booking.ApprovalGranted = true

			if booking.GatesSatisfied() {
				// Все условия закрыты - подтверждаем
				if err := booking.Transition(domain.StatusConfirmed); err != nil {
					return fmt.Errorf("%w: Execute - переход статуса: %v", ErrInternal, err)
				}
				if err := u.bookingRepo.Decide(txCtx, booking.ID, domain.StatusConfirmed, req.Notes); err != nil {
					return fmt.Errorf("%w: Execute - фиксация решения: %v", ErrInternal, err)
				}
				eventType = events.TypeBookingConfirmed
			} else {
				// Модерация пройдена, но бронирование остаётся pending
				// до поступления оплаты. Слоты продолжают удерживаться
				if err := u.bookingRepo.RecordApproval(txCtx, booking.ID, req.Notes); err != nil {
					return fmt.Errorf("%w: Execute - фиксация одобрения: %v", ErrInternal, err)
				}
			}

		case DecisionReject:
			if err := booking.Transition(domain.StatusRejected); err != nil {
				return fmt.Errorf("%w: Execute - переход статуса: %v", ErrInternal, err)
			}
			if err := u.bookingRepo.Decide(txCtx, booking.ID, domain.StatusRejected, req.Notes); err != nil {
				return fmt.Errorf("%w: Execute - фиксация решения: %v", ErrInternal, err)
			}

			// Отклонение освобождает резерв в той же единице работы:
			// после коммита слоты сразу доступны другим заявителям
			if err := u.ledgerRepo.ReleaseRange(txCtx, booking.ResourceID, booking.BookingDate, booking.StartTime, booking.EndTime, 1); err != nil {
				return fmt.Errorf("%w: Execute - освобождение слотов: %v", ErrInternal, err)
			}
			eventType = events.TypeBookingRejected
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("[DecideBooking] Решение применено: bookingID=%d, status=%s", updated.ID, updated.Status)

	// 3. Публикуем событие только после коммита единицы работы
	if eventType != "" {
		if pubErr := u.publisher.Publish(ctx, events.NewEvent(eventType, updated)); pubErr != nil {
			u.logger.Error("[DecideBooking] Ошибка публикации события: bookingID=%d: %v", updated.ID, pubErr)
		}
	}

	decidedAt := u.timeProvider.Now()
	return &Response{
		ID:        updated.ID,
		Status:    string(updated.Status),
		DecidedAt: &decidedAt,
	}, nil
}
