package settle_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
)

// UseCase учёта оплаты: фиксирует поступление платежа по бронированию.
// Подтверждение происходит только когда закрыты все условия - для
// ресурсов с модерацией бронирование остаётся pending до её решения
type UseCase struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// New создает новый UseCase учёта оплаты
func New(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет учёт оплаты бронирования
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	u.logger.Info("[SettlePayment] Учёт оплаты: bookingID=%d, paymentID=%s", req.BookingID, req.PaymentID)

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[SettlePayment] Ошибка валидации: %v", err)
		return nil, err
	}

	var (
		updated   *domain.Booking
		confirmed bool
	)

	// 2. Атомарная единица работы под блокировкой строки бронирования
	err := u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := u.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				return fmt.Errorf("%w: bookingID=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - получение бронирования: %v", ErrInternal, err)
		}

		if !booking.RequiresPayment {
			return fmt.Errorf("%w: bookingID=%d", ErrPaymentNotRequired, booking.ID)
		}

		if booking.PaymentSettled {
			return fmt.Errorf("%w: bookingID=%d", ErrAlreadySettled, booking.ID)
		}

		// Оплата учитывается только по ожидающим бронированиям: платёж
		// по отклонённому или отменённому бронированию - повод для
		// возврата средств на стороне платёжного модуля
		if booking.Status != domain.StatusPending {
			return fmt.Errorf("%w: bookingID=%d, status=%s", ErrNotPending, booking.ID, booking.Status)
		}

		if err := u.bookingRepo.SetPaymentSettled(txCtx, booking.ID); err != nil {
			return fmt.Errorf("%w: Execute - фиксация оплаты: %v", ErrInternal, err)
		}
		booking.PaymentSettled = true

		if booking.GatesSatisfied() {
			if err := booking.Transition(domain.StatusConfirmed); err != nil {
				return fmt.Errorf("%w: Execute - переход статуса: %v", ErrInternal, err)
			}
			if err := u.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusConfirmed); err != nil {
				return fmt.Errorf("%w: Execute - обновление статуса: %v", ErrInternal, err)
			}
			confirmed = true
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("[SettlePayment] Оплата учтена: bookingID=%d, status=%s", updated.ID, updated.Status)

	// 3. Публикуем событие только после коммита единицы работы
	if confirmed {
		if pubErr := u.publisher.Publish(ctx, events.NewEvent(events.TypeBookingConfirmed, updated)); pubErr != nil {
			u.logger.Error("[SettlePayment] Ошибка публикации события: bookingID=%d: %v", updated.ID, pubErr)
		}
	}

	return &Response{
		ID:     updated.ID,
		Status: string(updated.Status),
	}, nil
}

// validateRequest проверяет корректность входных данных запроса
func (u *UseCase) validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID должен быть положительным, получен %d", ErrInvalidInput, req.BookingID)
	}

	if strings.TrimSpace(req.PaymentID) == "" {
		return fmt.Errorf("%w: paymentID обязателен", ErrInvalidInput)
	}

	return nil
}
