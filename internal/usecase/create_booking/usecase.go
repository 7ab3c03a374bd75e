package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	"github.com/mosparks/PKS-BookingService/internal/infra/storage/ledger"
	"github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
	"github.com/mosparks/PKS-BookingService/internal/overlap"
	"github.com/mosparks/PKS-BookingService/internal/policy"
)

// UseCase создания бронирования: прогоняет заявку через временную политику
// ресурса и атомарно резервирует слоты внутри единицы работы
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	catalog      CatalogClient
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// New создает новый UseCase для создания бронирования
func New(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	catalogClient CatalogClient,
	publisher EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		catalog:      catalogClient,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет создание бронирования
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	u.logger.Info("[CreateBooking] Создание бронирования: requesterID=%d, resourceID=%d, date=%s, interval=%s-%s",
		req.RequesterID, req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[CreateBooking] Ошибка валидации: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс и его политику из каталога
	resource, err := u.catalog.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalog.ErrResourceNotFound) {
			u.logger.Warn("[CreateBooking] Ресурс не найден: resourceID=%d", req.ResourceID)
			return nil, fmt.Errorf("%w: resourceID=%d", ErrResourceNotFound, req.ResourceID)
		}
		u.logger.Error("[CreateBooking] Ошибка получения ресурса: %v", err)
		return nil, fmt.Errorf("%w: Execute - получение ресурса: %v", ErrInternal, err)
	}
	domainResource := resource.ToDomain()

	// 3. Проверяем заявку по временной политике ресурса.
	// Политика читается один раз на решение: изменения в каталоге
	// влияют только на будущие бронирования
	now := u.timeProvider.Now()
	if violation := policy.Evaluate(domainResource.Policy, req.Date, req.StartTime, req.EndTime, now); violation != nil {
		u.logger.Warn("[CreateBooking] Нарушение политики: %v", violation)
		return nil, u.mapViolation(violation)
	}

	granularity := domainResource.Policy.EffectiveGranularity()

	var created *domain.Booking

	// 4. Атомарная единица работы: проверка занятости и резервирование.
	// Serializable-транзакция вместе с блокировкой активных бронирований
	// дня сериализует конкурентов за один ресурс-день
	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем активные бронирования дня с блокировкой строк
		active, err := u.bookingRepo.GetActiveForDate(txCtx, req.ResourceID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: Execute - загрузка активных бронирований: %v", ErrInternal, err)
		}

		idx := overlap.FromBookings(active)

		// 4.2. Эксклюзивный ресурс: любое пересечение с активным
		// бронированием запрещено
		if domainResource.IsExclusive() && idx.Query(req.StartTime, req.EndTime) {
			return fmt.Errorf("%w: resourceID=%d, interval=%s-%s", ErrSlotTaken, req.ResourceID, req.StartTime, req.EndTime)
		}

		// 4.3. Защита от дублей: у заявителя не может быть второго
		// активного бронирования этого ресурса на пересекающийся интервал
		reqInterval := domain.Interval{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
		for _, b := range active {
			if b.RequesterID == req.RequesterID && b.Interval().Overlaps(reqInterval) {
				return fmt.Errorf("%w: bookingID=%d", ErrDuplicateBooking, b.ID)
			}
		}

		// 4.4. Резервируем каждый слот интервала в реестре занятости.
		// Инкремент и проверка лимита выполняются одним запросом
		slots, err := domain.SlotsCovered(req.StartTime, req.EndTime, granularity)
		if err != nil {
			return fmt.Errorf("%w: Execute - разбиение интервала на слоты: %v", ErrInternal, err)
		}
		capacity := domainResource.EffectiveCapacity()
		for _, slot := range slots {
			if err := u.ledgerRepo.TryReserve(txCtx, req.ResourceID, req.Date, slot, capacity, 1); err != nil {
				if errors.Is(err, ledger.ErrCapacityExceeded) {
					if domainResource.IsExclusive() {
						return fmt.Errorf("%w: resourceID=%d, slot=%s", ErrSlotTaken, req.ResourceID, slot)
					}
					return fmt.Errorf("%w: resourceID=%d, slot=%s", ErrCapacityExceeded, req.ResourceID, slot)
				}
				return fmt.Errorf("%w: Execute - резервирование слота %s: %v", ErrInternal, slot, err)
			}
		}

		// 4.5. Создаем бронирование в начальном статусе, зафиксировав
		// требования подтверждения из политики на момент создания
		booking := &domain.Booking{
			ResourceID:       req.ResourceID,
			RequesterID:      req.RequesterID,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Status:           domain.InitialStatus(domainResource.RequiresApproval, domainResource.RequiresPayment),
			Requester:        req.Requester,
			ResourceName:     domainResource.Name,
			Price:            domainResource.Price,
			RequiresApproval: domainResource.RequiresApproval,
			RequiresPayment:  domainResource.RequiresPayment,
			Notes:            req.Notes,
		}

		created, err = u.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: Execute - сохранение бронирования: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("[CreateBooking] Бронирование создано: bookingID=%d, status=%s", created.ID, created.Status)

	// 5. Публикуем событие только после коммита единицы работы.
	// Ошибка публикации не откатывает бронирование
	if pubErr := u.publisher.Publish(ctx, events.NewEvent(events.TypeBookingCreated, created)); pubErr != nil {
		u.logger.Error("[CreateBooking] Ошибка публикации события: bookingID=%d: %v", created.ID, pubErr)
	}

	return u.buildResponse(created), nil
}

// mapViolation транслирует нарушение политики в ошибку usecase
func (u *UseCase) mapViolation(v *policy.Violation) error {
	var sentinel error
	switch v.Reason {
	case policy.ReasonInvalidInterval:
		sentinel = ErrInvalidInterval
	case policy.ReasonDurationOutOfRange:
		sentinel = ErrDurationOutOfRange
	case policy.ReasonPastDate:
		sentinel = ErrPastDate
	case policy.ReasonTooFarInAdvance:
		sentinel = ErrTooFarInAdvance
	case policy.ReasonOutsideOperatingHours:
		sentinel = ErrOutsideOperatingHours
	case policy.ReasonBlackoutDate:
		sentinel = ErrBlackoutDate
	default:
		sentinel = ErrInvalidInput
	}
	return fmt.Errorf("%w: %s", sentinel, v.Message)
}

func (u *UseCase) buildResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		ResourceID:       b.ResourceID,
		RequesterID:      b.RequesterID,
		BookingDate:      b.BookingDate,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           string(b.Status),
		ResourceName:     b.ResourceName,
		Price:            b.Price,
		RequiresApproval: b.RequiresApproval,
		RequiresPayment:  b.RequiresPayment,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
