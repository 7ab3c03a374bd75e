package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// UseCase витрины доступности: строит сетку слотов дня из часов работы
// ресурса и снапшота реестра занятости. Читает без блокировок
type UseCase struct {
	ledgerRepo LedgerRepository
	catalog    CatalogClient
	logger     Logger
}

// New создает новый UseCase витрины доступности
func New(
	ledgerRepo LedgerRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledgerRepo: ledgerRepo,
		catalog:    catalogClient,
		logger:     logger,
	}
}

// Execute строит сетку доступности ресурса на дату
func (u *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	u.logger.Info("[GetAvailability] Запрос доступности: resourceID=%d, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := u.validateRequest(req); err != nil {
		u.logger.Warn("[GetAvailability] Ошибка валидации: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс и его политику из каталога
	resource, err := u.catalog.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalog.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: resourceID=%d", ErrResourceNotFound, req.ResourceID)
		}
		u.logger.Error("[GetAvailability] Ошибка получения ресурса: %v", err)
		return nil, fmt.Errorf("%w: Execute - получение ресурса: %v", ErrInternal, err)
	}
	domainResource := resource.ToDomain()

	response := &Response{
		ResourceID:   domainResource.ID,
		ResourceName: domainResource.Name,
		Date:         req.Date,
		Slots:        make([]domain.AvailableSlot, 0),
	}

	// 3. Закрытый день или дата из чёрного списка - пустая сетка
	schedule := domainResource.Policy.OpeningHours.ForDate(req.Date)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil || domainResource.Policy.IsBlackout(req.Date) {
		return response, nil
	}
	response.IsOpen = true

	granularity := domainResource.Policy.EffectiveGranularity()

	// 4. Снапшот занятости из реестра: слот без записи ни разу не
	// резервировался и полностью свободен
	entries, err := u.ledgerRepo.GetForDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		u.logger.Error("[GetAvailability] Ошибка чтения реестра занятости: %v", err)
		return nil, fmt.Errorf("%w: Execute - чтение реестра занятости: %v", ErrInternal, err)
	}
	committed := make(map[types.TimeString]int, len(entries))
	for _, e := range entries {
		committed[e.SlotStart] = e.Committed
	}

	// 5. Сетка слотов от открытия до закрытия с шагом гранулярности
	openTime := types.TimeString(*schedule.OpenTime)
	closeTime := types.TimeString(*schedule.CloseTime)
	capacity := domainResource.EffectiveCapacity()

	slots, err := domain.SlotsCovered(openTime, closeTime, granularity)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - построение сетки слотов: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		available := capacity - committed[slot]
		if available < 0 {
			available = 0
		}
		response.Slots = append(response.Slots, domain.AvailableSlot{
			StartTime:       slot,
			DurationMinutes: granularity,
			AvailableSpots:  available,
			TotalSpots:      capacity,
		})
	}

	return response, nil
}

// validateRequest проверяет корректность входных данных запроса
func (u *UseCase) validateRequest(req Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID должен быть положительным, получен %d", ErrInvalidInput, req.ResourceID)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: дата обязательна", ErrInvalidInput)
	}

	return nil
}
