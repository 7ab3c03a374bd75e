package get_resource_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/service/bookings/models"
)

// ParseQuery собирает фильтр бронирований ресурса из query-параметров
//
// Поддерживаемые параметры:
// - startDate, endDate: период в формате YYYY-MM-DD
// - status: фильтр по статусу
// - includeInactive: включить терминальные бронирования
func ParseQuery(resourceID int64, query url.Values) (*models.GetResourceBookingsRequest, error) {
	req := &models.GetResourceBookingsRequest{
		ResourceID: resourceID,
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
