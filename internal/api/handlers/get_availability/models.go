package get_availability

import (
	"github.com/mosparks/PKS-BookingService/internal/domain"
	getAvailability "github.com/mosparks/PKS-BookingService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота доступности
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// AvailabilityResponse HTTP модель сетки доступности на день
type AvailabilityResponse struct {
	ResourceID   int64          `json:"resourceId"`
	ResourceName string         `json:"resourceName"`
	Date         string         `json:"date"`
	IsOpen       bool           `json:"isOpen"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		ResourceID:   resp.ResourceID,
		ResourceName: resp.ResourceName,
		Date:         resp.Date.Format(domain.DateFormat),
		IsOpen:       resp.IsOpen,
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}

	return result
}
