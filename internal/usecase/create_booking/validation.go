package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func (u *UseCase) validateRequest(req Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID должен быть положительным, получен %d", ErrInvalidInput, req.RequesterID)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID должен быть положительным, получен %d", ErrInvalidInput, req.ResourceID)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: дата бронирования обязательна", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: некорректное время начала: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: некорректное время окончания: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: длина примечания превышает %d символов", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len(req.Requester) > domain.MaxRequesterPayloadBytes {
		return fmt.Errorf("%w: данные заявителя превышают %d байт", ErrInvalidInput, domain.MaxRequesterPayloadBytes)
	}

	return nil
}
