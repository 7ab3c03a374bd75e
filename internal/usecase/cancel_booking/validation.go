package cancel_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func (u *UseCase) validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID должен быть положительным, получен %d", ErrInvalidInput, req.BookingID)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID должен быть положительным, получен %d", ErrInvalidInput, req.ActorID)
	}

	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: причина отмены обязательна", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Reason) > domain.MaxNotesLength {
		return fmt.Errorf("%w: длина причины превышает %d символов", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
