package decide_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/mosparks/PKS-BookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func (u *UseCase) validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID должен быть положительным, получен %d", ErrInvalidInput, req.BookingID)
	}

	if req.ModeratorID <= 0 {
		return fmt.Errorf("%w: moderatorID должен быть положительным, получен %d", ErrInvalidInput, req.ModeratorID)
	}

	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return fmt.Errorf("%w: получено %q, ожидается %q или %q", ErrInvalidDecision, req.Decision, DecisionApprove, DecisionReject)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxDecisionNotesLength {
		return fmt.Errorf("%w: длина комментария превышает %d символов", ErrInvalidInput, domain.MaxDecisionNotesLength)
	}

	return nil
}
