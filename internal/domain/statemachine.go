package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition возвращается при попытке недопустимого перехода статуса
var ErrInvalidTransition = errors.New("domain: invalid booking status transition")

// transitions is the canonical transition table. Every booking kind goes
// through this single machine; there are no per-screen status sets.
//
//	pending   -> confirmed  (moderation approves / payment settles)
//	pending   -> rejected   (moderation denies; reservation released)
//	pending   -> cancelled  (requester withdraws; reservation released)
//	confirmed -> cancelled  (cancel before the date; reservation released)
//	confirmed -> completed  (date has passed; record retained)
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
	},
}

// CanTransition reports whether from -> to is a legal transition
func CanTransition(from, to BookingStatus) bool {
	return transitions[from][to]
}

// Transition mutates the booking's status after checking legality.
// Terminal states are final: no identifier is ever reused after reaching
// rejected, cancelled or completed.
func (b *Booking) Transition(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s (booking id=%d)", ErrInvalidTransition, b.Status, to, b.ID)
	}
	b.Status = to
	return nil
}

// ReleasesReservation reports whether the transition must release the
// capacity ledger and overlap index entries of the booking
func ReleasesReservation(to BookingStatus) bool {
	return to == StatusRejected || to == StatusCancelled
}

// InitialStatus returns the state a new booking starts in: confirmed when
// no gate applies, pending while moderation or payment is outstanding
func InitialStatus(requiresApproval, requiresPayment bool) BookingStatus {
	if requiresApproval || requiresPayment {
		return StatusPending
	}
	return StatusConfirmed
}
