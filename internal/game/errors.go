package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned when a card is not among the legal moves
	ErrIllegalMove = errors.New("illegal move")
	// ErrPassSelection is returned when a pass is confirmed without exactly three cards
	ErrPassSelection = errors.New("invalid pass selection")
	// ErrWrongPhase is returned when an event does not apply to the current phase
	ErrWrongPhase = errors.New("event not allowed in this phase")
	// ErrNotYourTurn is returned when a seat acts out of turn
	ErrNotYourTurn = errors.New("not your turn")
)

// InvariantError is raised (via panic) when the engine reaches a state that
// legal play can never produce. It is a programming error, not a user error.
type InvariantError struct {
	Reason string
}

func (e InvariantError) Error() string {
	return "hearts invariant violated: " + e.Reason
}

func invariant(format string, args ...any) {
	panic(InvariantError{Reason: fmt.Sprintf(format, args...)})
}

// IsRecoverable reports whether err is a rejected request that left the
// state untouched, as opposed to a configuration or programming error.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrIllegalMove) ||
		errors.Is(err, ErrPassSelection) ||
		errors.Is(err, ErrWrongPhase) ||
		errors.Is(err, ErrNotYourTurn)
}
