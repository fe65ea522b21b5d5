package game

import "fmt"

// Sentinel errors identify the precondition-violation kinds from the
// error handling design: callers can errors.Is/errors.As against
// these instead of matching on message text.
var (
	// ErrAlreadyStarted is returned by Start on a hand that has already
	// transitioned out of the start stage.
	ErrAlreadyStarted = fmt.Errorf("game: hand already started")

	// ErrNotEnoughSeats is returned by Start with fewer than two seats.
	ErrNotEnoughSeats = fmt.Errorf("game: at least two seats are required")
)

// OutOfTurnError reports that act() was called for a player who is
// not the current active actor.
type OutOfTurnError struct {
	Expected string
	Actual   string
}

func (e *OutOfTurnError) Error() string {
	return fmt.Sprintf("game: out of turn: expected %s, got %s", e.Expected, e.Actual)
}

// InvalidBetError reports that a proposed bet amount failed isValidBet.
type InvalidBetError struct {
	PlayerID string
	Amount   int
}

func (e *InvalidBetError) Error() string {
	return fmt.Sprintf("game: invalid bet of %d by %s", e.Amount, e.PlayerID)
}
