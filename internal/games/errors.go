package games

import "fmt"

// InvalidSelectionError reports a malformed or out-of-range bet
// selection. Safe to surface to the player.
type InvalidSelectionError struct {
	Game   string
	Field  string
	Value  any
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: invalid selection %s=%v: %s", e.Game, e.Field, e.Value, e.Reason)
}

// InvalidStateTransitionError reports an action invoked while the
// round is not in a state that permits it.
type InvalidStateTransitionError struct {
	Game   string
	Action string
	State  string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: action %q not allowed in state %q", e.Game, e.Action, e.State)
}

// InsufficientCardsError reports a draw request exceeding the cards
// left in a shoe. Treated as a programming-invariant violation, not a
// recoverable user error.
type InsufficientCardsError struct {
	Game      string
	Requested int
	Remaining int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("%s: cannot draw %d cards, %d remaining", e.Game, e.Requested, e.Remaining)
}

// InvalidTableError reports an empty or malformed payout/weight table.
// Raised at engine construction, fatal at start-up, never recoverable
// per round.
type InvalidTableError struct {
	Game   string
	Table  string
	Reason string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("%s: invalid %s table: %s", e.Game, e.Table, e.Reason)
}
