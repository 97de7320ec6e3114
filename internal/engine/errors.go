package engine

import (
	"errors"
	"fmt"
)

// Reason is a stable machine-readable code for a rejected action.
type Reason string

const (
	ReasonNotPlayersTurn         Reason = "NOT_PLAYERS_TURN"
	ReasonWrongPhase             Reason = "WRONG_PHASE"
	ReasonCardNotAvailable       Reason = "CARD_NOT_AVAILABLE"
	ReasonInsufficientTokens     Reason = "INSUFFICIENT_TOKENS"
	ReasonCapacityExceeded       Reason = "CAPACITY_EXCEEDED"
	ReasonNoUpgradeCubes         Reason = "NO_UPGRADE_CUBES_AVAILABLE"
	ReasonAlreadyAtMaxLevel      Reason = "ALREADY_AT_MAX_LEVEL"
	ReasonContractAlreadyClaimed Reason = "CONTRACT_ALREADY_CLAIMED"
	ReasonGameAlreadyOver        Reason = "GAME_ALREADY_OVER"
)

// IllegalMove rejects a proposed action. Rejections never mutate state; the
// caller may retry with a corrected action.
type IllegalMove struct {
	Reason Reason
	Detail string
}

func (e *IllegalMove) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func illegal(r Reason, format string, args ...any) error {
	return &IllegalMove{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// AsIllegalMove unwraps an IllegalMove from err, if there is one.
func AsIllegalMove(err error) (*IllegalMove, bool) {
	var im *IllegalMove
	ok := errors.As(err, &im)
	return im, ok
}

// InvariantError is the single fatal error class: the executor found the
// state inconsistent after applying a validated action. It signals an engine
// bug, poisons the session, and must not be retried.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Detail
}

// ErrEmptyDeck is internal to deck handling; callers of the engine see
// CARD_NOT_AVAILABLE instead.
var ErrEmptyDeck = errors.New("deck is empty")

// Cube upgrade errors, surfaced through validation as illegal moves.
var (
	ErrUpgradeNoSteps = errors.New("cannot upgrade a cube to itself")
	ErrUpgradePastTop = errors.New("cannot upgrade past the top tier")
)

// ErrSessionCorrupted rejects any action after an invariant violation.
var ErrSessionCorrupted = errors.New("session aborted after invariant violation")
