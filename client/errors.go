package client

import (
	"errors"
	"fmt"
)

// Protocol violations: the offending frame is dropped, already-accumulated
// state stays intact, the turn still completes.
var (
	ErrDuplicateOfferList    = errors.New("duplicate offer list in one turn")
	ErrDuplicateConfirmation = errors.New("duplicate confirmation in one turn")
)

// Illegal transitions: rejected locally, no network call is made, state is
// left unchanged.
var (
	ErrSelectionPending  = errors.New("a selection is already pending")
	ErrBookingConfirmed  = errors.New("booking already confirmed")
	ErrBookingNotPending = errors.New("confirmation received without a pending selection")
	ErrTurnInFlight      = errors.New("a turn is already in flight")
)

// TransportError wraps a network or connection failure during a turn.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
