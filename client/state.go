package client

// Phase is the lifecycle stage of the session's booking flow.
type Phase int

const (
	// PhaseIdle has no pending selection; offers may be selected.
	PhaseIdle Phase = iota
	// PhaseSelecting has a committed selection whose outcome is unresolved.
	PhaseSelecting
	// PhaseConfirmed is terminal; no further selection is permitted.
	PhaseConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelecting:
		return "selecting"
	case PhaseConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// BookingState tracks the lifecycle of a pending selection for one session.
// It is an explicit value mutated only by its transition methods, one turn
// at a time. AwaitingOutcome is true exactly while a committed selection has
// seen no terminal fact (ticket or superseding offer list).
type BookingState struct {
	Phase           Phase
	PendingTrainID  string
	AwaitingOutcome bool

	allowInstantConfirm bool
}

// NewBookingState returns the empty state of a fresh session.
func NewBookingState(allowInstantConfirm bool) *BookingState {
	return &BookingState{Phase: PhaseIdle, allowInstantConfirm: allowInstantConfirm}
}

// RequestSelection commits the user's choice of a train. Legal while idle,
// or as a retry of the train already pending after a failed turn; the
// returned effect disables every other concurrently offered train.
func (s *BookingState) RequestSelection(trainID string) (Effect, error) {
	switch s.Phase {
	case PhaseSelecting:
		if trainID != s.PendingTrainID {
			return Effect{}, ErrSelectionPending
		}
	case PhaseConfirmed:
		return Effect{}, ErrBookingConfirmed
	}

	s.Phase = PhaseSelecting
	s.PendingTrainID = trainID
	s.AwaitingOutcome = true
	return Effect{Kind: EffectOffersDisabled, TrainID: trainID}, nil
}

// ResolveTurn folds a completed turn into the state. A ticket confirms the
// booking and permanently locks every offer list; a fresh offer list
// supersedes any stale pending selection, unless the booking is already
// confirmed; a turn with neither leaves a pending selection pending. The returned error reports a ticket rejected
// because no selection was pending and instant confirmation is disabled.
func (s *BookingState) ResolveTurn(res TurnResult) ([]Effect, error) {
	if res.Ticket != nil {
		if s.Phase == PhaseIdle && !s.allowInstantConfirm {
			return []Effect{{
				Kind: EffectNotice,
				Text: "Received a booking confirmation without a pending selection; ignoring it.",
			}}, ErrBookingNotPending
		}
		s.Phase = PhaseConfirmed
		s.PendingTrainID = ""
		s.AwaitingOutcome = false
		return []Effect{{Kind: EffectOffersLocked}}, nil
	}

	if res.OffersPresent {
		if s.Phase == PhaseConfirmed {
			// Confirmed is terminal: a later offer list never reopens
			// selection, it arrives already locked.
			return []Effect{{Kind: EffectOffersLocked}}, nil
		}
		// The concierge asked the user to pick again; any pending selection
		// is stale and the new offers are selectable.
		s.Phase = PhaseIdle
		s.PendingTrainID = ""
		s.AwaitingOutcome = false
		return nil, nil
	}

	// Plain clarifying text: a pending selection stays pending.
	return nil, nil
}

// FailTurn handles a transport failure. With a selection pending the state
// stays selecting and only that selection's controls re-enable, so the user
// can retry the same train but not pick a second one concurrently. Without
// one the session simply returns to idle.
func (s *BookingState) FailTurn() []Effect {
	if s.Phase == PhaseSelecting {
		return []Effect{{Kind: EffectSelectionReenabled, TrainID: s.PendingTrainID}}
	}
	s.Phase = PhaseIdle
	return nil
}
