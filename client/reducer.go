package client

import "railbot/models"

// TurnResult is the fold of all frames for one turn.
type TurnResult struct {
	Text string
	// Offers is the at-most-one offer list of the turn; OffersPresent
	// distinguishes an absent list from a present-but-empty one.
	Offers        []models.TrainOffer
	OffersPresent bool
	Ticket        *models.Ticket
	// Violations records the protocol violations observed while folding.
	// They never abort the turn.
	Violations []error
}

// TurnReducer folds the frames of a single turn into a TurnResult,
// emitting a presentation effect per fact so the accumulated text is
// observable mid-turn. It performs no external calls.
type TurnReducer struct {
	result TurnResult
	done   bool
	emit   func(Effect)
}

// NewTurnReducer returns a reducer for one turn. emit may be nil when no
// live rendering is needed.
func NewTurnReducer(emit func(Effect)) *TurnReducer {
	if emit == nil {
		emit = func(Effect) {}
	}
	return &TurnReducer{emit: emit}
}

// Apply folds one frame. The returned error is a protocol violation, also
// recorded on the result; the first value always wins and the turn goes on.
func (r *TurnReducer) Apply(frame Frame) error {
	if r.done {
		// Frames after end-of-turn are dropped.
		return nil
	}

	switch frame.Kind {
	case FrameText:
		r.result.Text += frame.Text
		r.emit(Effect{Kind: EffectTextDelta, Text: frame.Text})
	case FrameOffers:
		if r.result.OffersPresent {
			err := ErrDuplicateOfferList
			r.result.Violations = append(r.result.Violations, err)
			return err
		}
		r.result.Offers = frame.Offers
		r.result.OffersPresent = true
		r.emit(Effect{Kind: EffectOffersPresented, Offers: frame.Offers})
	case FrameConfirmation:
		if r.result.Ticket != nil {
			err := ErrDuplicateConfirmation
			r.result.Violations = append(r.result.Violations, err)
			return err
		}
		r.result.Ticket = frame.Ticket
		r.emit(Effect{Kind: EffectTicketIssued, Ticket: frame.Ticket})
	case FrameDone:
		r.done = true
	}
	return nil
}

// Done reports whether the turn has been finalized by an end-of-turn frame.
func (r *TurnReducer) Done() bool {
	return r.done
}

// Result returns the folded turn.
func (r *TurnReducer) Result() TurnResult {
	return r.result
}
