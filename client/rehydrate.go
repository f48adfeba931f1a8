package client

import "railbot/models"

// Rehydrate replays persisted turns through the same reducer and state
// transitions used for live streams, so a reloaded session is observably
// identical to one that never closed. Replay issues no network calls:
// selections are inferred from a later ticket in the already-known history.
// If any turn carries a ticket, every offer list replayed is permanently
// locked, matching the live terminal behaviour.
func Rehydrate(turns []models.ChatTurn, allowInstantConfirm bool, emit func(Effect)) *BookingState {
	if emit == nil {
		emit = func(Effect) {}
	}
	state := NewBookingState(allowInstantConfirm)

	sawOffers := false
	for _, turn := range turns {
		reducer := NewTurnReducer(emit)
		for _, frame := range turnFrames(turn) {
			// Persisted turns cannot violate the at-most-once rules, and a
			// violation during replay would be as non-fatal as it is live.
			_ = reducer.Apply(frame)
		}

		result := reducer.Result()
		if result.Ticket != nil && state.Phase == PhaseIdle && sawOffers {
			// Live play reached this ticket through a committed selection;
			// replay the commit so the transition path is the same. The
			// disabling effect is superseded by the lock that follows.
			_, _ = state.RequestSelection("")
		}
		if result.OffersPresent {
			sawOffers = true
		}

		effects, _ := state.ResolveTurn(result)
		for _, effect := range effects {
			emit(effect)
		}
	}

	return state
}

// turnFrames rebuilds the frame sequence a persisted turn would have
// produced live: its text as one delta, then its attachments, then
// end-of-turn.
func turnFrames(turn models.ChatTurn) []Frame {
	var frames []Frame
	if turn.Bot != "" {
		frames = append(frames, Frame{Kind: FrameText, Text: turn.Bot})
	}
	if turn.Ticket != nil {
		frames = append(frames, Frame{Kind: FrameConfirmation, Ticket: turn.Ticket})
	}
	if turn.Trains != nil {
		frames = append(frames, Frame{Kind: FrameOffers, Offers: turn.Trains})
	}
	frames = append(frames, Frame{Kind: FrameDone})
	return frames
}
