package client

import (
	"testing"

	"railbot/models"
)

func TestRehydrateEmptyHistory(t *testing.T) {
	s := Rehydrate(nil, true, nil)
	if s.Phase != PhaseIdle || s.PendingTrainID != "" || s.AwaitingOutcome {
		t.Fatalf("state = %+v, want fresh idle state", s)
	}
}

func TestRehydrateMatchesLivePlay(t *testing.T) {
	offers := []models.TrainOffer{{ID: "T1"}, {ID: "T2"}}
	ticket := &models.Ticket{PNR: "T1234"}
	turns := []models.ChatTurn{
		{User: "trains to Chennai", Bot: "Here are the available trains for your route.", Trains: offers},
		{User: "book the second one", Bot: "Your booking is confirmed!", Ticket: ticket},
	}

	// Live play: offers arrive, the user selects, the ticket confirms.
	live := NewBookingState(true)
	r := NewTurnReducer(nil)
	_ = r.Apply(Frame{Kind: FrameText, Text: turns[0].Bot})
	_ = r.Apply(Frame{Kind: FrameOffers, Offers: offers})
	_ = r.Apply(Frame{Kind: FrameDone})
	if _, err := live.ResolveTurn(r.Result()); err != nil {
		t.Fatalf("live resolve 1 error: %v", err)
	}
	if _, err := live.RequestSelection("T2"); err != nil {
		t.Fatalf("live selection error: %v", err)
	}
	r = NewTurnReducer(nil)
	_ = r.Apply(Frame{Kind: FrameText, Text: turns[1].Bot})
	_ = r.Apply(Frame{Kind: FrameConfirmation, Ticket: ticket})
	_ = r.Apply(Frame{Kind: FrameDone})
	if _, err := live.ResolveTurn(r.Result()); err != nil {
		t.Fatalf("live resolve 2 error: %v", err)
	}

	replayed := Rehydrate(turns, true, nil)

	if replayed.Phase != live.Phase {
		t.Fatalf("Phase = %v, want %v", replayed.Phase, live.Phase)
	}
	if replayed.PendingTrainID != live.PendingTrainID {
		t.Fatalf("PendingTrainID = %q, want %q", replayed.PendingTrainID, live.PendingTrainID)
	}
	if replayed.AwaitingOutcome != live.AwaitingOutcome {
		t.Fatalf("AwaitingOutcome = %v, want %v", replayed.AwaitingOutcome, live.AwaitingOutcome)
	}
}

func TestRehydrateLocksOffersAfterTicket(t *testing.T) {
	var effects []Effect
	turns := []models.ChatTurn{
		{User: "trains?", Bot: "Here you go.", Trains: []models.TrainOffer{{ID: "T1"}}},
		{User: "book it", Bot: "Confirmed.", Ticket: &models.Ticket{PNR: "P"}},
	}

	s := Rehydrate(turns, true, collectEffects(&effects))
	if s.Phase != PhaseConfirmed {
		t.Fatalf("Phase = %v, want confirmed", s.Phase)
	}

	locked := false
	for _, e := range effects {
		if e.Kind == EffectOffersLocked {
			locked = true
		}
	}
	if !locked {
		t.Fatalf("effects = %+v, want an offers-locked effect", effects)
	}

	if _, err := s.RequestSelection("T1"); err == nil {
		t.Fatalf("selection after rehydrated confirmation succeeded, want rejection")
	}
}

func TestRehydrateOffersAfterTicketStayLocked(t *testing.T) {
	var effects []Effect
	turns := []models.ChatTurn{
		{User: "trains?", Bot: "Here you go.", Trains: []models.TrainOffer{{ID: "T1"}}},
		{User: "book it", Bot: "Confirmed.", Ticket: &models.Ticket{PNR: "P"}},
		{User: "any others?", Bot: "These also run that route.", Trains: []models.TrainOffer{{ID: "T9"}}},
	}

	s := Rehydrate(turns, true, collectEffects(&effects))
	if s.Phase != PhaseConfirmed {
		t.Fatalf("Phase = %v, want confirmed kept terminal", s.Phase)
	}
	if _, err := s.RequestSelection("T9"); err == nil {
		t.Fatalf("selection after rehydrated confirmation succeeded, want rejection")
	}

	locked := 0
	for _, e := range effects {
		if e.Kind == EffectOffersLocked {
			locked++
		}
	}
	if locked != 2 {
		t.Fatalf("got %d offers-locked effects, want one for the ticket and one for the later offers", locked)
	}
}

func TestRehydrateOffersOnlyEndsSelectable(t *testing.T) {
	var effects []Effect
	turns := []models.ChatTurn{
		{User: "trains?", Bot: "Here you go.", Trains: []models.TrainOffer{{ID: "T1"}, {ID: "T2"}}},
	}

	s := Rehydrate(turns, true, collectEffects(&effects))
	if s.Phase != PhaseIdle {
		t.Fatalf("Phase = %v, want idle", s.Phase)
	}
	if _, err := s.RequestSelection("T2"); err != nil {
		t.Fatalf("selection after rehydration error: %v", err)
	}

	presented := 0
	for _, e := range effects {
		if e.Kind == EffectOffersPresented {
			presented++
		}
	}
	if presented != 1 {
		t.Fatalf("got %d offers-presented effects, want 1", presented)
	}
}

func TestRehydratePlainTurnsStayIdle(t *testing.T) {
	turns := []models.ChatTurn{
		{User: "hi", Bot: "Hello! How can I help?"},
		{User: "what routes exist?", Bot: "Tell me your start and end stations."},
	}

	s := Rehydrate(turns, true, nil)
	if s.Phase != PhaseIdle || s.AwaitingOutcome {
		t.Fatalf("state = %+v, want idle", s)
	}
}
