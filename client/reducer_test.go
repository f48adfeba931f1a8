package client

import (
	"errors"
	"testing"

	"railbot/models"
)

func collectEffects(effects *[]Effect) func(Effect) {
	return func(e Effect) {
		*effects = append(*effects, e)
	}
}

func TestReducerAccumulatesTextInOrder(t *testing.T) {
	var effects []Effect
	r := NewTurnReducer(collectEffects(&effects))

	for _, delta := range []string{"Found ", "3 ", "trains"} {
		if err := r.Apply(Frame{Kind: FrameText, Text: delta}); err != nil {
			t.Fatalf("Apply(text) error: %v", err)
		}
	}
	if err := r.Apply(Frame{Kind: FrameDone}); err != nil {
		t.Fatalf("Apply(done) error: %v", err)
	}

	res := r.Result()
	if res.Text != "Found 3 trains" {
		t.Fatalf("Text = %q, want %q", res.Text, "Found 3 trains")
	}
	if len(effects) != 3 {
		t.Fatalf("got %d effects, want 3 text deltas", len(effects))
	}
	for i, want := range []string{"Found ", "3 ", "trains"} {
		if effects[i].Kind != EffectTextDelta || effects[i].Text != want {
			t.Fatalf("effect %d = %+v, want text delta %q", i, effects[i], want)
		}
	}
}

func TestReducerDuplicateOffersKeepsFirst(t *testing.T) {
	r := NewTurnReducer(nil)

	first := []models.TrainOffer{{ID: "T1"}, {ID: "T2"}}
	second := []models.TrainOffer{{ID: "T9"}}

	if err := r.Apply(Frame{Kind: FrameOffers, Offers: first}); err != nil {
		t.Fatalf("first offers error: %v", err)
	}
	err := r.Apply(Frame{Kind: FrameOffers, Offers: second})
	if !errors.Is(err, ErrDuplicateOfferList) {
		t.Fatalf("second offers error = %v, want ErrDuplicateOfferList", err)
	}

	res := r.Result()
	if len(res.Offers) != 2 || res.Offers[0].ID != "T1" {
		t.Fatalf("Offers = %+v, want first list retained", res.Offers)
	}
	if len(res.Violations) != 1 || !errors.Is(res.Violations[0], ErrDuplicateOfferList) {
		t.Fatalf("Violations = %v, want one duplicate-offers violation", res.Violations)
	}
}

func TestReducerDuplicateConfirmationKeepsFirst(t *testing.T) {
	r := NewTurnReducer(nil)

	if err := r.Apply(Frame{Kind: FrameConfirmation, Ticket: &models.Ticket{PNR: "A"}}); err != nil {
		t.Fatalf("first confirmation error: %v", err)
	}
	err := r.Apply(Frame{Kind: FrameConfirmation, Ticket: &models.Ticket{PNR: "B"}})
	if !errors.Is(err, ErrDuplicateConfirmation) {
		t.Fatalf("second confirmation error = %v, want ErrDuplicateConfirmation", err)
	}

	res := r.Result()
	if res.Ticket == nil || res.Ticket.PNR != "A" {
		t.Fatalf("Ticket = %+v, want first ticket retained", res.Ticket)
	}
}

func TestReducerEmptyOffersArePresent(t *testing.T) {
	r := NewTurnReducer(nil)

	if err := r.Apply(Frame{Kind: FrameOffers, Offers: []models.TrainOffer{}}); err != nil {
		t.Fatalf("empty offers error: %v", err)
	}
	res := r.Result()
	if !res.OffersPresent {
		t.Fatalf("OffersPresent = false for present-but-empty list")
	}
	if len(res.Offers) != 0 {
		t.Fatalf("Offers = %+v, want empty", res.Offers)
	}
}

func TestReducerTruncatesAfterDone(t *testing.T) {
	var effects []Effect
	r := NewTurnReducer(collectEffects(&effects))

	if err := r.Apply(Frame{Kind: FrameText, Text: "kept"}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := r.Apply(Frame{Kind: FrameDone}); err != nil {
		t.Fatalf("Apply(done) error: %v", err)
	}
	if !r.Done() {
		t.Fatalf("Done() = false after done frame")
	}

	if err := r.Apply(Frame{Kind: FrameText, Text: "dropped"}); err != nil {
		t.Fatalf("post-done Apply error: %v", err)
	}
	if err := r.Apply(Frame{Kind: FrameConfirmation, Ticket: &models.Ticket{PNR: "late"}}); err != nil {
		t.Fatalf("post-done confirmation error: %v", err)
	}

	res := r.Result()
	if res.Text != "kept" {
		t.Fatalf("Text = %q, want %q", res.Text, "kept")
	}
	if res.Ticket != nil {
		t.Fatalf("Ticket = %+v, want nil after done", res.Ticket)
	}
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
}

func TestReducerEmitsOffersAndTicketEffects(t *testing.T) {
	var effects []Effect
	r := NewTurnReducer(collectEffects(&effects))

	offers := []models.TrainOffer{{ID: "T1"}}
	if err := r.Apply(Frame{Kind: FrameOffers, Offers: offers}); err != nil {
		t.Fatalf("offers error: %v", err)
	}
	if err := r.Apply(Frame{Kind: FrameConfirmation, Ticket: &models.Ticket{PNR: "P"}}); err != nil {
		t.Fatalf("confirmation error: %v", err)
	}

	if len(effects) != 2 {
		t.Fatalf("got %d effects, want 2", len(effects))
	}
	if effects[0].Kind != EffectOffersPresented || len(effects[0].Offers) != 1 {
		t.Fatalf("effect 0 = %+v, want offers presented", effects[0])
	}
	if effects[1].Kind != EffectTicketIssued || effects[1].Ticket.PNR != "P" {
		t.Fatalf("effect 1 = %+v, want ticket issued", effects[1])
	}
}
