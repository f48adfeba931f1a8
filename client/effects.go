package client

import "railbot/models"

// EffectKind identifies a presentation effect.
type EffectKind string

const (
	// EffectTextDelta carries an increment of the assistant's reply text.
	EffectTextDelta EffectKind = "text_delta"
	// EffectOffersPresented introduces a fresh, selectable offer list.
	EffectOffersPresented EffectKind = "offers_presented"
	// EffectOffersDisabled greys out every offer except the selected one
	// while its outcome is pending.
	EffectOffersDisabled EffectKind = "offers_disabled"
	// EffectOffersLocked permanently removes the selection affordance from
	// every offer list shown so far.
	EffectOffersLocked EffectKind = "offers_locked"
	// EffectSelectionReenabled restores the controls of a pending selection
	// after a transport failure so the user can retry it.
	EffectSelectionReenabled EffectKind = "selection_reenabled"
	// EffectTicketIssued carries the confirmed reservation.
	EffectTicketIssued EffectKind = "ticket_issued"
	// EffectNotice carries a user-facing message (rejected transition,
	// transport failure).
	EffectNotice EffectKind = "notice"
)

// Effect is one instruction to the presentation layer. The payload fields
// are populated per Kind.
type Effect struct {
	Kind    EffectKind
	Text    string
	Offers  []models.TrainOffer
	TrainID string
	Ticket  *models.Ticket
}
