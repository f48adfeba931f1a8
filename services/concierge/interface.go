package concierge

import (
	"context"

	"railbot/models"
	"railbot/services/booking"
)

// StreamSink receives the facts of one turn as they are produced. Text
// arrives incrementally; Offers and Ticket arrive at most once per turn.
type StreamSink interface {
	Text(ctx context.Context, delta string) error
	Offers(ctx context.Context, offers []models.TrainOffer) error
	Ticket(ctx context.Context, ticket *models.Ticket) error
}

// TurnRequest is one inbound conversation turn.
type TurnRequest struct {
	SessionID string
	Message   string
	// TrainID, when set, marks the turn as committing a train selection.
	TrainID string
	// History is the recent conversation window, oldest first.
	History []models.ChatTurn
}

// TurnOutcome is the completed turn, ready to persist.
type TurnOutcome struct {
	Text   string
	Offers []models.TrainOffer
	Ticket *models.Ticket
}

// ConciergeService runs conversation turns against the model, dispatching
// its tool calls to the ticket service.
type ConciergeService interface {
	// StreamTurn runs one turn, pushing facts to sink as they arrive, and
	// returns the folded outcome.
	StreamTurn(ctx context.Context, req TurnRequest, sink StreamSink) (*TurnOutcome, error)
	// ClearContext drops the session's cached offer context.
	ClearContext(ctx context.Context, sessionID string) error
}

// DefaultConciergeService is the Gemini-backed implementation.
type DefaultConciergeService struct {
	Client   *GeminiClient
	Tickets  booking.TicketService
	CtxStore *RedisOfferStore
}
