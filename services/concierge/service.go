package concierge

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"railbot/services/booking"
	"railbot/utils"
)

// NewConciergeService wires the Gemini client, the ticket service and the
// offer context store into a concierge.
func NewConciergeService(client *GeminiClient, tickets booking.TicketService, store *RedisOfferStore) *DefaultConciergeService {
	return &DefaultConciergeService{Client: client, Tickets: tickets, CtxStore: store}
}

// StreamTurn runs one conversation turn. Text streams to the sink as it
// arrives; the ticket and the offer list, if any, follow once the model is
// done, ticket first.
func (svc *DefaultConciergeService) StreamTurn(ctx context.Context, req TurnRequest, sink StreamSink) (*TurnOutcome, error) {
	instruction, err := svc.buildSystemInstruction(ctx)
	if err != nil {
		return nil, err
	}

	cs := svc.Client.startChat(instruction, chatHistory(req.History))

	message := req.Message
	if req.TrainID != "" {
		if !svc.wasOffered(ctx, req.SessionID, req.TrainID) {
			utils.GetLogger().Warn("selection does not match the session's last offers",
				zap.String("session", req.SessionID), zap.String("trainId", req.TrainID))
		}
		message = fmt.Sprintf("%s\n[SYSTEM: User has selected train_id=%s. Use this for booking.]", message, req.TrainID)
	}

	outcome := &TurnOutcome{}
	if err := svc.streamParts(ctx, cs, genai.Text(message), sink, outcome); err != nil {
		return nil, err
	}

	if outcome.Ticket != nil {
		if err := sink.Ticket(ctx, outcome.Ticket); err != nil {
			return nil, err
		}
	}
	if outcome.Offers != nil {
		if err := sink.Offers(ctx, outcome.Offers); err != nil {
			return nil, err
		}
		if err := svc.CtxStore.Set(ctx, req.SessionID, outcome.Offers); err != nil {
			return nil, fmt.Errorf("cache offers: %w", err)
		}
	}
	return outcome, nil
}

// streamParts drains one model stream, dispatching any function calls and
// recursing into the follow-up stream their responses trigger.
func (svc *DefaultConciergeService) streamParts(ctx context.Context, cs *genai.ChatSession, part genai.Part, sink StreamSink, outcome *TurnOutcome) error {
	iter := cs.SendMessageStream(ctx, part)
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}

		for _, p := range resp.Candidates[0].Content.Parts {
			switch v := p.(type) {
			case genai.Text:
				if v == "" {
					continue
				}
				outcome.Text += string(v)
				if err := sink.Text(ctx, string(v)); err != nil {
					return err
				}
			case genai.FunctionCall:
				response, side, err := svc.dispatchTool(ctx, v)
				if err != nil {
					return err
				}
				if side.offers != nil {
					outcome.Offers = side.offers
				}
				if side.ticket != nil {
					outcome.Ticket = side.ticket
				}
				followUp := genai.FunctionResponse{Name: v.Name, Response: map[string]any{"result": response}}
				if err := svc.streamParts(ctx, cs, followUp, sink, outcome); err != nil {
					return err
				}
			}
		}
	}
}

// wasOffered reports whether the train was in the session's last offered
// set. An empty or unreadable cache counts as offered; the booking tool
// re-validates the ID either way.
func (svc *DefaultConciergeService) wasOffered(ctx context.Context, sessionID, trainID string) bool {
	offers, err := svc.CtxStore.Get(ctx, sessionID)
	if err != nil || len(offers) == 0 {
		return true
	}
	for _, offer := range offers {
		if offer.ID == trainID {
			return true
		}
	}
	return false
}

// ClearContext drops the session's cached offers.
func (svc *DefaultConciergeService) ClearContext(ctx context.Context, sessionID string) error {
	return svc.CtxStore.Clear(ctx, sessionID)
}
