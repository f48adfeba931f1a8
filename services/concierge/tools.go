package concierge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"

	"railbot/models"
	"railbot/services/booking"
)

const (
	toolSearchTrains = "search_trains"
	toolBookTicket   = "book_ticket"
)

// railwayTools declares the function surface the model may call.
func railwayTools() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolSearchTrains,
				Description: "Searches for trains between two stations and returns a JSON array of train details.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_station": {Type: genai.TypeString, Description: "The starting station name"},
						"end_station":   {Type: genai.TypeString, Description: "The destination station name"},
					},
					Required: []string{"start_station", "end_station"},
				},
			},
			{
				Name:        toolBookTicket,
				Description: "Books train tickets and returns a JSON object with booking confirmation.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"train_id": {Type: genai.TypeString, Description: "The ID of the train to book"},
						"quantity": {Type: genai.TypeInteger, Description: "Number of seats to book"},
						"name":     {Type: genai.TypeString, Description: "Passenger name"},
						"mobile":   {Type: genai.TypeString, Description: "Passenger mobile number"},
						"gender":   {Type: genai.TypeString, Description: "Passenger gender (M/F/Other)"},
					},
					Required: []string{"train_id", "quantity", "name", "mobile", "gender"},
				},
			},
		},
	}
}

// toolOutcome carries the structured side results of one tool call, beyond
// the response map handed back to the model.
type toolOutcome struct {
	offers []models.TrainOffer
	ticket *models.Ticket
}

// dispatchTool runs one model-requested function call against the ticket
// service. Booking errors come back to the model as error-status responses
// so it can recover conversationally; everything else is fatal for the turn.
func (svc *DefaultConciergeService) dispatchTool(ctx context.Context, call genai.FunctionCall) (map[string]any, *toolOutcome, error) {
	switch call.Name {
	case toolSearchTrains:
		start, _ := call.Args["start_station"].(string)
		end, _ := call.Args["end_station"].(string)

		offers, err := svc.Tickets.SearchTrains(ctx, start, end)
		if err != nil {
			var bookErr *booking.BookingError
			if errors.As(err, &bookErr) {
				return map[string]any{"status": "error", "message": bookErr.Message}, &toolOutcome{}, nil
			}
			return nil, nil, err
		}
		return map[string]any{
			"status": "success",
			"count":  len(offers),
			"trains": toJSONValue(offers),
		}, &toolOutcome{offers: offers}, nil

	case toolBookTicket:
		req := booking.BookingRequest{
			TrainID:  stringArg(call.Args, "train_id"),
			Quantity: intArg(call.Args, "quantity"),
			Name:     stringArg(call.Args, "name"),
			Mobile:   stringArg(call.Args, "mobile"),
			Gender:   stringArg(call.Args, "gender"),
		}

		ticket, err := svc.Tickets.BookTicket(ctx, req)
		if err != nil {
			var bookErr *booking.BookingError
			if errors.As(err, &bookErr) {
				return map[string]any{"status": "error", "message": bookErr.Message}, &toolOutcome{}, nil
			}
			return nil, nil, err
		}
		return map[string]any{
			"status": "success",
			"ticket": toJSONValue(ticket),
		}, &toolOutcome{ticket: ticket}, nil
	}

	return nil, nil, fmt.Errorf("unknown tool %q", call.Name)
}

// stringArg reads a string argument; model-sent numbers are stringified so a
// numeric-looking train ID still resolves.
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// toJSONValue converts a typed value into the plain maps and slices the
// function-response payload requires.
func toJSONValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
