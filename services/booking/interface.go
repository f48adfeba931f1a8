package booking

import (
	"context"

	trainRepo "railbot/database/repository/train"
	"railbot/models"
)

// BookingRequest carries everything needed to issue a ticket.
type BookingRequest struct {
	TrainID  string `json:"train_id"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Gender   string `json:"gender"`
}

// TicketService exposes train search and ticket booking to the concierge and
// the HTTP surface.
type TicketService interface {
	SearchTrains(ctx context.Context, start, end string) ([]models.TrainOffer, error)
	BookTicket(ctx context.Context, req BookingRequest) (*models.Ticket, error)

	ListTrains(ctx context.Context) ([]models.TrainOffer, error)
	AddTrain(ctx context.Context, train models.Train) (string, error)
	UpdateTrain(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteTrain(ctx context.Context, id string) error
}

// DefaultTicketService implements TicketService.
type DefaultTicketService struct {
	Repo trainRepo.TrainRepository
}
