package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	trainRepo "railbot/database/repository/train"
	"railbot/models"
)

// SearchTrains returns the offers matching a route, matched loosely on
// station names.
func (svc *DefaultTicketService) SearchTrains(ctx context.Context, start, end string) ([]models.TrainOffer, error) {
	trains, err := svc.Repo.SearchByRoute(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("search trains: %w", err)
	}
	if len(trains) == 0 {
		return nil, NewBookingError("noTrains", fmt.Sprintf("no trains found from %s to %s", start, end))
	}

	offers := make([]models.TrainOffer, 0, len(trains))
	for _, t := range trains {
		offers = append(offers, t.Offer())
	}
	return offers, nil
}

// BookTicket reserves seats on a train and issues the ticket. Seat numbers
// are assigned from the top of the remaining pool, prefixed with the train's
// initial, and the reference code embeds the quantity booked.
func (svc *DefaultTicketService) BookTicket(ctx context.Context, req BookingRequest) (*models.Ticket, error) {
	if req.Quantity <= 0 {
		return nil, NewBookingError("invalidQuantity", "quantity must be at least 1")
	}

	train, err := svc.Repo.GetByID(ctx, req.TrainID)
	if err != nil {
		return nil, NewBookingError("trainNotFound", "train not found")
	}
	if train.Seats < req.Quantity {
		return nil, NewBookingError("insufficientSeats", fmt.Sprintf("only %d seats remaining", train.Seats))
	}

	if err := svc.Repo.ReserveSeats(ctx, req.TrainID, req.Quantity); err != nil {
		if errors.Is(err, trainRepo.ErrInsufficientSeats) {
			return nil, NewBookingError("insufficientSeats", "seats were taken before the booking completed")
		}
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	prefix := "S"
	if train.Name != "" {
		prefix = strings.ToUpper(train.Name[:1])
	}
	seatNumbers := make([]string, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		seatNumbers = append(seatNumbers, fmt.Sprintf("%s%d", prefix, train.Seats-i))
	}

	ticket := &models.Ticket{
		PNR: newPNR(train.ID, req.Quantity),
		Passenger: models.TicketPassenger{
			Name:   req.Name,
			Gender: req.Gender,
			Mobile: req.Mobile,
		},
		Train: models.TicketTrain{
			Name:   train.Name,
			Route:  fmt.Sprintf("%s to %s", train.Start, train.End),
			Timing: fmt.Sprintf("%s - %s", train.Departure, train.Arrival),
		},
		Booking: models.TicketBooking{
			Seats:       req.Quantity,
			SeatNumbers: seatNumbers,
			TotalPrice:  train.Price * req.Quantity,
		},
	}
	return ticket, nil
}

// newPNR builds a reference code from a short train discriminator, a random
// component and the seat quantity.
func newPNR(trainID string, quantity int) string {
	short := strings.ToUpper(strings.ReplaceAll(trainID, "-", ""))
	if len(short) > 4 {
		short = short[:4]
	}
	return fmt.Sprintf("T%s%d%d", short, 1000+rand.Intn(9000), quantity)
}

// ListTrains returns the full inventory as offers.
func (svc *DefaultTicketService) ListTrains(ctx context.Context) ([]models.TrainOffer, error) {
	trains, err := svc.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	offers := make([]models.TrainOffer, 0, len(trains))
	for _, t := range trains {
		offers = append(offers, t.Offer())
	}
	return offers, nil
}

// AddTrain inserts a new train into the inventory.
func (svc *DefaultTicketService) AddTrain(ctx context.Context, train models.Train) (string, error) {
	return svc.Repo.Create(ctx, train)
}

// UpdateTrain applies partial updates to a train.
func (svc *DefaultTicketService) UpdateTrain(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := svc.Repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, trainRepo.ErrTrainNotFound) {
			return ErrTrainNotFound
		}
		return err
	}
	return nil
}

// DeleteTrain removes a train from the inventory.
func (svc *DefaultTicketService) DeleteTrain(ctx context.Context, id string) error {
	if err := svc.Repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, trainRepo.ErrTrainNotFound) {
			return ErrTrainNotFound
		}
		return err
	}
	return nil
}
