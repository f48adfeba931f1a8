package models

import "time"

// TicketPassenger holds the passenger details captured during booking.
type TicketPassenger struct {
	Name   string `json:"name" bson:"name"`
	Gender string `json:"gender" bson:"gender"`
	Mobile string `json:"mobile" bson:"mobile"`
}

// TicketTrain describes the booked train on the ticket.
type TicketTrain struct {
	Name   string `json:"name" bson:"name"`
	Route  string `json:"route" bson:"route"`
	Timing string `json:"timing" bson:"timing"`
}

// TicketBooking holds the seat assignment and total fare.
type TicketBooking struct {
	Seats       int      `json:"seats" bson:"seats"`
	SeatNumbers []string `json:"seat_numbers" bson:"seatNumbers"`
	TotalPrice  int      `json:"total_price" bson:"totalPrice"`
}

// Ticket is the confirmed reservation. Immutable once issued.
type Ticket struct {
	PNR       string          `json:"pnr" bson:"pnr"`
	Passenger TicketPassenger `json:"passenger" bson:"passenger"`
	Train     TicketTrain     `json:"train" bson:"train"`
	Booking   TicketBooking   `json:"booking" bson:"booking"`
}

// ChatTurn is one persisted request/response cycle. Trains and Ticket are
// side-channel attachments; absent means the turn carried none (distinct
// from a present-but-empty offer list).
type ChatTurn struct {
	ID        string       `json:"id" bson:"id"`
	User      string       `json:"user" bson:"user"`
	Bot       string       `json:"bot" bson:"bot"`
	Trains    []TrainOffer `json:"trains,omitempty" bson:"trains,omitempty"`
	Ticket    *Ticket      `json:"ticket,omitempty" bson:"ticket,omitempty"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}
