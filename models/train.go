package models

import "fmt"

// Train is the inventory record for one scheduled train.
type Train struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Start     string `json:"start" bson:"start"`
	End       string `json:"end" bson:"end"`
	Departure string `json:"departure" bson:"departure"`
	Arrival   string `json:"arrival" bson:"arrival"`
	Duration  string `json:"duration" bson:"duration"`
	Seats     int    `json:"seats" bson:"seats"`
	Price     int    `json:"price" bson:"price"`
}

// TrainOffer is the selectable card presented to the user. Beyond ID, every
// field is descriptive only; nothing downstream interprets it.
type TrainOffer struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Route    string `json:"route" bson:"route"`
	Timing   string `json:"timing" bson:"timing"`
	Duration string `json:"duration,omitempty" bson:"duration,omitempty"`
	Seats    int    `json:"seats" bson:"seats"`
	Price    int    `json:"price" bson:"price"`
}

// Offer returns the presentation view of a train.
func (t Train) Offer() TrainOffer {
	return TrainOffer{
		ID:       t.ID,
		Name:     t.Name,
		Route:    fmt.Sprintf("%s -> %s", t.Start, t.End),
		Timing:   fmt.Sprintf("%s - %s", t.Departure, t.Arrival),
		Duration: t.Duration,
		Seats:    t.Seats,
		Price:    t.Price,
	}
}
