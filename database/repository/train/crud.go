package trainRepo

import (
	"context"
	"errors"

	"railbot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInsufficientSeats is returned by ReserveSeats when the train cannot
// cover the requested quantity.
var ErrInsufficientSeats = errors.New("insufficient seats remaining")

// ErrTrainNotFound reports an unknown train ID.
var ErrTrainNotFound = errors.New("train not found")

// Create inserts a new train and returns its ID.
func (r *mongoTrainRepo) Create(ctx context.Context, train models.Train) (string, error) {
	if train.ID == "" {
		train.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, train)
	if err != nil {
		return "", err
	}
	return train.ID, nil
}

// GetByID returns a train by its ID.
func (r *mongoTrainRepo) GetByID(ctx context.Context, id string) (*models.Train, error) {
	var train models.Train
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&train)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &train, nil
}

// GetAll returns the full train inventory.
func (r *mongoTrainRepo) GetAll(ctx context.Context) ([]models.Train, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trains []models.Train
	if err := cursor.All(ctx, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

// Update applies the given fields to a train document.
func (r *mongoTrainRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTrainNotFound
	}
	return nil
}

// DeleteByID removes a train by ID.
func (r *mongoTrainRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTrainNotFound
	}
	return nil
}

// ReserveSeats decrements the seat count only while enough seats remain, so
// concurrent bookings can never oversell a train.
func (r *mongoTrainRepo) ReserveSeats(ctx context.Context, id string, quantity int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "seats": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"seats": -quantity}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInsufficientSeats
	}
	return nil
}
