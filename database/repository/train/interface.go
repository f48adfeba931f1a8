package trainRepo

import (
	"context"
	"fmt"

	"railbot/database"
	"railbot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TrainRepository manages the train inventory.
type TrainRepository interface {
	Create(ctx context.Context, train models.Train) (string, error)
	GetByID(ctx context.Context, id string) (*models.Train, error)
	GetAll(ctx context.Context) ([]models.Train, error)
	SearchByRoute(ctx context.Context, start, end string) ([]models.Train, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
	// ReserveSeats atomically decrements the seat count; it fails without
	// writing when fewer than quantity seats remain.
	ReserveSeats(ctx context.Context, id string, quantity int) error
}

type mongoTrainRepo struct {
	coll *mongo.Collection
}

// NewMongoTrainRepo returns a new TrainRepository instance using MongoDB.
func NewMongoTrainRepo() TrainRepository {
	repo := &mongoTrainRepo{coll: database.Collection("trains")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
