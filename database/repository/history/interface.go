package historyRepo

import (
	"context"

	"railbot/database"
	"railbot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// HistoryRepository stores the persisted conversation turns.
type HistoryRepository interface {
	Append(ctx context.Context, turn models.ChatTurn) (string, error)
	// ListRecent returns up to limit turns in chronological order.
	ListRecent(ctx context.Context, limit int) ([]models.ChatTurn, error)
	Clear(ctx context.Context) error
}

type mongoHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepo returns a new HistoryRepository instance using MongoDB.
func NewMongoHistoryRepo() HistoryRepository {
	return &mongoHistoryRepo{coll: database.Collection("chat_history")}
}
