package historyRepo

import (
	"context"
	"time"

	"railbot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append inserts a new conversation turn and returns its ID.
func (r *mongoHistoryRepo) Append(ctx context.Context, turn models.ChatTurn) (string, error) {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, turn)
	if err != nil {
		return "", err
	}
	return turn.ID, nil
}

// ListRecent returns up to limit turns in chronological order. The newest
// turns win when the history is longer than limit.
func (r *mongoHistoryRepo) ListRecent(ctx context.Context, limit int) ([]models.ChatTurn, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var turns []models.ChatTurn
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, err
	}

	// Reverse the newest-first query order back to chronological.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Clear removes every persisted turn. Clearing an empty history is a no-op.
func (r *mongoHistoryRepo) Clear(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
