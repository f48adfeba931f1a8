package trainRepo

import (
	"context"
	"regexp"

	"railbot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchByRoute returns trains whose start and end stations contain the given
// names, matched case-insensitively.
func (r *mongoTrainRepo) SearchByRoute(ctx context.Context, start, end string) ([]models.Train, error) {
	filter := bson.M{
		"start": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(start), Options: "i"}},
		"end":   bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(end), Options: "i"}},
	}
	cursor, err := r.coll.Find(ctx, filter)
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
