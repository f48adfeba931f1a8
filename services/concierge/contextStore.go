package concierge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"railbot/models"
)

const offerContextPrefix = "concierge:offers:"

// RedisOfferStore caches the most recently presented offer list per session,
// so the concierge can resolve "the second one" style references without
// re-querying the inventory.
type RedisOfferStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOfferStore(client *redis.Client, ttl time.Duration) *RedisOfferStore {
	return &RedisOfferStore{client: client, ttl: ttl}
}

func (s *RedisOfferStore) Get(ctx context.Context, sessionID string) ([]models.TrainOffer, error) {
	data, err := s.client.Get(ctx, offerContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var offers []models.TrainOffer
	if err := json.Unmarshal([]byte(data), &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *RedisOfferStore) Set(ctx context.Context, sessionID string, offers []models.TrainOffer) error {
	b, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, offerContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisOfferStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, offerContextPrefix+sessionID).Err()
}
