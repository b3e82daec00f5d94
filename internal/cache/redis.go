package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"prepquiz-service/internal/models"
)

const predictionTTL = 24 * time.Hour

// PredictionCache keeps readiness snapshots in Redis so repeated reads
// within a day skip the full recomputation.
type PredictionCache struct {
	client *redis.Client
}

func NewPredictionCache(addr, password string, db int) *PredictionCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connecting to Redis: %s", err)
	}
	return &PredictionCache{client: client}
}

func predictionKey(userID string) string {
	return fmt.Sprintf("prediction:%s", userID)
}

// Get returns the cached prediction, or nil on a miss. Decode failures are
// treated as misses.
func (c *PredictionCache) Get(ctx context.Context, userID string) *models.Prediction {
	raw, err := c.client.Get(ctx, predictionKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var p models.Prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("Error decoding cached prediction for %s: %s", userID, err)
		return nil
	}
	return &p
}

func (c *PredictionCache) Set(ctx context.Context, p *models.Prediction) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("error saving prediction to cache: %s", err)
	}
	return c.client.Set(ctx, predictionKey(p.UserID), raw, predictionTTL).Err()
}

func (c *PredictionCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, predictionKey(userID)).Err(); err != nil {
		log.Printf("Error invalidating prediction cache for %s: %s", userID, err)
	}
}
