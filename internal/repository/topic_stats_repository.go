package repository

import (
	"context"
	"errors"

	"prepquiz-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TopicStatsRepository struct {
	Col *mongo.Collection
}

func NewTopicStatsRepository(db *mongo.Database) *TopicStatsRepository {
	return &TopicStatsRepository{Col: db.Collection("topic_stats")}
}

// Get returns the (user, topic) aggregate, or nil when the user has not
// attempted the topic yet.
func (r *TopicStatsRepository) Get(ctx context.Context, userID, topicID string) (*models.TopicStats, error) {
	var ts models.TopicStats
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "topic_id": topicID}).Decode(&ts)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// Save upserts the aggregate keyed by (user, topic).
func (r *TopicStatsRepository) Save(ctx context.Context, ts *models.TopicStats) error {
	filter := bson.M{"user_id": ts.UserID, "topic_id": ts.TopicID}
	update := bson.M{
		"$set": bson.M{
			"total_attempts":        ts.TotalAttempts,
			"correct_attempts":      ts.CorrectAttempts,
			"accuracy":              ts.Accuracy,
			"mastery_score":         ts.MasteryScore,
			"average_response_time": ts.AverageResponseTime,
			"last_attempt_date":     ts.LastAttemptDate,
			"recent_performance":    ts.RecentPerformance,
		},
		"$setOnInsert": bson.M{
			"_id":      uuid.NewString(),
			"user_id":  ts.UserID,
			"topic_id": ts.TopicID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListByUser returns every topic aggregate the user has.
func (r *TopicStatsRepository) ListByUser(ctx context.Context, userID string) ([]models.TopicStats, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TopicStats
	for cur.Next(ctx) {
		var ts models.TopicStats
		if err := cur.Decode(&ts); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, cur.Err()
}
