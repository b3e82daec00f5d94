package repository

import (
	"context"
	"time"

	"prepquiz-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

// Create appends an attempt to the log. Attempts are never updated.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now()
	}
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

// RecentByUserTopic returns the user's newest attempts for a topic, newest
// first.
func (r *AttemptRepository) RecentByUserTopic(ctx context.Context, userID, topicID string, limit int) ([]models.Attempt, error) {
	return r.find(ctx, bson.M{"user_id": userID, "topic_id": topicID}, limit)
}

// RecentByUser returns the user's newest attempts across all topics, newest
// first.
func (r *AttemptRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]models.Attempt, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

// CountForQuestion counts prior submissions of the same (user, session,
// question) triple; the result seeds the next attempt's retry count.
func (r *AttemptRepository) CountForQuestion(ctx context.Context, userID, sessionID, questionID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{
		"user_id":     userID,
		"session_id":  sessionID,
		"question_id": questionID,
	})
}

func (r *AttemptRepository) find(ctx context.Context, filter bson.M, limit int) ([]models.Attempt, error) {
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(int64(limit))

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.Attempt
	for cur.Next(ctx) {
		var a models.Attempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}
