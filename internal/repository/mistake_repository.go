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

type MistakeLogRepository struct {
	Col *mongo.Collection
}

func NewMistakeLogRepository(db *mongo.Database) *MistakeLogRepository {
	return &MistakeLogRepository{Col: db.Collection("mistake_logs")}
}

// Get returns the (user, question) log, or nil when the user has never
// missed the question.
func (r *MistakeLogRepository) Get(ctx context.Context, userID, questionID string) (*models.MistakeLog, error) {
	var ml models.MistakeLog
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "question_id": questionID}).Decode(&ml)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ml, nil
}

// Save upserts the log keyed by (user, question).
func (r *MistakeLogRepository) Save(ctx context.Context, ml *models.MistakeLog) error {
	filter := bson.M{"user_id": ml.UserID, "question_id": ml.QuestionID}
	update := bson.M{
		"$set": bson.M{
			"topic_id":            ml.TopicID,
			"mistake_count":       ml.MistakeCount,
			"last_mistake_date":   ml.LastMistakeDate,
			"resolved":            ml.Resolved,
			"consecutive_correct": ml.ConsecutiveCorrect,
		},
		"$setOnInsert": bson.M{
			"_id":         uuid.NewString(),
			"user_id":     ml.UserID,
			"question_id": ml.QuestionID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Unresolved returns the user's open mistake logs, most recently missed
// first. Revision mode draws from these before the normal chain.
func (r *MistakeLogRepository) Unresolved(ctx context.Context, userID, topicID string, limit int) ([]models.MistakeLog, error) {
	filter := bson.M{"user_id": userID, "resolved": false}
	if topicID != "" {
		filter["topic_id"] = topicID
	}
	opts := options.Find().
		SetSort(bson.M{"last_mistake_date": -1}).
		SetLimit(int64(limit))

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MistakeLog
	for cur.Next(ctx) {
		var ml models.MistakeLog
		if err := cur.Decode(&ml); err != nil {
			return nil, err
		}
		out = append(out, ml)
	}
	return out, cur.Err()
}
