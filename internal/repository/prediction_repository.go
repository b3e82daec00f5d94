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

type PredictionRepository struct {
	Col *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{Col: db.Collection("predictions")}
}

// Get returns the user's cached prediction, or nil when none exists.
func (r *PredictionRepository) Get(ctx context.Context, userID string) (*models.Prediction, error) {
	var p models.Prediction
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts the snapshot keyed by user.
func (r *PredictionRepository) Save(ctx context.Context, p *models.Prediction) error {
	filter := bson.M{"user_id": p.UserID}
	update := bson.M{
		"$set": bson.M{
			"readiness_score":    p.ReadinessScore,
			"breakdown":          p.Breakdown,
			"recommended_topics": p.RecommendedTopics,
			"last_calculated":    p.LastCalculated,
		},
		"$setOnInsert": bson.M{
			"_id":     uuid.NewString(),
			"user_id": p.UserID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
