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

type TopicRepository struct {
	Col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{Col: db.Collection("topics")}
}

// FindOrCreateTopic resolves the unique (subject, topic, subtopic, concept)
// tuple, creating the topic on first use.
func (r *TopicRepository) FindOrCreateTopic(ctx context.Context, key models.TopicKey) (models.Topic, error) {
	filter := bson.M{
		"subject":  key.Subject,
		"topic":    key.Topic,
		"subtopic": key.Subtopic,
		"concept":  key.Concept,
	}
	insert := models.Topic{
		ID:        uuid.NewString(),
		Subject:   key.Subject,
		Topic:     key.Topic,
		Subtopic:  key.Subtopic,
		Concept:   key.Concept,
		Active:    true,
		CreatedAt: time.Now(),
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Topic
	err := r.Col.FindOneAndUpdate(ctx, filter, bson.M{"$setOnInsert": insert}, opts).Decode(&out)
	if err != nil {
		return models.Topic{}, err
	}
	return out, nil
}

func (r *TopicRepository) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) FindBySubject(ctx context.Context, subject string) ([]models.Topic, error) {
	cur, err := r.Col.Find(ctx, bson.M{"subject": subject, "active": true},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var topics []models.Topic
	for cur.Next(ctx) {
		var t models.Topic
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, cur.Err()
}
