package repository

import (
	"context"
	"time"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/selection"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

// FindActiveQuestions returns active questions matching the filter, up to
// limit. Subject matching goes through tags since bank and external
// questions are tagged with their subject on persist.
func (r *QuestionRepository) FindActiveQuestions(ctx context.Context, filter selection.TopicFilter, limit int) ([]models.Question, error) {
	query := bson.M{"status": models.StatusActive}
	if filter.TopicID != "" {
		query["topic_id"] = filter.TopicID
	} else if filter.Subject != "" {
		query["tags"] = filter.Subject
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}

	cur, err := r.Col.Find(ctx, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

// UpsertQuestionByText inserts the question or returns the existing row with
// the same exact text. The text is the match key; repeated persistence of
// bank or external drafts never creates duplicates.
func (r *QuestionRepository) UpsertQuestionByText(ctx context.Context, question models.Question) (models.Question, error) {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Question
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"text": question.Text},
		bson.M{"$setOnInsert": question},
		opts,
	).Decode(&out)
	if err != nil {
		return models.Question{}, err
	}
	return out, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// Deactivate soft-deletes a question; historical attempts keep referencing it.
func (r *QuestionRepository) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, bson.M{"status": models.StatusInactive})
}

func (r *QuestionRepository) StatsByID(ctx context.Context, id string) (models.RunningStats, error) {
	var doc struct {
		Stats models.RunningStats `bson:"stats"`
	}
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return models.RunningStats{}, err
	}
	return doc.Stats, nil
}

func (r *QuestionRepository) SaveStats(ctx context.Context, id string, stats models.RunningStats) error {
	return r.Update(ctx, id, bson.M{"stats": stats})
}
