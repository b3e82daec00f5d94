package service

import (
	"context"
	"errors"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/repository"
	"prepquiz-service/internal/selection"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidQuestion = errors.New("question is missing required fields")

// QuestionService backs the admin question and topic endpoints.
type QuestionService struct {
	Questions *repository.QuestionRepository
	Topics    *repository.TopicRepository
}

func NewQuestionService(questions *repository.QuestionRepository, topics *repository.TopicRepository) *QuestionService {
	return &QuestionService{Questions: questions, Topics: topics}
}

// CreateQuestion stores an author-supplied question. The correct answer must
// name one of the options for choice questions.
func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if question.Text == "" || question.CorrectAnswer == "" || question.TopicID == "" {
		return ErrInvalidQuestion
	}
	if question.Type == "" {
		question.Type = models.TypeMultipleChoice
	}
	if question.Type != models.TypeFillBlank {
		if !optionExists(question.Options, question.CorrectAnswer) {
			return ErrInvalidQuestion
		}
	}
	if question.Difficulty == "" {
		question.Difficulty = "medium"
	}
	if question.Status == "" {
		question.Status = models.StatusActive
	}
	if question.Source == "" {
		question.Source = models.SourceLocal
	}
	return s.Questions.Create(ctx, question)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Questions.FindByID(ctx, id)
}

// ListQuestions returns active questions matching the filter.
func (s *QuestionService) ListQuestions(ctx context.Context, filter selection.TopicFilter, limit int) ([]models.Question, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Questions.FindActiveQuestions(ctx, filter, limit)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, update map[string]interface{}) error {
	return s.Questions.Update(ctx, id, bson.M(update))
}

// DeleteQuestion deactivates rather than removes; attempts keep their
// references.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Questions.Deactivate(ctx, id)
}

func (s *QuestionService) CreateTopic(ctx context.Context, key models.TopicKey) (models.Topic, error) {
	return s.Topics.FindOrCreateTopic(ctx, key)
}

func (s *QuestionService) ListTopics(ctx context.Context, subject string) ([]models.Topic, error) {
	return s.Topics.FindBySubject(ctx, subject)
}

func optionExists(options []models.Option, answer string) bool {
	for _, opt := range options {
		if opt.Text == answer {
			return true
		}
	}
	return false
}
