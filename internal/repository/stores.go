package repository

import (
	"context"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/selection"
)

// StatsStore adapts the repositories to the stats aggregator's store
// interface.
type StatsStore struct {
	Questions *QuestionRepository
	Topics    *TopicStatsRepository
	Mistakes  *MistakeLogRepository
}

func (s *StatsStore) QuestionStats(ctx context.Context, questionID string) (models.RunningStats, error) {
	return s.Questions.StatsByID(ctx, questionID)
}

func (s *StatsStore) SaveQuestionStats(ctx context.Context, questionID string, stats models.RunningStats) error {
	return s.Questions.SaveStats(ctx, questionID, stats)
}

func (s *StatsStore) TopicStats(ctx context.Context, userID, topicID string) (*models.TopicStats, error) {
	return s.Topics.Get(ctx, userID, topicID)
}

func (s *StatsStore) SaveTopicStats(ctx context.Context, ts *models.TopicStats) error {
	return s.Topics.Save(ctx, ts)
}

func (s *StatsStore) MistakeLog(ctx context.Context, userID, questionID string) (*models.MistakeLog, error) {
	return s.Mistakes.Get(ctx, userID, questionID)
}

func (s *StatsStore) SaveMistakeLog(ctx context.Context, ml *models.MistakeLog) error {
	return s.Mistakes.Save(ctx, ml)
}

// ChainStore joins the question and topic repositories into the selection
// chain's store interface.
type ChainStore struct {
	Questions *QuestionRepository
	Topics    *TopicRepository
}

func (s *ChainStore) FindActiveQuestions(ctx context.Context, filter selection.TopicFilter, limit int) ([]models.Question, error) {
	return s.Questions.FindActiveQuestions(ctx, filter, limit)
}

func (s *ChainStore) UpsertQuestionByText(ctx context.Context, question models.Question) (models.Question, error) {
	return s.Questions.UpsertQuestionByText(ctx, question)
}

func (s *ChainStore) FindOrCreateTopic(ctx context.Context, key models.TopicKey) (models.Topic, error) {
	return s.Topics.FindOrCreateTopic(ctx, key)
}

// ReadinessStore adapts the repositories to the readiness computer's store
// interface.
type ReadinessStore struct {
	Stats    *TopicStatsRepository
	Attempts *AttemptRepository
}

func (s *ReadinessStore) TopicStatsForUser(ctx context.Context, userID string) ([]models.TopicStats, error) {
	return s.Stats.ListByUser(ctx, userID)
}

func (s *ReadinessStore) RecentAttempts(ctx context.Context, userID string, limit int) ([]models.Attempt, error) {
	return s.Attempts.RecentByUser(ctx, userID, limit)
}
