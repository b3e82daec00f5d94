package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"prepquiz-service/internal/adaptive"
	"prepquiz-service/internal/models"
	"prepquiz-service/internal/repository"
	"prepquiz-service/internal/selection"
	"prepquiz-service/internal/stats"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrInvalidMode          = errors.New("invalid quiz mode")
	ErrSessionNotFound      = errors.New("session not found")
	ErrNotSessionOwner      = errors.New("session belongs to another user")
	ErrQuestionNotInSession = errors.New("question is not part of this session")
	ErrQuestionNotFound     = errors.New("question not found")
)

const defaultQuestionCount = 10

// Publisher sends domain events; a nil Publisher disables eventing.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

type QuizService struct {
	Sessions   *repository.SessionRepository
	Questions  *repository.QuestionRepository
	Attempts   *repository.AttemptRepository
	Mistakes   *repository.MistakeLogRepository
	chain      *selection.Chain
	ladder     *adaptive.Manager
	aggregator *stats.Aggregator
	publisher  Publisher
}

func NewQuizService(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	attempts *repository.AttemptRepository,
	mistakes *repository.MistakeLogRepository,
	chain *selection.Chain,
	aggregator *stats.Aggregator,
	publisher Publisher,
) *QuizService {
	return &QuizService{
		Sessions:   sessions,
		Questions:  questions,
		Attempts:   attempts,
		Mistakes:   mistakes,
		chain:      chain,
		ladder:     adaptive.NewManager(nil),
		aggregator: aggregator,
		publisher:  publisher,
	}
}

type StartQuizRequest struct {
	Subject string
	TopicID string
	Mode    string
	Count   int
}

type StartQuizResult struct {
	Session    *models.QuizSession `json:"session"`
	Questions  []models.Question   `json:"questions"`
	Difficulty string              `json:"difficulty"`
}

// StartQuiz selects questions for the user at their adaptive difficulty and
// opens a session around them. Revision mode seeds the set from the user's
// unresolved mistakes before falling back to the normal selection chain.
// Questions are returned shaped: answers and explanations stripped.
func (s *QuizService) StartQuiz(ctx context.Context, userID string, req StartQuizRequest) (*StartQuizResult, error) {
	if req.Mode == "" {
		req.Mode = models.ModePractice
	}
	if !models.ValidMode(req.Mode) {
		return nil, ErrInvalidMode
	}
	if req.Count <= 0 {
		req.Count = defaultQuestionCount
	}

	difficulty, err := s.nextDifficulty(ctx, userID, req.TopicID)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	if req.Mode == models.ModeRevision {
		questions, err = s.revisionQuestions(ctx, userID, req.TopicID, req.Count)
		if err != nil {
			return nil, err
		}
	}
	if len(questions) < req.Count {
		filter := selection.TopicFilter{
			Subject:    req.Subject,
			TopicID:    req.TopicID,
			Difficulty: string(difficulty),
		}
		more, err := s.chain.Select(ctx, req.Subject, filter, req.Count-len(questions))
		if err != nil {
			if errors.Is(err, selection.ErrNoQuestions) && len(questions) > 0 {
				// Revision questions alone are enough to run the session.
				more = nil
			} else {
				return nil, err
			}
		}
		questions = mergeUnique(questions, more, req.Count)
	}

	session := &models.QuizSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		Mode:        req.Mode,
		Subject:     req.Subject,
		TopicID:     req.TopicID,
		QuestionIDs: questionIDs(questions),
		Status:      "active",
		StartTime:   time.Now(),
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.publish("quiz.session.started", eventPayload{
		"session_id": session.ID,
		"user_id":    userID,
		"mode":       req.Mode,
		"questions":  len(questions),
	})

	shaped := make([]models.Question, len(questions))
	for i, q := range questions {
		shaped[i] = q.Shaped()
	}
	return &StartQuizResult{
		Session:    session,
		Questions:  shaped,
		Difficulty: string(difficulty),
	}, nil
}

type SubmitAnswerRequest struct {
	QuestionID          string
	SelectedAnswer      string
	ResponseTimeSeconds float64
	Confidence          string
}

type SubmitAnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// SubmitAnswer grades one answer within a session. Grading and the response
// never wait on bookkeeping: the attempt write is log-and-continue and the
// stats update is handed to the background aggregator.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID, sessionID string, req SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	if !contains(session.QuestionIDs, req.QuestionID) {
		return nil, ErrQuestionNotInSession
	}

	question, err := s.Questions.FindByID(ctx, req.QuestionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	isCorrect := strings.TrimSpace(req.SelectedAnswer) == strings.TrimSpace(question.CorrectAnswer)

	retries, err := s.Attempts.CountForQuestion(ctx, userID, sessionID, req.QuestionID)
	if err != nil {
		log.Printf("counting retries failed for %s/%s: %v", sessionID, req.QuestionID, err)
		retries = 0
	}

	attempt := models.Attempt{
		ID:                  uuid.NewString(),
		UserID:              userID,
		SessionID:           sessionID,
		Mode:                session.Mode,
		TopicID:             question.TopicID,
		QuestionID:          question.ID,
		SelectedAnswer:      req.SelectedAnswer,
		IsCorrect:           isCorrect,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
		RetryCount:          int(retries),
		DifficultyAtAttempt: question.Difficulty,
		Confidence:          req.Confidence,
		Timestamp:           time.Now(),
	}
	if err := s.Attempts.Create(ctx, &attempt); err != nil {
		log.Printf("recording attempt failed for %s/%s: %v", sessionID, req.QuestionID, err)
	}
	s.aggregator.Record(attempt)

	s.publish("quiz.answer.submitted", eventPayload{
		"session_id":  sessionID,
		"user_id":     userID,
		"question_id": question.ID,
		"is_correct":  isCorrect,
	})

	return &SubmitAnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}, nil
}

// EndSession marks the session completed.
func (s *QuizService) EndSession(ctx context.Context, userID, sessionID string) (*models.QuizSession, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}

	now := time.Now()
	if err := s.Sessions.Update(ctx, sessionID, bson.M{"status": "completed", "end_time": now}); err != nil {
		return nil, err
	}
	session.Status = "completed"
	session.EndTime = now

	s.publish("quiz.session.completed", eventPayload{
		"session_id": sessionID,
		"user_id":    userID,
	})
	return session, nil
}

func (s *QuizService) GetSession(ctx context.Context, userID, sessionID string) (*models.QuizSession, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// GenerateForCreator selects questions with answers and explanations intact,
// for quiz authors rather than quiz takers.
func (s *QuizService) GenerateForCreator(ctx context.Context, subject, topicID, difficulty string, count int) ([]models.Question, error) {
	if count <= 0 {
		count = defaultQuestionCount
	}
	filter := selection.TopicFilter{
		Subject:    subject,
		TopicID:    topicID,
		Difficulty: difficulty,
	}
	return s.chain.Select(ctx, subject, filter, count)
}

// nextDifficulty runs the adaptive ladder over the user's newest attempts,
// scoped to the topic when one is given.
func (s *QuizService) nextDifficulty(ctx context.Context, userID, topicID string) (adaptive.Difficulty, error) {
	window := adaptive.DefaultConfig().Window
	var (
		recent []models.Attempt
		err    error
	)
	if topicID != "" {
		recent, err = s.Attempts.RecentByUserTopic(ctx, userID, topicID, window)
	} else {
		recent, err = s.Attempts.RecentByUser(ctx, userID, window)
	}
	if err != nil {
		return "", err
	}
	return s.ladder.NextDifficulty(recent), nil
}

// revisionQuestions loads the active questions behind the user's unresolved
// mistakes, most recently missed first.
func (s *QuizService) revisionQuestions(ctx context.Context, userID, topicID string, limit int) ([]models.Question, error) {
	logs, err := s.Mistakes.Unresolved(ctx, userID, topicID, limit)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(logs))
	for _, ml := range logs {
		ids = append(ids, ml.QuestionID)
	}
	questions, err := s.Questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve the mistake ordering and drop deactivated questions.
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok && q.Status == models.StatusActive {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func (s *QuizService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("publishing %s failed: %v", eventType, err)
	}
}

type eventPayload = map[string]interface{}

func questionIDs(questions []models.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func mergeUnique(base, more []models.Question, limit int) []models.Question {
	seen := make(map[string]bool, len(base))
	for _, q := range base {
		seen[q.ID] = true
	}
	for _, q := range more {
		if len(base) >= limit {
			break
		}
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		base = append(base, q)
	}
	return base
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
