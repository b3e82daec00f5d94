package stats

import (
	"context"
	"log"
	"time"

	"prepquiz-service/internal/models"
)

// Store is the persistence surface the aggregator writes through. Lookups
// return nil when no record exists yet; saves are upserts.
type Store interface {
	QuestionStats(ctx context.Context, questionID string) (models.RunningStats, error)
	SaveQuestionStats(ctx context.Context, questionID string, stats models.RunningStats) error
	TopicStats(ctx context.Context, userID, topicID string) (*models.TopicStats, error)
	SaveTopicStats(ctx context.Context, stats *models.TopicStats) error
	MistakeLog(ctx context.Context, userID, questionID string) (*models.MistakeLog, error)
	SaveMistakeLog(ctx context.Context, entry *models.MistakeLog) error
}

type task struct {
	attempt *models.Attempt
	barrier chan struct{}
}

// Aggregator applies attempt side effects off the request path. Record hands
// the attempt to a single background worker and returns immediately; worker
// failures are logged and dropped, never surfaced to the submitter.
type Aggregator struct {
	store Store
	tasks chan task
	done  chan struct{}
}

func NewAggregator(store Store, buffer int) *Aggregator {
	if buffer <= 0 {
		buffer = 256
	}
	a := &Aggregator{
		store: store,
		tasks: make(chan task, buffer),
		done:  make(chan struct{}),
	}
	go a.worker()
	return a
}

// Record enqueues the attempt's stats update without blocking. When the
// buffer is full the update is dropped with a log line; best effort only.
func (a *Aggregator) Record(attempt models.Attempt) {
	select {
	case a.tasks <- task{attempt: &attempt}:
	default:
		log.Printf("stats: queue full, dropping update for question %s", attempt.QuestionID)
	}
}

// Flush blocks until every update enqueued before it has been applied.
// Test hook; the request path never calls it.
func (a *Aggregator) Flush() {
	barrier := make(chan struct{})
	a.tasks <- task{barrier: barrier}
	<-barrier
}

// Close stops the worker after draining pending tasks.
func (a *Aggregator) Close() {
	close(a.tasks)
	<-a.done
}

func (a *Aggregator) worker() {
	defer close(a.done)
	for t := range a.tasks {
		if t.barrier != nil {
			close(t.barrier)
			continue
		}
		a.apply(context.Background(), *t.attempt)
	}
}

// apply runs the three side effects for one attempt. Each is independent:
// a failure in one is logged and does not stop the others.
func (a *Aggregator) apply(ctx context.Context, attempt models.Attempt) {
	if err := a.updateQuestion(ctx, attempt); err != nil {
		log.Printf("stats: question update failed for %s: %v", attempt.QuestionID, err)
	}
	if err := a.updateTopic(ctx, attempt); err != nil {
		log.Printf("stats: topic update failed for %s/%s: %v", attempt.UserID, attempt.TopicID, err)
	}
	if err := a.updateMistakeLog(ctx, attempt); err != nil {
		log.Printf("stats: mistake log update failed for %s/%s: %v", attempt.UserID, attempt.QuestionID, err)
	}
}

func (a *Aggregator) updateQuestion(ctx context.Context, attempt models.Attempt) error {
	current, err := a.store.QuestionStats(ctx, attempt.QuestionID)
	if err != nil {
		return err
	}
	return a.store.SaveQuestionStats(ctx, attempt.QuestionID, ApplyToQuestion(current, attempt))
}

func (a *Aggregator) updateTopic(ctx context.Context, attempt models.Attempt) error {
	ts, err := a.store.TopicStats(ctx, attempt.UserID, attempt.TopicID)
	if err != nil {
		return err
	}
	if ts == nil {
		// Lazily created on the first attempt for this topic.
		ts = &models.TopicStats{
			UserID:  attempt.UserID,
			TopicID: attempt.TopicID,
		}
	}
	ApplyToTopic(ts, attempt, time.Now())
	return a.store.SaveTopicStats(ctx, ts)
}

func (a *Aggregator) updateMistakeLog(ctx context.Context, attempt models.Attempt) error {
	ml, err := a.store.MistakeLog(ctx, attempt.UserID, attempt.QuestionID)
	if err != nil {
		return err
	}
	if ml == nil {
		if attempt.IsCorrect {
			// No log to extend; correct answers never open one.
			return nil
		}
		ml = &models.MistakeLog{
			UserID:     attempt.UserID,
			QuestionID: attempt.QuestionID,
			TopicID:    attempt.TopicID,
		}
	}
	ApplyToMistakeLog(ml, attempt)
	return a.store.SaveMistakeLog(ctx, ml)
}
