package readiness

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/stats"
)

// Readiness blend weights.
const (
	accuracyWeight    = 0.4
	speedWeight       = 0.3
	improvementWeight = 0.2
	confidenceWeight  = 0.1

	// attemptWindow is how much history feeds the computation; it is fetched
	// once and sliced in memory, never re-queried per metric.
	attemptWindow = 50
	recentSlice   = 20

	idealResponseSeconds = 60.0
	maxRecommended       = 5
	masteryCutoff        = 75.0
)

// Store reads the inputs of a readiness computation.
type Store interface {
	TopicStatsForUser(ctx context.Context, userID string) ([]models.TopicStats, error)
	RecentAttempts(ctx context.Context, userID string, limit int) ([]models.Attempt, error)
}

// Computer derives readiness predictions from a user's attempt history.
type Computer struct {
	store Store
	now   func() time.Time
}

func NewComputer(store Store) *Computer {
	return &Computer{store: store, now: time.Now}
}

// Compute builds a fresh prediction for the user. Users with no topic stats
// or no attempts get a zero-score prediction rather than a division by zero.
func (c *Computer) Compute(ctx context.Context, userID string) (*models.Prediction, error) {
	topicStats, err := c.store.TopicStatsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading topic stats: %w", err)
	}
	attempts, err := c.store.RecentAttempts(ctx, userID, attemptWindow)
	if err != nil {
		return nil, fmt.Errorf("loading attempts: %w", err)
	}

	now := c.now()
	if len(topicStats) == 0 || len(attempts) == 0 {
		return zeroPrediction(userID, now), nil
	}

	accuracyScore := meanTopicAccuracy(topicStats)
	speedScore := speedScore(attempts)
	improvementScore := improvementScore(attempts)
	confidenceScore := confidenceScore(attempts)

	score := accuracyScore*accuracyWeight +
		speedScore*speedWeight +
		improvementScore*improvementWeight +
		confidenceScore*confidenceWeight

	return &models.Prediction{
		UserID:         userID,
		ReadinessScore: score,
		Breakdown: models.ScoreBreakdown{
			Accuracy:           models.ScoreComponent{Score: accuracyScore, Weight: accuracyWeight},
			SpeedConsistency:   models.ScoreComponent{Score: speedScore, Weight: speedWeight},
			ImprovementTrend:   models.ScoreComponent{Score: improvementScore, Weight: improvementWeight},
			ConfidenceBehavior: models.ScoreComponent{Score: confidenceScore, Weight: confidenceWeight},
		},
		RecommendedTopics: recommendTopics(topicStats, now),
		LastCalculated:    now,
	}, nil
}

func zeroPrediction(userID string, now time.Time) *models.Prediction {
	return &models.Prediction{
		UserID: userID,
		Breakdown: models.ScoreBreakdown{
			Accuracy:           models.ScoreComponent{Weight: accuracyWeight},
			SpeedConsistency:   models.ScoreComponent{Weight: speedWeight},
			ImprovementTrend:   models.ScoreComponent{Weight: improvementWeight},
			ConfidenceBehavior: models.ScoreComponent{Weight: confidenceWeight},
		},
		RecommendedTopics: []models.RecommendedTopic{},
		LastCalculated:    now,
	}
}

// meanTopicAccuracy averages per-topic accuracy without weighting by attempt
// volume: a topic with 2 attempts counts the same as one with 200.
func meanTopicAccuracy(topicStats []models.TopicStats) float64 {
	total := 0.0
	for _, ts := range topicStats {
		total += ts.Accuracy
	}
	return total / float64(len(topicStats))
}

func speedScore(attempts []models.Attempt) float64 {
	total := 0.0
	for _, a := range attempts {
		total += a.ResponseTimeSeconds
	}
	avg := total / float64(len(attempts))
	if avg <= 0 {
		// No timing data behaves like the 60s default: full score.
		return 100
	}
	return math.Min(100, (idealResponseSeconds/avg)*100)
}

// improvementScore compares the newest 20 attempts against the 30 before
// them. An empty older group mirrors the recent accuracy, pinning the score
// at the neutral 50.
func improvementScore(attempts []models.Attempt) float64 {
	split := recentSlice
	if split > len(attempts) {
		split = len(attempts)
	}
	recentAcc := rawAccuracy(attempts[:split])
	olderAcc := recentAcc
	if len(attempts) > split {
		olderAcc = rawAccuracy(attempts[split:])
	}
	return clamp(50+(recentAcc-olderAcc)*2, 0, 100)
}

func rawAccuracy(attempts []models.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(attempts)) * 100
}

// confidenceScore is the correctness rate of attempts the user marked high
// confidence; neutral 50 when there are none.
func confidenceScore(attempts []models.Attempt) float64 {
	high, correct := 0, 0
	for _, a := range attempts {
		if a.Confidence != models.ConfidenceHigh {
			continue
		}
		high++
		if a.IsCorrect {
			correct++
		}
	}
	if high == 0 {
		return 50
	}
	return float64(correct) / float64(high) * 100
}

// recommendTopics surfaces the weakest topics. Mastery is re-evaluated
// against the current time so a stale topic's decayed recency shows through.
func recommendTopics(topicStats []models.TopicStats, now time.Time) []models.RecommendedTopic {
	weak := make([]models.RecommendedTopic, 0)
	for _, ts := range topicStats {
		mastery := stats.MasteryScore(
			ts.Accuracy,
			stats.RecencyScore(ts.LastAttemptDate, now),
			stats.ConsistencyScore(ts.AverageResponseTime),
		)
		if mastery >= masteryCutoff {
			continue
		}
		weak = append(weak, models.RecommendedTopic{
			TopicID:        ts.TopicID,
			MasteryScore:   mastery,
			Priority:       priorityFor(mastery),
			EstimatedHours: int(math.Ceil((100 - mastery) / 10)),
		})
	}

	sort.Slice(weak, func(i, j int) bool {
		return weak[i].MasteryScore < weak[j].MasteryScore
	})
	if len(weak) > maxRecommended {
		weak = weak[:maxRecommended]
	}
	return weak
}

func priorityFor(mastery float64) string {
	switch {
	case mastery < 40:
		return "high"
	case mastery < 60:
		return "medium"
	default:
		return "low"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
