package readiness

import (
	"context"
	"math"
	"testing"
	"time"

	"prepquiz-service/internal/models"
)

type fakeStore struct {
	topicStats []models.TopicStats
	attempts   []models.Attempt
}

func (s *fakeStore) TopicStatsForUser(_ context.Context, _ string) ([]models.TopicStats, error) {
	return s.topicStats, nil
}

func (s *fakeStore) RecentAttempts(_ context.Context, _ string, limit int) ([]models.Attempt, error) {
	if limit > len(s.attempts) {
		limit = len(s.attempts)
	}
	return s.attempts[:limit], nil
}

func fixedComputer(store *fakeStore, now time.Time) *Computer {
	c := NewComputer(store)
	c.now = func() time.Time { return now }
	return c
}

func correctAttempts(n int, correct int, seconds float64, confidence string) []models.Attempt {
	out := make([]models.Attempt, n)
	for i := range out {
		out[i] = models.Attempt{
			IsCorrect:           i < correct,
			ResponseTimeSeconds: seconds,
			Confidence:          confidence,
		}
	}
	return out
}

func TestComputeZeroState(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		store *fakeStore
	}{
		{"no data at all", &fakeStore{}},
		{"stats but no attempts", &fakeStore{topicStats: []models.TopicStats{{TopicID: "t1"}}}},
		{"attempts but no stats", &fakeStore{attempts: correctAttempts(5, 5, 30, "")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := fixedComputer(tc.store, now).Compute(context.Background(), "u1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ReadinessScore != 0 {
				t.Errorf("expected zero readiness, got %.2f", p.ReadinessScore)
			}
			if len(p.RecommendedTopics) != 0 {
				t.Errorf("expected no recommendations, got %d", len(p.RecommendedTopics))
			}
		})
	}
}

func TestComputeBlendsComponents(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		topicStats: []models.TopicStats{
			{TopicID: "t1", Accuracy: 80, MasteryScore: 90, LastAttemptDate: now, AverageResponseTime: 30},
			{TopicID: "t2", Accuracy: 60, MasteryScore: 80, LastAttemptDate: now, AverageResponseTime: 30},
		},
		// 10 attempts, 8 correct, 30s, all high confidence.
		attempts: correctAttempts(10, 8, 30, models.ConfidenceHigh),
	}

	p, err := fixedComputer(store, now).Compute(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// accuracy = mean(80,60) = 70; speed = min(100, 60/30*100) = 100;
	// improvement: fewer than 20 attempts so older mirrors recent -> 50;
	// confidence = 8/10*100 = 80.
	expected := 70*0.4 + 100*0.3 + 50*0.2 + 80*0.1
	if math.Abs(p.ReadinessScore-expected) > 1e-9 {
		t.Errorf("expected readiness %.2f, got %.2f", expected, p.ReadinessScore)
	}
	if p.Breakdown.Accuracy.Score != 70 || p.Breakdown.SpeedConsistency.Score != 100 {
		t.Errorf("unexpected breakdown: %+v", p.Breakdown)
	}
}

func TestImprovementSplit(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Newest 20 attempts all correct, older 30 all wrong: improvement is
	// +100 points, clamped to 100 from 50 + 100*2.
	attempts := make([]models.Attempt, 50)
	for i := range attempts {
		attempts[i] = models.Attempt{IsCorrect: i < 20, ResponseTimeSeconds: 60}
	}
	store := &fakeStore{
		topicStats: []models.TopicStats{{TopicID: "t1", Accuracy: 90, MasteryScore: 90, LastAttemptDate: now, AverageResponseTime: 30}},
		attempts:   attempts,
	}

	p, err := fixedComputer(store, now).Compute(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Breakdown.ImprovementTrend.Score != 100 {
		t.Errorf("expected improvement clamped at 100, got %.2f", p.Breakdown.ImprovementTrend.Score)
	}
}

func TestConfidenceDefaultsWithoutHighMarks(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		topicStats: []models.TopicStats{{TopicID: "t1", Accuracy: 50, MasteryScore: 90, LastAttemptDate: now, AverageResponseTime: 60}},
		attempts:   correctAttempts(10, 5, 60, models.ConfidenceLow),
	}

	p, err := fixedComputer(store, now).Compute(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Breakdown.ConfidenceBehavior.Score != 50 {
		t.Errorf("expected neutral confidence 50, got %.2f", p.Breakdown.ConfidenceBehavior.Score)
	}
}

func TestRecommendedTopicsOrderingAndAnnotations(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)

	// Mastery with recency 100 and consistency 100: accuracy*0.5 + 50.
	mkStats := func(id string, accuracy float64) models.TopicStats {
		return models.TopicStats{
			TopicID:             id,
			Accuracy:            accuracy,
			LastAttemptDate:     recent,
			AverageResponseTime: 30,
		}
	}
	store := &fakeStore{
		topicStats: []models.TopicStats{
			mkStats("strong", 90), // mastery 95, above cutoff
			mkStats("weak-a", 40), // mastery 70
			mkStats("weak-b", 10), // mastery 55
			mkStats("weak-c", 0),  // mastery 50
			mkStats("weak-d", 20), // mastery 60
			mkStats("weak-e", 30), // mastery 65
			mkStats("weak-f", 44), // mastery 72
		},
		attempts: correctAttempts(10, 5, 30, ""),
	}

	p, err := fixedComputer(store, now).Compute(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.RecommendedTopics) != 5 {
		t.Fatalf("expected top 5 recommendations, got %d", len(p.RecommendedTopics))
	}
	expectedOrder := []string{"weak-c", "weak-b", "weak-d", "weak-e", "weak-a"}
	for i, want := range expectedOrder {
		if p.RecommendedTopics[i].TopicID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, p.RecommendedTopics[i].TopicID)
		}
	}

	first := p.RecommendedTopics[0]
	if first.Priority != "medium" {
		t.Errorf("mastery 50 should be medium priority, got %s", first.Priority)
	}
	if first.EstimatedHours != 5 {
		t.Errorf("expected ceil((100-50)/10)=5 hours, got %d", first.EstimatedHours)
	}
}

func TestStaleTopicRecencyShowsInRecommendations(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Same accuracy and pace, one topic 1 day old and one 10 days old:
	// recomputed mastery differs by (100-40)*0.3 = 18.
	store := &fakeStore{
		topicStats: []models.TopicStats{
			{TopicID: "fresh", Accuracy: 40, LastAttemptDate: now.Add(-24 * time.Hour), AverageResponseTime: 30},
			{TopicID: "stale", Accuracy: 40, LastAttemptDate: now.Add(-10 * 24 * time.Hour), AverageResponseTime: 30},
		},
		attempts: correctAttempts(10, 4, 30, ""),
	}

	p, err := fixedComputer(store, now).Compute(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byID := map[string]float64{}
	for _, r := range p.RecommendedTopics {
		byID[r.TopicID] = r.MasteryScore
	}
	if diff := byID["fresh"] - byID["stale"]; math.Abs(diff-18) > 1e-9 {
		t.Errorf("expected mastery gap of exactly 18, got %.2f", diff)
	}
}
