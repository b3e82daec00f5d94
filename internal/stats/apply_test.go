package stats

import (
	"math"
	"testing"
	"time"

	"prepquiz-service/internal/models"
)

func attemptAt(ts time.Time, correct bool, seconds float64) models.Attempt {
	return models.Attempt{
		UserID:              "u1",
		TopicID:             "t1",
		QuestionID:          "q1",
		IsCorrect:           correct,
		ResponseTimeSeconds: seconds,
		Timestamp:           ts,
	}
}

func TestApplyToQuestionIncrementalMean(t *testing.T) {
	now := time.Now()
	s := models.RunningStats{}

	s = ApplyToQuestion(s, attemptAt(now, true, 10))
	s = ApplyToQuestion(s, attemptAt(now, false, 20))
	s = ApplyToQuestion(s, attemptAt(now, true, 30))

	if s.TotalAttempts != 3 || s.CorrectAttempts != 2 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if math.Abs(s.AverageTimeSeconds-20) > 1e-9 {
		t.Errorf("expected mean 20, got %.4f", s.AverageTimeSeconds)
	}
}

func TestQuestionStatsMonotonic(t *testing.T) {
	now := time.Now()
	s := models.RunningStats{}
	prevTotal := 0
	for i := 0; i < 20; i++ {
		s = ApplyToQuestion(s, attemptAt(now, i%3 == 0, float64(i)))
		if s.TotalAttempts <= prevTotal {
			t.Fatalf("total attempts not increasing at step %d", i)
		}
		if s.CorrectAttempts > s.TotalAttempts {
			t.Fatalf("correct exceeds total at step %d: %+v", i, s)
		}
		prevTotal = s.TotalAttempts
	}
}

func TestApplyToTopicEndToEndExample(t *testing.T) {
	// Five attempts on one topic, four correct, 30s each, all today.
	now := time.Now()
	ts := &models.TopicStats{UserID: "u1", TopicID: "t1"}

	results := []bool{true, true, true, true, false}
	for _, correct := range results {
		ApplyToTopic(ts, attemptAt(now, correct, 30), now)
	}

	if math.Abs(ts.Accuracy-80) > 1e-9 {
		t.Errorf("expected accuracy 80, got %.2f", ts.Accuracy)
	}
	if math.Abs(ts.MasteryScore-90) > 1e-9 {
		t.Errorf("expected mastery 90, got %.2f", ts.MasteryScore)
	}
}

func TestTopicStatsStayInRange(t *testing.T) {
	now := time.Now()
	ts := &models.TopicStats{UserID: "u1", TopicID: "t1"}

	for i := 0; i < 100; i++ {
		ApplyToTopic(ts, attemptAt(now.Add(time.Duration(i)*time.Minute), i%4 != 0, float64(i%200)), now)
		if ts.Accuracy < 0 || ts.Accuracy > 100 {
			t.Fatalf("accuracy out of range at step %d: %.2f", i, ts.Accuracy)
		}
		if ts.MasteryScore < 0 || ts.MasteryScore > 100 {
			t.Fatalf("mastery out of range at step %d: %.2f", i, ts.MasteryScore)
		}
	}
}

func TestDayPerformanceMergesSameDay(t *testing.T) {
	day := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	ts := &models.TopicStats{UserID: "u1", TopicID: "t1"}

	ApplyToTopic(ts, attemptAt(day, true, 30), day)
	ApplyToTopic(ts, attemptAt(day.Add(2*time.Hour), false, 30), day)

	if len(ts.RecentPerformance) != 1 {
		t.Fatalf("expected one day entry, got %d", len(ts.RecentPerformance))
	}
	entry := ts.RecentPerformance[0]
	if entry.Count != 2 || math.Abs(entry.Accuracy-50) > 1e-9 {
		t.Errorf("expected merged entry count=2 accuracy=50, got %+v", entry)
	}
}

func TestDayPerformanceCapsAtThirtyDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	ts := &models.TopicStats{UserID: "u1", TopicID: "t1"}

	for i := 0; i < 40; i++ {
		day := start.AddDate(0, 0, i)
		ApplyToTopic(ts, attemptAt(day, true, 30), day)
	}

	if len(ts.RecentPerformance) != 30 {
		t.Fatalf("expected window capped at 30, got %d", len(ts.RecentPerformance))
	}
	// Oldest surviving entry is day 10 of the run.
	oldest := ts.RecentPerformance[0].Date
	if expected := start.AddDate(0, 0, 10).Truncate(24 * time.Hour); !oldest.Equal(expected) {
		t.Errorf("expected oldest entry %v, got %v", expected, oldest)
	}
}

func TestApplyToMistakeLogLifecycle(t *testing.T) {
	now := time.Now()
	ml := &models.MistakeLog{UserID: "u1", QuestionID: "q1"}

	ApplyToMistakeLog(ml, attemptAt(now, false, 10))
	if ml.MistakeCount != 1 || ml.Resolved || ml.ConsecutiveCorrect != 0 {
		t.Fatalf("unexpected state after miss: %+v", ml)
	}

	ApplyToMistakeLog(ml, attemptAt(now, true, 10))
	ApplyToMistakeLog(ml, attemptAt(now, true, 10))
	if ml.Resolved {
		t.Fatal("resolved too early at streak 2")
	}

	ApplyToMistakeLog(ml, attemptAt(now, true, 10))
	if !ml.Resolved || ml.ConsecutiveCorrect != 3 {
		t.Fatalf("expected resolved at streak 3: %+v", ml)
	}

	// A miss reopens the log and resets the streak.
	ApplyToMistakeLog(ml, attemptAt(now, false, 10))
	if ml.Resolved || ml.ConsecutiveCorrect != 0 || ml.MistakeCount != 2 {
		t.Fatalf("expected reopened log: %+v", ml)
	}
}
