package stats

import (
	"time"

	"prepquiz-service/internal/models"
)

// recentWindowDays caps the rolling per-day performance list.
const recentWindowDays = 30

// ApplyToQuestion folds one attempt into a question's running stats using an
// incremental mean; no per-attempt history is kept.
func ApplyToQuestion(s models.RunningStats, attempt models.Attempt) models.RunningStats {
	prev := float64(s.TotalAttempts)
	s.TotalAttempts++
	if attempt.IsCorrect {
		s.CorrectAttempts++
	}
	s.AverageTimeSeconds = (s.AverageTimeSeconds*prev + attempt.ResponseTimeSeconds) / float64(s.TotalAttempts)
	return s
}

// ApplyToTopic folds one attempt into the per (user, topic) aggregate and
// recomputes accuracy and mastery. The zero-attempt case is unreachable after
// the increment, so the divisions are safe.
func ApplyToTopic(ts *models.TopicStats, attempt models.Attempt, now time.Time) {
	prev := float64(ts.TotalAttempts)
	ts.TotalAttempts++
	if attempt.IsCorrect {
		ts.CorrectAttempts++
	}
	ts.AverageResponseTime = (ts.AverageResponseTime*prev + attempt.ResponseTimeSeconds) / float64(ts.TotalAttempts)
	ts.Accuracy = float64(ts.CorrectAttempts) / float64(ts.TotalAttempts) * 100
	ts.LastAttemptDate = attempt.Timestamp

	ts.MasteryScore = MasteryScore(
		ts.Accuracy,
		RecencyScore(ts.LastAttemptDate, now),
		ConsistencyScore(ts.AverageResponseTime),
	)

	applyDayPerformance(ts, attempt)
}

// applyDayPerformance merges the attempt into today's entry or appends a new
// day, keeping at most the 30 most recent day entries.
func applyDayPerformance(ts *models.TopicStats, attempt models.Attempt) {
	day := attempt.Timestamp.Truncate(24 * time.Hour)
	result := 0.0
	if attempt.IsCorrect {
		result = 100
	}

	n := len(ts.RecentPerformance)
	if n > 0 && ts.RecentPerformance[n-1].Date.Equal(day) {
		entry := &ts.RecentPerformance[n-1]
		total := entry.Accuracy*float64(entry.Count) + result
		entry.Count++
		entry.Accuracy = total / float64(entry.Count)
		return
	}

	ts.RecentPerformance = append(ts.RecentPerformance, models.DayPerformance{
		Date:     day,
		Accuracy: result,
		Count:    1,
	})
	if len(ts.RecentPerformance) > recentWindowDays {
		ts.RecentPerformance = ts.RecentPerformance[len(ts.RecentPerformance)-recentWindowDays:]
	}
}

// ApplyToMistakeLog folds an attempt into an existing mistake log. A miss
// bumps the count and resets the streak; a correct answer extends the streak
// and resolves the log once it reaches the resolve threshold.
func ApplyToMistakeLog(ml *models.MistakeLog, attempt models.Attempt) {
	if attempt.IsCorrect {
		ml.ConsecutiveCorrect++
		if ml.ConsecutiveCorrect >= models.ResolveStreak {
			ml.Resolved = true
		}
		return
	}
	ml.MistakeCount++
	ml.ConsecutiveCorrect = 0
	ml.Resolved = false
	ml.LastMistakeDate = attempt.Timestamp
}
