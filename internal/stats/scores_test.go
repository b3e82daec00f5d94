package stats

import (
	"testing"
	"time"
)

func TestRecencyScoreBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		daysAgo  float64
		expected float64
	}{
		{"same day", 0, 100},
		{"exactly one day", 1, 100},
		{"two days", 2, 80},
		{"exactly three days", 3, 80},
		{"five days", 5, 60},
		{"ten days", 10, 40},
		{"twenty days", 20, 20},
		{"exactly thirty days", 30, 20},
		{"sixty days", 60, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			last := now.Add(-time.Duration(tc.daysAgo * 24 * float64(time.Hour)))
			if got := RecencyScore(last, now); got != tc.expected {
				t.Errorf("expected %.0f, got %.0f", tc.expected, got)
			}
		})
	}

	if got := RecencyScore(time.Time{}, now); got != 10 {
		t.Errorf("expected 10 for zero last-attempt time, got %.0f", got)
	}
}

func TestConsistencyScore(t *testing.T) {
	testCases := []struct {
		name     string
		avg      float64
		expected float64
	}{
		{"half the ideal time caps at 100", 30, 100},
		{"exactly ideal", 60, 100},
		{"double the ideal", 120, 50},
		{"four times the ideal", 240, 25},
		{"zero average scores full", 0, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConsistencyScore(tc.avg); got != tc.expected {
				t.Errorf("expected %.0f, got %.0f", tc.expected, got)
			}
		})
	}
}

func TestMasteryScoreBlend(t *testing.T) {
	// 5 attempts, 4 correct, 30s average, last attempt today:
	// accuracy 80, recency 100, consistency 100 -> 40 + 30 + 20 = 90.
	if got := MasteryScore(80, 100, 100); got != 90 {
		t.Errorf("expected 90, got %.2f", got)
	}
}

func TestMasteryRecencyBoundaryDifference(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	oneDay := RecencyScore(now.Add(-24*time.Hour), now)
	tenDays := RecencyScore(now.Add(-10*24*time.Hour), now)

	// Identical accuracy and consistency, recency buckets 100 vs 40:
	// the mastery gap must be exactly (100-40)*0.3 = 18 points.
	a := MasteryScore(70, oneDay, 50)
	b := MasteryScore(70, tenDays, 50)
	if diff := a - b; diff != 18 {
		t.Errorf("expected mastery difference of exactly 18, got %.2f", diff)
	}
}
