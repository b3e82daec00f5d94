package stats

import "time"

// Mastery blend weights.
const (
	accuracyWeight    = 0.5
	recencyWeight     = 0.3
	consistencyWeight = 0.2

	// idealResponseSeconds anchors the consistency score: answering at or
	// under this pace earns the full 100.
	idealResponseSeconds = 60.0
)

// RecencyScore maps days since the last attempt onto a step scale.
func RecencyScore(lastAttempt, now time.Time) float64 {
	if lastAttempt.IsZero() {
		return 10
	}
	days := now.Sub(lastAttempt).Hours() / 24
	switch {
	case days <= 1:
		return 100
	case days <= 3:
		return 80
	case days <= 7:
		return 60
	case days <= 14:
		return 40
	case days <= 30:
		return 20
	default:
		return 10
	}
}

// ConsistencyScore rewards fast average response times, capped at 100.
// A zero average (no timing data yet) scores 100, matching the uncapped
// ideal/average ratio as the average approaches zero.
func ConsistencyScore(avgResponseSeconds float64) float64 {
	if avgResponseSeconds <= 0 {
		return 100
	}
	score := (idealResponseSeconds / avgResponseSeconds) * 100
	return clamp(score, 0, 100)
}

// MasteryScore blends accuracy, recency and consistency. All inputs and the
// result live on the 0-100 scale.
func MasteryScore(accuracy, recency, consistency float64) float64 {
	return accuracy*accuracyWeight + recency*recencyWeight + consistency*consistencyWeight
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
