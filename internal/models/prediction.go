package models

import "time"

// ScoreComponent is one weighted input to the readiness score.
type ScoreComponent struct {
	Score  float64 `bson:"score" json:"score"`
	Weight float64 `bson:"weight" json:"weight"`
}

// ScoreBreakdown explains how the readiness score was assembled.
type ScoreBreakdown struct {
	Accuracy           ScoreComponent `bson:"accuracy" json:"accuracy"`
	SpeedConsistency   ScoreComponent `bson:"speed_consistency" json:"speed_consistency"`
	ImprovementTrend   ScoreComponent `bson:"improvement_trend" json:"improvement_trend"`
	ConfidenceBehavior ScoreComponent `bson:"confidence_behavior" json:"confidence_behavior"`
}

// RecommendedTopic is a weak topic surfaced to the user, weakest first.
type RecommendedTopic struct {
	TopicID        string  `bson:"topic_id" json:"topic_id"`
	MasteryScore   float64 `bson:"mastery_score" json:"mastery_score"`
	Priority       string  `bson:"priority" json:"priority"`
	EstimatedHours int     `bson:"estimated_hours" json:"estimated_hours"`
}

// Prediction is the cached per-user readiness snapshot. It is recomputed only
// when older than 24 hours or absent.
type Prediction struct {
	ID                  string             `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"user_id" json:"user_id"`
	ReadinessScore      float64            `bson:"readiness_score" json:"readiness_score"`
	Breakdown           ScoreBreakdown     `bson:"breakdown" json:"breakdown"`
	RecommendedTopics   []RecommendedTopic `bson:"recommended_topics" json:"recommended_topics"`
	LastCalculated      time.Time          `bson:"last_calculated" json:"last_calculated"`
}
