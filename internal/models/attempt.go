package models

import "time"

// Attempt is one user's answer to one question within a session.
// Attempts are append-only; they are never mutated after creation.
type Attempt struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	UserID              string    `bson:"user_id" json:"user_id"`
	SessionID           string    `bson:"session_id" json:"session_id"`
	Mode                string    `bson:"mode" json:"mode"`
	TopicID             string    `bson:"topic_id" json:"topic_id"`
	QuestionID          string    `bson:"question_id" json:"question_id"`
	SelectedAnswer      string    `bson:"selected_answer" json:"selected_answer"`
	IsCorrect           bool      `bson:"is_correct" json:"is_correct"`
	ResponseTimeSeconds float64   `bson:"response_time_seconds" json:"response_time_seconds"`
	RetryCount          int       `bson:"retry_count" json:"retry_count"`
	DifficultyAtAttempt string    `bson:"difficulty_at_attempt" json:"difficulty_at_attempt"`
	Confidence          string    `bson:"confidence" json:"confidence"`
	Timestamp           time.Time `bson:"timestamp" json:"timestamp"`
}

// Confidence levels
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)
