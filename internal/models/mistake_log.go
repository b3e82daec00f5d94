package models

import "time"

// MistakeLog tracks a user's incorrect answers per question. A log resolves
// once the user answers the question correctly three times in a row; any miss
// resets the streak.
type MistakeLog struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	UserID             string    `bson:"user_id" json:"user_id"`
	QuestionID         string    `bson:"question_id" json:"question_id"`
	TopicID            string    `bson:"topic_id" json:"topic_id"`
	MistakeCount       int       `bson:"mistake_count" json:"mistake_count"`
	LastMistakeDate    time.Time `bson:"last_mistake_date" json:"last_mistake_date"`
	Resolved           bool      `bson:"resolved" json:"resolved"`
	ConsecutiveCorrect int       `bson:"consecutive_correct" json:"consecutive_correct"`
}

// ResolveStreak is the consecutive-correct count that flips a log to resolved.
const ResolveStreak = 3
