package models

import "time"

// DayPerformance is one calendar-day entry in the rolling performance window.
type DayPerformance struct {
	Date     time.Time `bson:"date" json:"date"`
	Accuracy float64   `bson:"accuracy" json:"accuracy"`
	Count    int       `bson:"count" json:"count"`
}

// TopicStats is the per (user, topic) rolling aggregate. Accuracy and
// MasteryScore stay within [0,100]; RecentPerformance holds at most the 30
// most recent day entries.
type TopicStats struct {
	ID                  string           `bson:"_id,omitempty" json:"id"`
	UserID              string           `bson:"user_id" json:"user_id"`
	TopicID             string           `bson:"topic_id" json:"topic_id"`
	TotalAttempts       int              `bson:"total_attempts" json:"total_attempts"`
	CorrectAttempts     int              `bson:"correct_attempts" json:"correct_attempts"`
	Accuracy            float64          `bson:"accuracy" json:"accuracy"`
	MasteryScore        float64          `bson:"mastery_score" json:"mastery_score"`
	AverageResponseTime float64          `bson:"average_response_time" json:"average_response_time"`
	LastAttemptDate     time.Time        `bson:"last_attempt_date" json:"last_attempt_date"`
	RecentPerformance   []DayPerformance `bson:"recent_performance" json:"recent_performance"`
}
