package models

import "time"

// QuizSession tracks one user's run through a set of questions.
type QuizSession struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Mode        string    `bson:"mode" json:"mode"`
	Subject     string    `bson:"subject" json:"subject"`
	TopicID     string    `bson:"topic_id" json:"topic_id"`
	QuestionIDs []string  `bson:"question_ids" json:"question_ids"`
	Status      string    `bson:"status" json:"status"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	EndTime     time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
}

// Session modes
const (
	ModePractice = "practice"
	ModeTimed    = "timed"
	ModeRevision = "revision"
)

// ValidMode reports whether mode is one of the supported quiz modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModePractice, ModeTimed, ModeRevision:
		return true
	}
	return false
}
