package models

import "time"

type Option struct {
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct,omitempty"`
}

// RunningStats is the per-question aggregate updated after every attempt.
// CorrectAttempts never exceeds TotalAttempts.
type RunningStats struct {
	TotalAttempts      int     `bson:"total_attempts" json:"total_attempts"`
	CorrectAttempts    int     `bson:"correct_attempts" json:"correct_attempts"`
	AverageTimeSeconds float64 `bson:"average_time_seconds" json:"average_time_seconds"`
}

type Question struct {
	ID                  string       `bson:"_id,omitempty" json:"id"`
	TopicID             string       `bson:"topic_id" json:"topic_id"`
	Text                string       `bson:"text" json:"text"`
	Type                string       `bson:"type" json:"type"`
	Options             []Option     `bson:"options" json:"options"`
	CorrectAnswer       string       `bson:"correct_answer" json:"correct_answer,omitempty"`
	Difficulty          string       `bson:"difficulty" json:"difficulty"`
	Tags                []string     `bson:"tags" json:"tags"`
	ExpectedTimeSeconds int          `bson:"expected_time_seconds" json:"expected_time_seconds"`
	Explanation         string       `bson:"explanation" json:"explanation,omitempty"`
	Hints               []string     `bson:"hints" json:"hints,omitempty"`
	Status              string       `bson:"status" json:"status"`
	Source              string       `bson:"source" json:"source"`
	Stats               RunningStats `bson:"stats" json:"stats"`
	CreatedAt           time.Time    `bson:"created_at" json:"created_at"`
}

// Question types
const (
	TypeMultipleChoice = "multiple-choice"
	TypeTrueFalse      = "true-false"
	TypeFillBlank      = "fill-blank"
)

// Question statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusReview   = "review"
)

// Question sources
const (
	SourceLocal    = "local"
	SourceBank     = "bank"
	SourceExternal = "external"
)

// Shaped returns a copy safe to hand to a quiz taker: the correct answer,
// option correctness flags and the explanation are stripped.
func (q Question) Shaped() Question {
	out := q
	out.CorrectAnswer = ""
	out.Explanation = ""
	out.Options = make([]Option, len(q.Options))
	for i, opt := range q.Options {
		out.Options[i] = Option{Text: opt.Text}
	}
	return out
}
