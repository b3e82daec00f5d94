package selection

import (
	"context"

	"prepquiz-service/internal/models"
)

// RawDraft is the loosely-shaped question record produced by the bank and
// external sources. Options may be plain strings or {text, is_correct}
// records; NormalizeDraft converts either shape into the canonical one.
type RawDraft struct {
	Text                string
	Type                string
	Options             []any
	CorrectAnswer       string
	Difficulty          string
	Tags                []string
	Explanation         string
	ExpectedTimeSeconds int
}

// QuestionDraft is the canonical pre-persistence question shape.
type QuestionDraft struct {
	Text                string
	Type                string
	Options             []models.Option
	CorrectAnswer       string
	Difficulty          string
	Tags                []string
	Explanation         string
	ExpectedTimeSeconds int
	Source              string
}

// TopicFilter scopes a selection request.
type TopicFilter struct {
	Subject    string
	TopicID    string
	Difficulty string
}

// BankProvider serves deterministic in-memory questions for known subjects.
type BankProvider interface {
	HasSubject(subject string) bool
	DrawQuestions(count int, subject string) []QuestionDraft
}

// QuestionStore is the persistent tier of the chain. UpsertQuestionByText
// matches on exact question text, so re-persisting a bank or external draft
// returns the existing row instead of creating a duplicate.
type QuestionStore interface {
	FindActiveQuestions(ctx context.Context, filter TopicFilter, limit int) ([]models.Question, error)
	UpsertQuestionByText(ctx context.Context, question models.Question) (models.Question, error)
	FindOrCreateTopic(ctx context.Context, key models.TopicKey) (models.Topic, error)
}

// ExternalProvider fetches questions from a remote trivia API. It is
// unreliable; callers bound it with a timeout and absorb its failures.
type ExternalProvider interface {
	FetchQuestions(ctx context.Context, count int, subject string) ([]QuestionDraft, error)
}
