package bank

import (
	"log"
	"math/rand"
	"time"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/selection"
)

// Bank is an in-memory question source for known programming-language
// subjects. The data set is injected at construction so tests can substitute
// fixtures; nothing in this package holds process-wide state.
type Bank struct {
	subjects map[string][]selection.RawDraft
	rand     *rand.Rand
}

// New builds a bank over the given subject data. A nil seed draws in a
// different order every call; tests pass a fixed seed for determinism.
func New(subjects map[string][]selection.RawDraft, seed *int64) *Bank {
	src := rand.NewSource(time.Now().UnixNano())
	if seed != nil {
		src = rand.NewSource(*seed)
	}
	return &Bank{
		subjects: subjects,
		rand:     rand.New(src),
	}
}

// Default returns a bank over the built-in subject data.
func Default() *Bank {
	return New(builtinSubjects(), nil)
}

func (b *Bank) HasSubject(subject string) bool {
	_, ok := b.subjects[subject]
	return ok
}

// DrawQuestions returns up to count normalized drafts for the subject in a
// shuffled order. Records that fail normalization are logged and skipped.
func (b *Bank) DrawQuestions(count int, subject string) []selection.QuestionDraft {
	raws, ok := b.subjects[subject]
	if !ok {
		return nil
	}

	order := b.rand.Perm(len(raws))
	drafts := make([]selection.QuestionDraft, 0, count)
	for _, idx := range order {
		if len(drafts) >= count {
			break
		}
		d, err := selection.NormalizeDraft(raws[idx], models.SourceBank)
		if err != nil {
			log.Printf("bank: skipping malformed %s question: %v", subject, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}
