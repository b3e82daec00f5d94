package bank

import (
	"testing"

	"prepquiz-service/internal/selection"
)

func TestHasSubject(t *testing.T) {
	b := Default()
	for _, subject := range []string{"javascript", "python", "golang"} {
		if !b.HasSubject(subject) {
			t.Errorf("expected built-in subject %q", subject)
		}
	}
	if b.HasSubject("history") {
		t.Error("unexpected subject 'history'")
	}
}

func TestDrawQuestionsDeterministicWithSeed(t *testing.T) {
	seed := int64(42)
	a := New(builtinSubjects(), &seed)
	seed2 := int64(42)
	b := New(builtinSubjects(), &seed2)

	qa := a.DrawQuestions(3, "javascript")
	qb := b.DrawQuestions(3, "javascript")
	if len(qa) != 3 || len(qb) != 3 {
		t.Fatalf("expected 3 drafts each, got %d and %d", len(qa), len(qb))
	}
	for i := range qa {
		if qa[i].Text != qb[i].Text {
			t.Errorf("draw %d differs between equally-seeded banks", i)
		}
	}
}

func TestDrawQuestionsCapsAtAvailable(t *testing.T) {
	b := Default()
	drafts := b.DrawQuestions(50, "python")
	if len(drafts) != len(builtinSubjects()["python"]) {
		t.Errorf("expected all python questions, got %d", len(drafts))
	}
	if b.DrawQuestions(3, "unknown") != nil {
		t.Error("expected nil for unknown subject")
	}
}

func TestDrawQuestionsNormalizes(t *testing.T) {
	b := Default()
	drafts := b.DrawQuestions(10, "golang")
	for _, d := range drafts {
		if d.CorrectAnswer == "" {
			t.Errorf("draft %q has no correct answer after normalization", d.Text)
		}
		for _, opt := range d.Options {
			if opt.Text == "" {
				t.Errorf("draft %q has an option without text", d.Text)
			}
		}
	}
}

func TestDrawSkipsMalformed(t *testing.T) {
	seed := int64(1)
	b := New(map[string][]selection.RawDraft{
		"mixed": {
			{Text: "good", Options: []any{"a", "b"}, CorrectAnswer: "a"},
			{Text: "", Options: []any{"a"}, CorrectAnswer: "a"},
		},
	}, &seed)

	drafts := b.DrawQuestions(5, "mixed")
	if len(drafts) != 1 || drafts[0].Text != "good" {
		t.Errorf("expected only the well-formed draft, got %+v", drafts)
	}
}
