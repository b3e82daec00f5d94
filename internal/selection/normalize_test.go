package selection

import (
	"testing"

	"prepquiz-service/internal/models"
)

func TestNormalizeDraftStringOptions(t *testing.T) {
	raw := RawDraft{
		Text:          "What does CSS stand for?",
		Options:       []any{"Cascading Style Sheets", "Computer Style Sheets"},
		CorrectAnswer: "Cascading Style Sheets",
	}

	d, err := NormalizeDraft(raw, models.SourceBank)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Options) != 2 || d.Options[0].Text != "Cascading Style Sheets" {
		t.Errorf("unexpected options: %+v", d.Options)
	}
	if d.Type != models.TypeMultipleChoice {
		t.Errorf("expected default type, got %q", d.Type)
	}
	if d.Difficulty != "medium" || d.ExpectedTimeSeconds != 60 {
		t.Errorf("expected defaults applied, got %q/%d", d.Difficulty, d.ExpectedTimeSeconds)
	}
	if d.Source != models.SourceBank {
		t.Errorf("expected bank source, got %q", d.Source)
	}
}

func TestNormalizeDraftRecordOptions(t *testing.T) {
	raw := RawDraft{
		Text: "Is Go garbage collected?",
		Type: models.TypeTrueFalse,
		Options: []any{
			map[string]any{"text": "true", "is_correct": true},
			map[string]any{"text": "false"},
		},
	}

	d, err := NormalizeDraft(raw, models.SourceExternal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Correct answer derived from the flagged option.
	if d.CorrectAnswer != "true" {
		t.Errorf("expected correct answer from flagged option, got %q", d.CorrectAnswer)
	}
}

func TestNormalizeDraftRejectsBadShapes(t *testing.T) {
	testCases := []struct {
		name string
		raw  RawDraft
	}{
		{"empty text", RawDraft{Options: []any{"a"}, CorrectAnswer: "a"}},
		{"no correct answer", RawDraft{Text: "q", Options: []any{"a", "b"}}},
		{"unsupported option type", RawDraft{Text: "q", Options: []any{42}, CorrectAnswer: "a"}},
		{"option record without text", RawDraft{Text: "q", Options: []any{map[string]any{"is_correct": true}}, CorrectAnswer: "a"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NormalizeDraft(tc.raw, models.SourceBank); err == nil {
				t.Error("expected error")
			}
		})
	}
}
