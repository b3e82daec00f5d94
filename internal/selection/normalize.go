package selection

import (
	"fmt"
	"strings"

	"prepquiz-service/internal/models"
)

// NormalizeDraft converts a loosely-shaped source record into the canonical
// QuestionDraft. It is the single adapter through which every bank and
// external record passes; selection logic never inspects raw shapes itself.
func NormalizeDraft(raw RawDraft, source string) (QuestionDraft, error) {
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		return QuestionDraft{}, fmt.Errorf("draft has no question text")
	}

	options := make([]models.Option, 0, len(raw.Options))
	for _, o := range raw.Options {
		opt, err := normalizeOption(o)
		if err != nil {
			return QuestionDraft{}, fmt.Errorf("question %q: %w", text, err)
		}
		options = append(options, opt)
	}

	correct := strings.TrimSpace(raw.CorrectAnswer)
	if correct == "" {
		// Fall back to the flagged option when the source marks correctness
		// on the option itself.
		for _, opt := range options {
			if opt.IsCorrect {
				correct = opt.Text
				break
			}
		}
	}
	if correct == "" {
		return QuestionDraft{}, fmt.Errorf("question %q has no correct answer", text)
	}

	qType := raw.Type
	if qType == "" {
		qType = models.TypeMultipleChoice
	}
	difficulty := raw.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	expected := raw.ExpectedTimeSeconds
	if expected <= 0 {
		expected = 60
	}

	return QuestionDraft{
		Text:                text,
		Type:                qType,
		Options:             options,
		CorrectAnswer:       correct,
		Difficulty:          difficulty,
		Tags:                raw.Tags,
		Explanation:         raw.Explanation,
		ExpectedTimeSeconds: expected,
		Source:              source,
	}, nil
}

func normalizeOption(o any) (models.Option, error) {
	switch v := o.(type) {
	case string:
		return models.Option{Text: v}, nil
	case models.Option:
		return v, nil
	case map[string]any:
		text, _ := v["text"].(string)
		if text == "" {
			return models.Option{}, fmt.Errorf("option record has no text")
		}
		isCorrect, _ := v["is_correct"].(bool)
		return models.Option{Text: text, IsCorrect: isCorrect}, nil
	default:
		return models.Option{}, fmt.Errorf("unsupported option shape %T", o)
	}
}
