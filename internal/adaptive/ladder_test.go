package adaptive

import (
	"testing"

	"prepquiz-service/internal/models"
)

// buildAttempts creates a newest-first attempt window where the first
// attempt carries the given current difficulty.
func buildAttempts(current string, results ...bool) []models.Attempt {
	attempts := make([]models.Attempt, len(results))
	for i, correct := range results {
		attempts[i] = models.Attempt{
			IsCorrect:           correct,
			DifficultyAtAttempt: current,
		}
	}
	return attempts
}

func TestNextDifficultyColdStart(t *testing.T) {
	m := NewManager(nil)

	testCases := []struct {
		name     string
		attempts []models.Attempt
	}{
		{"no attempts", nil},
		{"one attempt", buildAttempts("hard", true)},
		{"two attempts", buildAttempts("expert", true, true)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.NextDifficulty(tc.attempts); got != DifficultyEasy {
				t.Errorf("expected easy for cold start, got %s", got)
			}
		})
	}
}

func TestNextDifficultyLadderBoundaries(t *testing.T) {
	m := NewManager(nil)

	testCases := []struct {
		name     string
		current  string
		results  []bool
		expected Difficulty
	}{
		// Exactly 0.8 accuracy promotes (inclusive threshold).
		{"promote at exactly 0.8", "medium", []bool{true, true, true, true, false}, DifficultyHard},
		// Exactly 0.4 accuracy demotes (inclusive threshold).
		{"demote at exactly 0.4", "medium", []bool{true, true, false, false, false}, DifficultyEasy},
		// 0.6 stays put.
		{"hold at 0.6", "medium", []bool{true, true, true, false, false}, DifficultyMedium},
		// Top tier cannot promote.
		{"expert stays on perfect run", "expert", []bool{true, true, true, true, true}, DifficultyExpert},
		// Bottom tier cannot demote.
		{"easy stays on failed run", "easy", []bool{false, false, false, false, false}, DifficultyEasy},
		// Denominator is the window size even with only 3 attempts: 3/5 = 0.6.
		{"three correct of three holds", "medium", []bool{true, true, true}, DifficultyMedium},
		// 1 correct of 3 gives 0.2 <= 0.4: demote.
		{"one of three demotes", "hard", []bool{true, false, false}, DifficultyMedium},
		// Unknown current difficulty defaults to medium before stepping.
		{"undefined current promotes from medium", "", []bool{true, true, true, true, true}, DifficultyHard},
		{"undefined current holds medium", "", []bool{true, true, true, false, false}, DifficultyMedium},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attempts := buildAttempts(tc.current, tc.results...)
			if got := m.NextDifficulty(attempts); got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestNextDifficultyUsesOnlyWindow(t *testing.T) {
	m := NewManager(nil)

	// Seven attempts, newest five are all correct, older two wrong.
	attempts := buildAttempts("medium", true, true, true, true, true, false, false)
	if got := m.NextDifficulty(attempts); got != DifficultyHard {
		t.Errorf("expected hard from five-attempt window, got %s", got)
	}
}

func TestValid(t *testing.T) {
	for _, d := range []string{"easy", "medium", "hard", "expert"} {
		if !Valid(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}
	if Valid("impossible") {
		t.Error("expected unknown tier to be invalid")
	}
}
