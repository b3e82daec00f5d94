package adaptive

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Ladder is the ordered difficulty progression, bottom tier first.
var Ladder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

// Valid reports whether d is a known difficulty tier.
func Valid(d string) bool {
	for _, tier := range Ladder {
		if Difficulty(d) == tier {
			return true
		}
	}
	return false
}

// Config holds the thresholds for the single-step ladder.
type Config struct {
	Window           int     // attempts examined per decision
	MinAttempts      int     // below this the user is cold-started on easy
	PromoteThreshold float64 // accuracy at or above promotes one tier
	DemoteThreshold  float64 // accuracy at or below demotes one tier
}

// DefaultConfig returns the ladder thresholds used in production.
func DefaultConfig() Config {
	return Config{
		Window:           5,
		MinAttempts:      3,
		PromoteThreshold: 0.8,
		DemoteThreshold:  0.4,
	}
}
