package adaptive

import "prepquiz-service/internal/models"

// Manager proposes the next difficulty tier from recent attempt history.
type Manager struct {
	config Config
}

func NewManager(config *Config) *Manager {
	if config == nil {
		c := DefaultConfig()
		return &Manager{config: c}
	}
	return &Manager{config: *config}
}

// NextDifficulty inspects the user's most recent attempts for a topic
// (newest first, at most Window entries) and returns the tier to serve next.
//
// Fewer than MinAttempts attempts cold-starts the user on easy. Otherwise the
// accuracy over the window decides a single promotion or demotion step from
// the most recent attempt's tier. The thresholds are inclusive, and the
// accuracy denominator is the fixed window size even when fewer than Window
// attempts exist.
func (m *Manager) NextDifficulty(recent []models.Attempt) Difficulty {
	if len(recent) > m.config.Window {
		recent = recent[:m.config.Window]
	}
	if len(recent) < m.config.MinAttempts {
		return DifficultyEasy
	}

	correct := 0
	for _, a := range recent {
		if a.IsCorrect {
			correct++
		}
	}
	accuracy := float64(correct) / float64(m.config.Window)

	current := Difficulty(recent[0].DifficultyAtAttempt)
	idx := ladderIndex(current)
	if idx < 0 {
		current = DifficultyMedium
		idx = ladderIndex(current)
	}

	switch {
	case accuracy >= m.config.PromoteThreshold && idx < len(Ladder)-1:
		return Ladder[idx+1]
	case accuracy <= m.config.DemoteThreshold && idx > 0:
		return Ladder[idx-1]
	default:
		return current
	}
}

func ladderIndex(d Difficulty) int {
	for i, tier := range Ladder {
		if tier == d {
			return i
		}
	}
	return -1
}
