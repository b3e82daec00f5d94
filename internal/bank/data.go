package bank

import "prepquiz-service/internal/selection"

// builtinSubjects is the seed question data for the programming-language
// banks. Option shapes are deliberately mixed (plain strings vs records);
// selection.NormalizeDraft canonicalizes them.
func builtinSubjects() map[string][]selection.RawDraft {
	return map[string][]selection.RawDraft{
		"javascript": {
			{
				Text:          "Which keyword declares a block-scoped variable in JavaScript?",
				Options:       []any{"var", "let", "function", "with"},
				CorrectAnswer: "let",
				Difficulty:    "easy",
				Tags:          []string{"variables", "scope"},
				Explanation:   "let and const are block-scoped; var is function-scoped.",
			},
			{
				Text:          "What does Array.prototype.map return?",
				Options:       []any{"The mutated original array", "A new array of transformed elements", "undefined", "An iterator"},
				CorrectAnswer: "A new array of transformed elements",
				Difficulty:    "easy",
				Tags:          []string{"arrays"},
			},
			{
				Text: "Is `typeof null` equal to \"object\"?",
				Type: "true-false",
				Options: []any{
					map[string]any{"text": "true", "is_correct": true},
					map[string]any{"text": "false"},
				},
				Difficulty:  "medium",
				Tags:        []string{"types"},
				Explanation: "A long-standing quirk of the language.",
			},
			{
				Text:          "Which value is NOT falsy in JavaScript?",
				Options:       []any{"0", "\"\"", "[]", "NaN"},
				CorrectAnswer: "[]",
				Difficulty:    "medium",
				Tags:          []string{"types", "coercion"},
			},
			{
				Text:          "What does the event loop process after the current call stack empties?",
				Options:       []any{"Microtasks, then macrotasks", "Macrotasks, then microtasks", "Only promises", "Render callbacks first"},
				CorrectAnswer: "Microtasks, then macrotasks",
				Difficulty:    "hard",
				Tags:          []string{"async", "event-loop"},
			},
		},
		"python": {
			{
				Text:          "Which of these creates a tuple with a single element?",
				Options:       []any{"(1)", "(1,)", "tuple(1)", "[1]"},
				CorrectAnswer: "(1,)",
				Difficulty:    "easy",
				Tags:          []string{"tuples"},
			},
			{
				Text: "Are Python strings mutable?",
				Type: "true-false",
				Options: []any{
					map[string]any{"text": "true"},
					map[string]any{"text": "false", "is_correct": true},
				},
				Difficulty: "easy",
				Tags:       []string{"strings"},
			},
			{
				Text:          "What does a list comprehension `[x*x for x in range(3)]` evaluate to?",
				Options:       []any{"[0, 1, 4]", "[1, 4, 9]", "[0, 1, 2]", "(0, 1, 4)"},
				CorrectAnswer: "[0, 1, 4]",
				Difficulty:    "medium",
				Tags:          []string{"comprehensions"},
			},
			{
				Text:          "Which statement about the GIL is accurate?",
				Options:       []any{"It prevents all concurrency", "It serializes bytecode execution within one process", "It only affects I/O", "It was removed in Python 3"},
				CorrectAnswer: "It serializes bytecode execution within one process",
				Difficulty:    "hard",
				Tags:          []string{"concurrency", "gil"},
			},
		},
		"golang": {
			{
				Text:          "What is the zero value of a slice in Go?",
				Options:       []any{"An empty slice", "nil", "A slice of length 1", "It has no zero value"},
				CorrectAnswer: "nil",
				Difficulty:    "easy",
				Tags:          []string{"slices", "zero-values"},
			},
			{
				Text:          "Which construct is used to wait for multiple goroutines to finish?",
				Options:       []any{"sync.WaitGroup", "time.Sleep", "runtime.Gosched", "select{}"},
				CorrectAnswer: "sync.WaitGroup",
				Difficulty:    "easy",
				Tags:          []string{"concurrency"},
			},
			{
				Text: "Does sending on a nil channel panic?",
				Type: "true-false",
				Options: []any{
					map[string]any{"text": "true"},
					map[string]any{"text": "false", "is_correct": true},
				},
				Difficulty:  "medium",
				Tags:        []string{"channels"},
				Explanation: "Sending on a nil channel blocks forever; closing one panics.",
			},
			{
				Text:          "What happens when you read from a closed channel?",
				Options:       []any{"Panic", "Block forever", "Receive the zero value immediately", "Compile error"},
				CorrectAnswer: "Receive the zero value immediately",
				Difficulty:    "medium",
				Tags:          []string{"channels"},
			},
		},
	}
}
