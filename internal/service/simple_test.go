package service

import (
	"context"
	"errors"
	"testing"

	"prepquiz-service/internal/models"
)

func TestStartQuizRejectsUnknownMode(t *testing.T) {
	service := &QuizService{}

	_, err := service.StartQuiz(context.Background(), "user-1", StartQuizRequest{
		Subject: "golang",
		Mode:    "speedrun",
	})
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("err = %v, want ErrInvalidMode", err)
	}
}

func TestMergeUniqueSkipsDuplicatesAndRespectsLimit(t *testing.T) {
	base := []models.Question{{ID: "a"}, {ID: "b"}}
	more := []models.Question{{ID: "b"}, {ID: "c"}, {ID: "d"}}

	merged := mergeUnique(base, more, 3)
	if len(merged) != 3 {
		t.Fatalf("len = %d, want 3", len(merged))
	}
	if merged[2].ID != "c" {
		t.Errorf("merged[2] = %s, want c (b deduplicated)", merged[2].ID)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	service := &QuestionService{}

	cases := []struct {
		name     string
		question models.Question
	}{
		{"missing text", models.Question{CorrectAnswer: "4", TopicID: "t1"}},
		{"missing answer", models.Question{Text: "What is 2+2?", TopicID: "t1"}},
		{"missing topic", models.Question{Text: "What is 2+2?", CorrectAnswer: "4"}},
		{"answer not among options", models.Question{
			Text:          "What is 2+2?",
			CorrectAnswer: "4",
			TopicID:       "t1",
			Options:       []models.Option{{Text: "3"}, {Text: "5"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.question
			if err := service.CreateQuestion(context.Background(), &q); !errors.Is(err, ErrInvalidQuestion) {
				t.Fatalf("err = %v, want ErrInvalidQuestion", err)
			}
		})
	}
}
