package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchQuestionsParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("amount") != "2" {
			t.Errorf("expected amount=2, got %q", r.URL.Query().Get("amount"))
		}
		w.Write([]byte(`{"results":[
			{"question":"Q1","correct_answer":"A","incorrect_answers":["B","C"],"difficulty":"easy","type":"multiple","category":"general"},
			{"question":"Q2","correct_answer":"True","incorrect_answers":["False"],"difficulty":"medium","type":"boolean","category":"general"}
		]}`))
	}))
	defer srv.Close()

	c := NewTriviaClient(srv.URL)
	drafts, err := c.FetchQuestions(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].CorrectAnswer != "A" || len(drafts[0].Options) != 3 {
		t.Errorf("unexpected first draft: %+v", drafts[0])
	}
	if drafts[1].Type != "true-false" {
		t.Errorf("expected boolean mapped to true-false, got %q", drafts[1].Type)
	}
}

func TestFetchQuestionsDropsMalformedResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"question":"","correct_answer":"A","incorrect_answers":["B"]},
			{"question":"ok","correct_answer":"A","incorrect_answers":["B"]}
		]}`))
	}))
	defer srv.Close()

	c := NewTriviaClient(srv.URL)
	drafts, err := c.FetchQuestions(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Text != "ok" {
		t.Errorf("expected only the valid draft, got %+v", drafts)
	}
}

func TestFetchQuestionsErrorTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewTriviaClient(srv.URL)
	_, err := c.FetchQuestions(context.Background(), 1, "")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
}

func TestFetchQuestionsHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewTriviaClient(srv.URL)
	if _, err := c.FetchQuestions(ctx, 1, ""); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
