package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"prepquiz-service/internal/models"
	"prepquiz-service/internal/selection"
)

// TriviaClient fetches questions from a remote trivia provider. The provider
// is treated as unreliable: every call carries the client timeout and errors
// come back as *ProviderError so the fallback chain can log and move on.
type TriviaClient struct {
	baseURL string
	client  *http.Client
}

// Compile-time check: *TriviaClient satisfies the chain's provider interface.
var _ selection.ExternalProvider = (*TriviaClient)(nil)

// ProviderError distinguishes "the provider misbehaved" from local failures.
type ProviderError struct {
	Reason  string
	Wrapped error
}

func (e *ProviderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("trivia provider: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("trivia provider: %s", e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Wrapped
}

func NewTriviaClient(baseURL string) *TriviaClient {
	return &TriviaClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type triviaResponse struct {
	Results []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
		Difficulty       string   `json:"difficulty"`
		Type             string   `json:"type"`
		Category         string   `json:"category"`
	} `json:"results"`
}

// FetchQuestions requests count questions, optionally scoped to a subject,
// and normalizes each result into the canonical draft shape. Results that
// fail normalization are dropped rather than failing the batch.
func (c *TriviaClient) FetchQuestions(ctx context.Context, count int, subject string) ([]selection.QuestionDraft, error) {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%d", count))
	if subject != "" {
		q.Set("category", subject)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api.php?"+q.Encode(), nil)
	if err != nil {
		return nil, &ProviderError{Reason: "building request", Wrapped: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var payload triviaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ProviderError{Reason: "decoding response", Wrapped: err}
	}

	drafts := make([]selection.QuestionDraft, 0, len(payload.Results))
	for _, r := range payload.Results {
		options := make([]any, 0, len(r.IncorrectAnswers)+1)
		options = append(options, r.CorrectAnswer)
		for _, a := range r.IncorrectAnswers {
			options = append(options, a)
		}
		qType := models.TypeMultipleChoice
		if r.Type == "boolean" {
			qType = models.TypeTrueFalse
		}
		raw := selection.RawDraft{
			Text:          r.Question,
			Type:          qType,
			Options:       options,
			CorrectAnswer: r.CorrectAnswer,
			Difficulty:    r.Difficulty,
			Tags:          []string{r.Category},
		}
		d, err := selection.NormalizeDraft(raw, models.SourceExternal)
		if err != nil {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}
