package selection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"prepquiz-service/internal/models"
)

// ErrNoQuestions is returned when every tier combined yields zero questions.
// It is the one condition the chain surfaces instead of absorbing.
var ErrNoQuestions = errors.New("no questions available from any source")

// Chain draws questions through the three-tier waterfall: in-memory bank,
// persistent store, external provider. Later tiers run only when earlier
// tiers under-supply, and results are deduplicated by exact question text.
type Chain struct {
	bank            BankProvider
	store           QuestionStore
	external        ExternalProvider
	externalTimeout time.Duration
}

func NewChain(bank BankProvider, store QuestionStore, external ExternalProvider) *Chain {
	return &Chain{
		bank:            bank,
		store:           store,
		external:        external,
		externalTimeout: 5 * time.Second,
	}
}

// Select returns up to desired questions for the subject and filter. Bank and
// external drafts are persisted through the store's upsert-by-text before
// being returned, so every returned question has a store identity and a valid
// topic reference. A failing external tier is logged and skipped; the call
// fails only on store errors or total exhaustion.
func (c *Chain) Select(ctx context.Context, subject string, filter TopicFilter, desired int) ([]models.Question, error) {
	if desired <= 0 {
		return nil, fmt.Errorf("desired count must be positive, got %d", desired)
	}

	collected := make([]models.Question, 0, desired)
	seen := make(map[string]bool)

	// Tier 1: in-memory bank.
	if c.bank != nil && c.bank.HasSubject(subject) {
		drafts := c.bank.DrawQuestions(desired, subject)
		persisted, err := c.persistDrafts(ctx, subject, filter, drafts)
		if err != nil {
			return nil, fmt.Errorf("persisting bank questions: %w", err)
		}
		collected = appendUnique(collected, seen, persisted, desired)
	}

	// Tier 2: persistent store.
	if len(collected) < desired {
		stored, err := c.store.FindActiveQuestions(ctx, filter, desired-len(collected))
		if err != nil {
			return nil, fmt.Errorf("querying question store: %w", err)
		}
		collected = appendUnique(collected, seen, stored, desired)
	}

	// Tier 3: external provider. Failures here never fail the call.
	if len(collected) < desired && c.external != nil {
		extCtx, cancel := context.WithTimeout(ctx, c.externalTimeout)
		drafts, err := c.external.FetchQuestions(extCtx, desired-len(collected), subject)
		cancel()
		if err != nil {
			log.Printf("external question provider failed, continuing with %d questions: %v", len(collected), err)
		} else {
			persisted, perr := c.persistDrafts(ctx, subject, filter, drafts)
			if perr != nil {
				log.Printf("persisting external questions failed, continuing: %v", perr)
			} else {
				collected = appendUnique(collected, seen, persisted, desired)
			}
		}
	}

	if len(collected) == 0 {
		return nil, ErrNoQuestions
	}
	return collected, nil
}

// persistDrafts upserts drafts into the store keyed by question text. Drafts
// without an explicit topic land on the subject's placeholder topic so every
// stored question carries a valid topic reference.
func (c *Chain) persistDrafts(ctx context.Context, subject string, filter TopicFilter, drafts []QuestionDraft) ([]models.Question, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	topicID := filter.TopicID
	if topicID == "" {
		topic, err := c.store.FindOrCreateTopic(ctx, models.DefaultTopicKey(subject))
		if err != nil {
			return nil, fmt.Errorf("resolving placeholder topic: %w", err)
		}
		topicID = topic.ID
	}

	out := make([]models.Question, 0, len(drafts))
	for _, d := range drafts {
		tags := d.Tags
		if subject != "" && !containsTag(tags, subject) {
			tags = append(append([]string(nil), tags...), subject)
		}
		q := models.Question{
			TopicID:             topicID,
			Text:                d.Text,
			Type:                d.Type,
			Options:             d.Options,
			CorrectAnswer:       d.CorrectAnswer,
			Difficulty:          d.Difficulty,
			Tags:                tags,
			ExpectedTimeSeconds: d.ExpectedTimeSeconds,
			Explanation:         d.Explanation,
			Status:              models.StatusActive,
			Source:              d.Source,
			CreatedAt:           time.Now(),
		}
		stored, err := c.store.UpsertQuestionByText(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	return out, nil
}

func appendUnique(collected []models.Question, seen map[string]bool, more []models.Question, desired int) []models.Question {
	for _, q := range more {
		if len(collected) >= desired {
			break
		}
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		collected = append(collected, q)
	}
	return collected
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
