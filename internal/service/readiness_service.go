package service

import (
	"context"
	"log"
	"time"

	"prepquiz-service/internal/cache"
	"prepquiz-service/internal/models"
	"prepquiz-service/internal/readiness"
	"prepquiz-service/internal/repository"
)

const predictionMaxAge = 24 * time.Hour

// ReadinessService serves readiness predictions through two cache layers:
// Redis first, then the Mongo snapshot, recomputing only when both are stale
// or missing.
type ReadinessService struct {
	Predictions *repository.PredictionRepository
	computer    *readiness.Computer
	cache       *cache.PredictionCache
}

func NewReadinessService(
	predictions *repository.PredictionRepository,
	computer *readiness.Computer,
	predictionCache *cache.PredictionCache,
) *ReadinessService {
	return &ReadinessService{
		Predictions: predictions,
		computer:    computer,
		cache:       predictionCache,
	}
}

// GetPrediction returns the user's readiness prediction, computing a fresh
// one only when no snapshot younger than 24 hours exists.
func (s *ReadinessService) GetPrediction(ctx context.Context, userID string) (*models.Prediction, error) {
	if s.cache != nil {
		if p := s.cache.Get(ctx, userID); p != nil {
			return p, nil
		}
	}

	snapshot, err := s.Predictions.Get(ctx, userID)
	if err != nil {
		log.Printf("loading prediction snapshot for %s failed: %v", userID, err)
	} else if snapshot != nil && time.Since(snapshot.LastCalculated) < predictionMaxAge {
		s.cacheSet(ctx, snapshot)
		return snapshot, nil
	}

	return s.Refresh(ctx, userID)
}

// Refresh recomputes the prediction and writes it through both layers.
func (s *ReadinessService) Refresh(ctx context.Context, userID string) (*models.Prediction, error) {
	p, err := s.computer.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Predictions.Save(ctx, p); err != nil {
		log.Printf("saving prediction snapshot for %s failed: %v", userID, err)
	}
	s.cacheSet(ctx, p)
	return p, nil
}

func (s *ReadinessService) cacheSet(ctx context.Context, p *models.Prediction) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		log.Printf("caching prediction for %s failed: %v", p.UserID, err)
	}
}
