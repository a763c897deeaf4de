// Package usecase implements the business logic for the detection history.
package usecase

import (
	"context"
	"fmt"

	"vision_backend/internal/feature/history/domain/entity"
)

const (
	// DefaultLimit is the number of records returned when no limit is given.
	DefaultLimit = 20
	// MaxLimit caps the number of records returned at once.
	MaxLimit = 100
)

// HistoryRepository abstracts persistence of detection records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type HistoryRepository interface {
	Create(ctx context.Context, record *entity.DetectionRecord) error
	ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
}

// HistoryUsecase records and lists detections.
type HistoryUsecase struct {
	repo HistoryRepository
}

// NewHistoryUsecase creates a new HistoryUsecase with the given repository.
func NewHistoryUsecase(r HistoryRepository) *HistoryUsecase {
	return &HistoryUsecase{repo: r}
}

// Record stores one detection.
func (u *HistoryUsecase) Record(ctx context.Context, kind, imageDigest string, maxResults, resultCount int) error {
	if kind == "" || imageDigest == "" {
		return fmt.Errorf("kind and image digest are required")
	}
	return u.repo.Create(ctx, &entity.DetectionRecord{
		Kind:        kind,
		ImageDigest: imageDigest,
		MaxResults:  maxResults,
		ResultCount: resultCount,
	})
}

// ListRecent returns the newest detections first.
func (u *HistoryUsecase) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return u.repo.ListRecent(ctx, limit)
}
