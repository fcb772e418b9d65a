package services

import (
	"context"
	"errors"
	"fmt"

	"eventscheduler/internal/domain"
)

type preferenceService struct {
	repo domain.PreferenceRepository
	tx   domain.Transactor
}

// NewPreferenceService creates the per-user preference service.
func NewPreferenceService(repo domain.PreferenceRepository, tx domain.Transactor) domain.PreferenceService {
	return &preferenceService{repo: repo, tx: tx}
}

// Get returns the caller's preferences, creating an empty record on first access.
func (s *preferenceService) Get(ctx context.Context, userID int64) (*domain.Preference, error) {
	pref, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return pref, nil
}

// SetCategories replaces the category set. An empty list leaves the current
// set untouched; use ClearCategories to empty it.
func (s *preferenceService) SetCategories(ctx context.Context, userID int64, categoryIDs []int64) (*domain.Preference, error) {
	if len(categoryIDs) == 0 {
		return s.Get(ctx, userID)
	}
	return s.replace(ctx, userID, dedupeIDs(categoryIDs))
}

func (s *preferenceService) ClearCategories(ctx context.Context, userID int64) (*domain.Preference, error) {
	return s.replace(ctx, userID, nil)
}

func (s *preferenceService) replace(ctx context.Context, userID int64, categoryIDs []int64) (*domain.Preference, error) {
	var pref *domain.Preference
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ReplaceCategories(ctx, userID, categoryIDs); err != nil {
			return err
		}
		var err error
		pref, err = s.repo.GetOrCreate(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set preferences: %w", err)
	}
	return pref, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
