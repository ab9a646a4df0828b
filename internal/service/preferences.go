package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
)

// PreferencesService owns the single preferences record per user. Records are
// created with defaults on first access.
type PreferencesService struct {
	repo repository.PreferencesRepository
}

func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

func (s *PreferencesService) Get(ctx context.Context, userID string) (model.UserPreferences, error) {
	if userID == "" {
		return model.UserPreferences{}, ErrUnauthenticated
	}

	prefs, err := s.repo.Get(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.UserPreferences{}, storeError("get preferences", err)
	}

	prefs, err = s.repo.Create(ctx, model.DefaultPreferences(userID))
	if errors.Is(err, repository.ErrConflict) {
		// Created concurrently by another request.
		prefs, err = s.repo.Get(ctx, userID)
	}
	if err != nil {
		return model.UserPreferences{}, storeError("create default preferences", err)
	}
	return prefs, nil
}

// Create stores defaults overlaid with patch. It fails with ErrConflict when
// the user already has preferences.
func (s *PreferencesService) Create(ctx context.Context, userID string, patch model.PreferencesPatch) (model.UserPreferences, error) {
	if userID == "" {
		return model.UserPreferences{}, ErrUnauthenticated
	}
	if err := validatePreferences(patch); err != nil {
		return model.UserPreferences{}, err
	}

	created, err := s.repo.Create(ctx, patch.Apply(model.DefaultPreferences(userID)))
	if errors.Is(err, repository.ErrConflict) {
		return model.UserPreferences{}, fmt.Errorf("%w: preferences already exist", ErrConflict)
	}
	if err != nil {
		return model.UserPreferences{}, storeError("create preferences", err)
	}
	return created, nil
}

func (s *PreferencesService) Update(ctx context.Context, userID string, patch model.PreferencesPatch) (model.UserPreferences, error) {
	if err := validatePreferences(patch); err != nil {
		return model.UserPreferences{}, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return model.UserPreferences{}, err
	}

	updated, err := s.repo.Update(ctx, patch.Apply(current))
	if err != nil {
		return model.UserPreferences{}, storeError("update preferences", err)
	}
	return updated, nil
}

func validatePreferences(p model.PreferencesPatch) error {
	if p.Theme != nil && !p.Theme.IsValid() {
		return fmt.Errorf("%w: invalid theme %q", ErrInvalidInput, *p.Theme)
	}
	return nil
}
