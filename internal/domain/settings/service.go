package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/repository"
)

// Service handles settings operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new settings service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the stored settings, or the defaults if none are stored.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return stored.Normalize(), nil
}

// Update applies a patch to the current settings and saves the result.
func (s *Service) Update(ctx context.Context, patch Patch) (Settings, error) {
	if err := ValidatePatch(patch); err != nil {
		return Settings{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	updated := current.Apply(patch)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return Settings{}, fmt.Errorf("saving settings: %w", err)
	}
	s.logger.Info("settings updated", "work_duration", updated.WorkDuration, "daily_goal", updated.DailyGoal)
	return updated, nil
}

// Reset replaces the stored settings with the defaults.
func (s *Service) Reset(ctx context.Context) (Settings, error) {
	defaults := Defaults()
	if err := s.repo.Save(ctx, &defaults); err != nil {
		return Settings{}, fmt.Errorf("saving settings: %w", err)
	}
	s.logger.Info("settings reset")
	return defaults, nil
}

// DurationFor returns the configured length in seconds of an interval kind.
func (s Settings) DurationFor(kind session.Kind) int {
	switch kind {
	case session.KindShortBreak:
		return s.ShortBreak
	case session.KindLongBreak:
		return s.LongBreak
	default:
		return s.WorkDuration
	}
}
