package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ganot/pomodoom/internal/repository"
)

// FlagKey is the storage key of the onboarding-completed flag.
const FlagKey = "pomodoom_onboarding_completed"

// Service reads and writes the onboarding flag.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new onboarding service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Completed reports whether onboarding finished. Read failures are logged
// and reported as not completed.
func (s *Service) Completed(ctx context.Context) bool {
	completed, err := s.repo.Get(ctx, FlagKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("reading onboarding flag", "error", err)
		}
		return false
	}
	return completed
}

// SetCompleted persists the flag.
func (s *Service) SetCompleted(ctx context.Context, completed bool) error {
	if err := s.repo.Set(ctx, FlagKey, completed); err != nil {
		s.logger.Error("writing onboarding flag", "error", err)
		return fmt.Errorf("writing onboarding flag: %w", err)
	}
	return nil
}

// Reset clears the flag.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, FlagKey); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("clearing onboarding flag", "error", err)
		return fmt.Errorf("clearing onboarding flag: %w", err)
	}
	return nil
}
