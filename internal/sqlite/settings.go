package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/repository"
)

// SettingsRepository implements settings.Repository for SQLite
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Load retrieves the stored settings row
func (r *SettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	query := `
		SELECT
			work_duration, short_break, long_break, daily_goal,
			theme, sound_enabled, vibration_enabled
		FROM settings
		WHERE id = 1
	`

	var s settings.Settings
	var theme string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.WorkDuration,
		&s.ShortBreak,
		&s.LongBreak,
		&s.DailyGoal,
		&theme,
		&s.SoundEnabled,
		&s.VibrationEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	s.Theme = settings.Theme(theme)

	return &s, nil
}

// Save inserts or replaces the settings row
func (r *SettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	query := `
		INSERT INTO settings (
			id, work_duration, short_break, long_break, daily_goal,
			theme, sound_enabled, vibration_enabled, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			work_duration = excluded.work_duration,
			short_break = excluded.short_break,
			long_break = excluded.long_break,
			daily_goal = excluded.daily_goal,
			theme = excluded.theme,
			sound_enabled = excluded.sound_enabled,
			vibration_enabled = excluded.vibration_enabled,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.WorkDuration,
		s.ShortBreak,
		s.LongBreak,
		s.DailyGoal,
		string(s.Theme),
		s.SoundEnabled,
		s.VibrationEnabled,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
