package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/ganot/pomodoom/internal/repository"
)

// FlagRepository stores boolean flags as "true"/"false" text
type FlagRepository struct {
	db *DB
}

// NewFlagRepository creates a new FlagRepository
func NewFlagRepository(db *DB) *FlagRepository {
	return &FlagRepository{db: db}
}

// Get reads a flag. Missing keys return repository.ErrNotFound.
func (r *FlagRepository) Get(ctx context.Context, key string) (bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM flags WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, repository.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get flag: %w", err)
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse flag %s: %w", key, err)
	}
	return parsed, nil
}

// Set writes a flag, replacing any previous value
func (r *FlagRepository) Set(ctx context.Context, key string, value bool) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flags (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, strconv.FormatBool(value))
	if err != nil {
		return fmt.Errorf("failed to set flag: %w", err)
	}
	return nil
}

// Delete removes a flag. Missing keys return repository.ErrNotFound.
func (r *FlagRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM flags WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
