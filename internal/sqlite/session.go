package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/repository"
)

// SessionRepository archives completed sessions in insertion order
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Append stores a session. A duplicate id returns repository.ErrConflict.
func (r *SessionRepository) Append(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return repository.ErrInvalidInput
	}
	kind := sess.Kind
	if kind == "" {
		kind = session.KindWork
	}

	query := `
		INSERT INTO sessions (id, kind, start_ms, end_ms, duration_s, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sess.ID,
		string(kind),
		sess.Start,
		nullInt64(sess.End),
		nullInt(sess.Duration),
		sess.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to append session: %w", err)
	}

	return nil
}

// List returns archived sessions, most recently appended first
func (r *SessionRepository) List(ctx context.Context, opts repository.ListSessionsOptions) ([]session.Session, error) {
	query := `SELECT id, kind, start_ms, end_ms, duration_s, notes FROM sessions`

	var conditions []string
	var args []any
	if opts.SinceMs > 0 {
		conditions = append(conditions, "start_ms >= ?")
		args = append(args, opts.SinceMs)
	}
	if opts.WorkOnly {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(session.KindWork))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []session.Session{}
	for rows.Next() {
		var sess session.Session
		var kind string
		var end sql.NullInt64
		var duration sql.NullInt64
		if err := rows.Scan(&sess.ID, &kind, &sess.Start, &end, &duration, &sess.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.Kind = session.Kind(kind)
		if end.Valid {
			v := end.Int64
			sess.End = &v
		}
		if duration.Valid {
			v := int(duration.Int64)
			sess.Duration = &v
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// Count returns the number of archived sessions
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
