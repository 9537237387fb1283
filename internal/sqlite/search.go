package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/repository"
)

// SearchRepository runs full-text queries over archived session notes
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search returns sessions whose notes match an FTS5 query, best match first.
// A blank or malformed query returns repository.ErrInvalidInput.
func (r *SearchRepository) Search(ctx context.Context, query string, opts repository.SearchOptions) ([]session.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, repository.ErrInvalidInput
	}

	baseQuery := `
		SELECT
			s.id, s.kind, s.start_ms, s.end_ms, s.duration_s, s.notes,
			snippet(sessions_fts, 0, '[', ']', '...', 8) as snippet
		FROM sessions_fts
		JOIN sessions s ON s.seq = sessions_fts.rowid
		WHERE sessions_fts MATCH ?
	`
	args := []any{query}

	if opts.WorkOnly {
		baseQuery += " AND s.kind = ?"
		args = append(args, string(session.KindWork))
	}

	baseQuery += " ORDER BY bm25(sessions_fts), s.seq DESC"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	} else {
		baseQuery += " LIMIT -1"
	}
	if opts.Offset > 0 {
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		if isQuerySyntaxError(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to search sessions: %w", err)
	}
	defer rows.Close()

	results := []session.Match{}
	for rows.Next() {
		var match session.Match
		var kind string
		var end sql.NullInt64
		var duration sql.NullInt64
		err := rows.Scan(
			&match.Session.ID,
			&kind,
			&match.Session.Start,
			&end,
			&duration,
			&match.Session.Notes,
			&match.Snippet,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		match.Session.Kind = session.Kind(kind)
		if end.Valid {
			v := end.Int64
			match.Session.End = &v
		}
		if duration.Valid {
			v := int(duration.Int64)
			match.Session.Duration = &v
		}
		results = append(results, match)
	}

	if err := rows.Err(); err != nil {
		if isQuerySyntaxError(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}
