package focus

import (
	"context"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/repository"
)

// SettingsSource provides the current user settings.
type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Archive stores completed sessions outside the process.
type Archive interface {
	Append(ctx context.Context, sess *session.Session) error
	List(ctx context.Context, opts repository.ListSessionsOptions) ([]session.Session, error)
	Count(ctx context.Context) (int, error)
}

// Searcher runs full-text queries over archived session notes.
type Searcher interface {
	Search(ctx context.Context, query string, opts repository.SearchOptions) ([]session.Match, error)
}
