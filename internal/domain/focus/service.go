package focus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/stats"
	"github.com/ganot/pomodoom/internal/domain/timer"
	"github.com/ganot/pomodoom/internal/repository"
)

// Options configures optional collaborators of the Service.
type Options struct {
	Archive Archive
	Search  Searcher
	Logger  *slog.Logger
	Now     func() time.Time
}

// Service drives one timer engine and one session manager together.
// Operations that change timer or session state, and the completion
// listener, run one at a time under mu.
type Service struct {
	engine   *timer.Engine
	sessions *session.Manager
	prefs    SettingsSource
	archive  Archive
	search   Searcher
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	kind        session.Kind
	bound       binding
	unsubscribe func()
}

// binding ties an engine run to the session it is timing. Only that run
// reaching zero completes that session.
type binding struct {
	run       uint64
	sessionID string
}

// Status is the combined timer and session state.
type Status struct {
	Timer  timer.View
	Kind   session.Kind
	Active *session.Session
}

// NewService wires the engine's completion event to the session manager.
func NewService(engine *timer.Engine, sessions *session.Manager, prefs SettingsSource, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Service{
		engine:   engine,
		sessions: sessions,
		prefs:    prefs,
		archive:  opts.Archive,
		search:   opts.Search,
		logger:   opts.Logger,
		now:      opts.Now,
		kind:     session.KindWork,
	}
	s.unsubscribe = engine.Subscribe(s.onTimerEvent)
	return s
}

// Status returns the timer view, the interval kind and the active session.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Begin starts a fresh interval of the given kind using the configured
// duration for that kind.
func (s *Service) Begin(ctx context.Context, kind session.Kind) (Status, error) {
	if kind == "" {
		kind = session.KindWork
	}
	if !kind.Valid() {
		return Status{}, session.ErrInvalidKind
	}

	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("loading settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(ctx)

	result, err := s.sessions.StartSession(session.StartRequest{Kind: kind})
	if err != nil {
		return Status{}, err
	}
	s.archiveCompleted(ctx, result.Completed)

	s.kind = kind
	s.engine.ResetTo(prefs.DurationFor(kind))
	s.engine.Start()
	s.bindLocked(result.Session.ID)
	s.logger.Info("interval started", "kind", kind, "session_id", result.Session.ID)
	return s.statusLocked(), nil
}

// Start resumes the countdown, opening a session for the current kind if
// none is active. A finished countdown is refilled first.
func (s *Service) Start(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(ctx)

	active, ok := s.sessions.Active()
	if !ok {
		result, err := s.sessions.StartSession(session.StartRequest{Kind: s.kind})
		if err != nil {
			return Status{}, err
		}
		active = result.Session
	}
	if state := s.engine.State(); !state.IsRunning && state.SecondsLeft == 0 {
		s.engine.Reset()
	}
	s.engine.Start()
	s.bindLocked(active.ID)
	return s.statusLocked(), nil
}

// Pause stops the countdown.
func (s *Service) Pause() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Pause()
	return s.statusLocked()
}

// Reset pauses and refills the countdown, optionally with a new duration.
func (s *Service) Reset(to *int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to != nil {
		s.engine.ResetTo(*to)
	} else {
		s.engine.Reset()
	}
	return s.statusLocked()
}

// Set replaces the duration and remaining seconds without changing the run state.
func (s *Service) Set(seconds int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Set(seconds)
	return s.statusLocked()
}

// SetDuration replaces only the target duration.
func (s *Service) SetDuration(seconds int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetDuration(seconds)
	return s.statusLocked()
}

// Complete pauses the countdown and completes the active session. It
// returns nil when no session was active.
func (s *Service) Complete(ctx context.Context, notes *string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Pause()
	s.bound = binding{}
	return s.completeLocked(ctx, notes)
}

// Reseed refills an idle engine from the current settings. It does nothing
// while the countdown runs or a session is active.
func (s *Service) Reseed(ctx context.Context) error {
	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(ctx)

	if s.engine.State().IsRunning {
		return nil
	}
	if _, ok := s.sessions.Active(); ok {
		return nil
	}
	s.engine.ResetTo(prefs.DurationFor(s.kind))
	return nil
}

// StartSession starts a session without touching the engine. A running
// countdown then times the new session.
func (s *Service) StartSession(ctx context.Context, req session.StartRequest) (*session.StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(ctx)

	result, err := s.sessions.StartSession(req)
	if err != nil {
		return nil, err
	}
	s.archiveCompleted(ctx, result.Completed)
	if s.engine.State().IsRunning && !result.Session.Completed() {
		s.bindLocked(result.Session.ID)
	}
	return result, nil
}

// CompleteSession completes the active session and archives it. It returns
// nil when no session was active.
func (s *Service) CompleteSession(ctx context.Context, notes *string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(ctx)
	return s.completeLocked(ctx, notes)
}

// AddSession imports a finished session into history and the archive.
// Malformed records are refused before anything is stored.
func (s *Service) AddSession(ctx context.Context, sess session.Session) error {
	if err := session.ValidateImport(sess); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.archiveSession(ctx, sess); err != nil {
		return err
	}
	return s.sessions.AddSession(sess)
}

// History returns up to limit completed sessions, most recent first, and
// the total number available. A limit of zero returns everything.
func (s *Service) History(ctx context.Context, limit int) ([]session.Session, int, error) {
	if limit < 0 {
		return nil, 0, ErrInvalidInput
	}
	if s.archive == nil {
		history := s.sessions.History()
		total := len(history)
		if limit > 0 && limit < total {
			history = history[:limit]
		}
		return history, total, nil
	}

	history, err := s.archive.List(ctx, repository.ListSessionsOptions{Limit: limit})
	if err != nil {
		return nil, 0, fmt.Errorf("listing sessions: %w", err)
	}
	total, err := s.archive.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("counting sessions: %w", err)
	}
	return history, total, nil
}

// Search finds completed sessions whose notes match query, at most limit
// of them when limit is positive. Without a Searcher it falls back to a
// case-insensitive substring match over the in-memory history.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]session.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit < 0 {
		return nil, ErrInvalidInput
	}
	if s.search != nil {
		matches, err := s.search.Search(ctx, query, repository.SearchOptions{Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("searching sessions: %w", err)
		}
		return matches, nil
	}

	needle := strings.ToLower(query)
	matches := []session.Match{}
	for _, sess := range s.sessions.History() {
		if !strings.Contains(strings.ToLower(sess.Notes), needle) {
			continue
		}
		matches = append(matches, session.Match{Session: sess, Snippet: sess.Notes})
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// Stats summarizes the current week against the daily goal.
func (s *Service) Stats(ctx context.Context) (stats.WeekSummary, error) {
	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		return stats.WeekSummary{}, fmt.Errorf("loading settings: %w", err)
	}

	history := s.sessions.History()
	if s.archive != nil {
		history, err = s.archive.List(ctx, repository.ListSessionsOptions{WorkOnly: true})
		if err != nil {
			return stats.WeekSummary{}, fmt.Errorf("listing sessions: %w", err)
		}
	}
	return stats.Weekly(history, s.now(), prefs.DailyGoal), nil
}

// Close detaches from the engine and releases its clock subscription.
func (s *Service) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.engine.Close()
}

func (s *Service) onTimerEvent(event timer.Event) {
	if event.Type != timer.EventComplete {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleLocked(context.Background())
}

// settleLocked completes the bound session once its run has counted down
// to zero. Every state-changing operation settles first, so a request that
// arrives before the completion listener cannot overwrite the finished
// session.
func (s *Service) settleLocked(ctx context.Context) {
	bound := s.bound
	if bound.run == 0 || !s.engine.Finished(bound.run) {
		return
	}
	s.bound = binding{}

	active, ok := s.sessions.Active()
	if !ok || active.ID != bound.sessionID {
		return
	}
	completed, err := s.completeLocked(ctx, nil)
	if err != nil {
		s.logger.Error("archiving completed session", "session_id", bound.sessionID, "error", err)
		return
	}
	s.logger.Info("interval completed", "kind", completed.Kind, "session_id", completed.ID)
}

func (s *Service) bindLocked(sessionID string) {
	s.bound = binding{run: s.engine.Run(), sessionID: sessionID}
}

func (s *Service) completeLocked(ctx context.Context, notes *string) (*session.Session, error) {
	completed, ok := s.sessions.CompleteSession(notes)
	if !ok {
		return nil, nil
	}
	if err := s.archiveSession(ctx, completed); err != nil {
		return &completed, err
	}
	return &completed, nil
}

func (s *Service) statusLocked() Status {
	status := Status{
		Timer: s.engine.View(),
		Kind:  s.kind,
	}
	if active, ok := s.sessions.Active(); ok {
		status.Active = &active
	}
	return status
}

func (s *Service) archiveCompleted(ctx context.Context, completed *session.Session) {
	if completed == nil {
		return
	}
	if err := s.archiveSession(ctx, *completed); err != nil {
		s.logger.Error("archiving replaced session", "session_id", completed.ID, "error", err)
	}
}

func (s *Service) archiveSession(ctx context.Context, sess session.Session) error {
	if s.archive == nil {
		return nil
	}
	if err := s.archive.Append(ctx, &sess); err != nil {
		return fmt.Errorf("archiving session: %w", err)
	}
	return nil
}
