package session

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Options configures a Manager.
type Options struct {
	Policy ReplacePolicy
	Now    func() time.Time
	Logger *slog.Logger
}

// Manager tracks the single active session and the completed history,
// most recent first.
type Manager struct {
	mu      sync.Mutex
	policy  ReplacePolicy
	now     func() time.Time
	logger  *slog.Logger
	active  *Session
	history []Session
}

// NewManager creates a Manager with an empty history.
func NewManager(opts Options) *Manager {
	if opts.Policy == "" {
		opts.Policy = ReplaceDiscard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		policy: opts.Policy,
		now:    opts.Now,
		logger: opts.Logger,
	}
}

// StartRequest partially describes a session. Unset ID and Start are filled
// in; End, Duration, Notes and Kind are taken as given.
type StartRequest struct {
	ID       string
	Kind     Kind
	Start    *int64
	End      *int64
	Duration *int
	Notes    string
}

// StartResult describes the new active session and what it replaced.
type StartResult struct {
	Session   Session
	Replaced  *Session
	Completed *Session
}

// StartSession makes a new session active. An existing active session is
// handled according to the replace policy.
func (m *Manager) StartSession(req StartRequest) (*StartResult, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := &StartResult{}
	if m.active != nil {
		switch m.policy {
		case ReplaceReject:
			return nil, ErrSessionActive
		case ReplaceComplete:
			completed := m.completeLocked(nil)
			result.Completed = &completed
		default:
			replaced := m.active.clone()
			result.Replaced = &replaced
			m.logger.Warn("active session discarded", "session_id", replaced.ID)
		}
	}

	sess := Session{
		ID:       req.ID,
		Kind:     req.Kind,
		End:      req.End,
		Duration: req.Duration,
		Notes:    req.Notes,
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if req.Start != nil {
		sess.Start = *req.Start
	} else {
		sess.Start = m.now().UnixMilli()
	}
	sess = sess.clone()

	m.active = &sess
	result.Session = sess.clone()
	m.logger.Debug("session started", "session_id", sess.ID, "kind", sess.Kind)
	return result, nil
}

// CompleteSession closes the active session into history. A nil notes keeps
// the session's existing notes. It reports false when nothing was active.
func (m *Manager) CompleteSession(notes *string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return Session{}, false
	}
	return m.completeLocked(notes), true
}

// AddSession prepends a fully formed session to history without touching
// the active slot. It is the import path for records created outside the
// start/complete lifecycle; history order is insertion order, so callers
// adding older records will see them ahead of newer ones.
// Records that fail ValidateImport are refused.
func (m *Manager) AddSession(sess Session) error {
	if err := ValidateImport(sess); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prependLocked(sess.clone())
	return nil
}

// Active returns the active session, if any.
func (m *Manager) Active() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Session{}, false
	}
	return m.active.clone(), true
}

// History returns completed sessions, most recent first.
func (m *Manager) History() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Session, len(m.history))
	for i, sess := range m.history {
		out[i] = sess.clone()
	}
	return out
}

// Policy returns the configured replace policy.
func (m *Manager) Policy() ReplacePolicy {
	return m.policy
}

func (m *Manager) completeLocked(notes *string) Session {
	completed := m.active.clone()
	end := m.now().UnixMilli()
	duration := elapsedSeconds(completed.Start, end)
	completed.End = &end
	completed.Duration = &duration
	if notes != nil {
		completed.Notes = *notes
	}

	m.prependLocked(completed)
	m.active = nil
	m.logger.Debug("session completed", "session_id", completed.ID, "duration", duration)
	return completed.clone()
}

func (m *Manager) prependLocked(sess Session) {
	m.history = append([]Session{sess}, m.history...)
}

// elapsedSeconds rounds half up, matching the display clients.
func elapsedSeconds(start, end int64) int {
	return int(math.Floor(float64(end-start)/1000 + 0.5))
}
