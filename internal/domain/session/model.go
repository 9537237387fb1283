package session

// Kind labels which interval a session covered.
type Kind string

const (
	KindWork       Kind = "work"
	KindShortBreak Kind = "short_break"
	KindLongBreak  Kind = "long_break"
)

// Valid reports whether k is a known kind. The empty kind counts as work.
func (k Kind) Valid() bool {
	switch k {
	case "", KindWork, KindShortBreak, KindLongBreak:
		return true
	default:
		return false
	}
}

// IsWork reports whether the session counts toward focus statistics.
func (k Kind) IsWork() bool {
	return k == "" || k == KindWork
}

// Session is one timed interval. Start and End are epoch milliseconds;
// Duration is the measured wall-clock length in seconds.
type Session struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind,omitempty"`
	Start    int64  `json:"start"`
	End      *int64 `json:"end,omitempty"`
	Duration *int   `json:"duration,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Completed reports whether the session has an end timestamp.
func (s Session) Completed() bool {
	return s.End != nil
}

// ValidateImport checks that an imported session is fully formed: it has an
// id and a known kind, and it is completed with a non-negative duration.
func ValidateImport(s Session) error {
	if s.ID == "" || s.End == nil || s.Duration == nil {
		return ErrInvalidInput
	}
	if *s.End < s.Start || *s.Duration < 0 {
		return ErrInvalidInput
	}
	if !s.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (s Session) clone() Session {
	out := s
	if s.End != nil {
		end := *s.End
		out.End = &end
	}
	if s.Duration != nil {
		duration := *s.Duration
		out.Duration = &duration
	}
	return out
}

// ReplacePolicy decides what StartSession does with an already active session.
type ReplacePolicy string

const (
	// ReplaceDiscard drops the previous active session without a history entry.
	ReplaceDiscard ReplacePolicy = "discard"
	// ReplaceReject refuses to start while a session is active.
	ReplaceReject ReplacePolicy = "reject"
	// ReplaceComplete completes the previous session into history first.
	ReplaceComplete ReplacePolicy = "complete"
)

// ParseReplacePolicy maps a config value to a policy, defaulting to discard.
func ParseReplacePolicy(value string) (ReplacePolicy, error) {
	switch ReplacePolicy(value) {
	case "", ReplaceDiscard:
		return ReplaceDiscard, nil
	case ReplaceReject:
		return ReplaceReject, nil
	case ReplaceComplete:
		return ReplaceComplete, nil
	default:
		return "", ErrInvalidPolicy
	}
}

// Match is a session found by a notes search. Snippet highlights the
// matched terms in brackets.
type Match struct {
	Session Session `json:"session"`
	Snippet string  `json:"snippet"`
}
