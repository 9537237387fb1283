package session

import "errors"

var (
	// ErrSessionActive indicates a start was refused under ReplaceReject.
	ErrSessionActive = errors.New("session already active")
	// ErrInvalidPolicy indicates an unknown replace policy.
	ErrInvalidPolicy = errors.New("invalid replace policy")
	// ErrInvalidKind indicates an unknown session kind.
	ErrInvalidKind = errors.New("invalid session kind")
	// ErrInvalidInput indicates a malformed imported session.
	ErrInvalidInput = errors.New("invalid session input")
)
