package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/pomodoom/internal/domain/focus"
	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/repository"
	"github.com/ganot/pomodoom/internal/transport"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, session.ErrSessionActive):
		return &APIError{Code: "SESSION_ACTIVE", Message: "a session is already active", RecoveryHint: "Call session_complete first"}
	case errors.Is(err, session.ErrInvalidKind):
		return &APIError{Code: "INVALID_KIND", Message: "unknown interval kind", RecoveryHint: "Use work, short_break or long_break"}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "session id already in history", RecoveryHint: "Use a new id"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "not found"}
	case errors.Is(err, settings.ErrInvalidInput):
		return &APIError{Code: transport.CodeInvalidParams, Message: "invalid settings", RecoveryHint: "Theme must be light, dark or system"}
	case errors.Is(err, focus.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: transport.CodeInvalidParams, Message: err.Error()}
	default:
		return nil
	}
}

func invalidParams(err error) *APIError {
	return &APIError{Code: transport.CodeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
}

func unknownMethod(method string) *APIError {
	return &APIError{Code: transport.CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", method)}
}
