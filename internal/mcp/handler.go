package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/ganot/pomodoom/internal/domain/focus"
	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/domain/stats"
)

// FocusService defines timer and session operations needed by MCP.
type FocusService interface {
	Status() focus.Status
	Begin(ctx context.Context, kind session.Kind) (focus.Status, error)
	Start(ctx context.Context) (focus.Status, error)
	Pause() focus.Status
	Reset(to *int) focus.Status
	Set(seconds int) focus.Status
	SetDuration(seconds int) focus.Status
	Complete(ctx context.Context, notes *string) (*session.Session, error)
	Reseed(ctx context.Context) error
	StartSession(ctx context.Context, req session.StartRequest) (*session.StartResult, error)
	CompleteSession(ctx context.Context, notes *string) (*session.Session, error)
	AddSession(ctx context.Context, sess session.Session) error
	History(ctx context.Context, limit int) ([]session.Session, int, error)
	Search(ctx context.Context, query string, limit int) ([]session.Match, error)
	Stats(ctx context.Context) (stats.WeekSummary, error)
}

// SettingsService defines settings operations needed by MCP.
type SettingsService interface {
	Get(ctx context.Context) (settings.Settings, error)
	Update(ctx context.Context, patch settings.Patch) (settings.Settings, error)
	Reset(ctx context.Context) (settings.Settings, error)
}

// OnboardingService defines onboarding flag operations needed by MCP.
type OnboardingService interface {
	Completed(ctx context.Context) bool
	SetCompleted(ctx context.Context, completed bool) error
	Reset(ctx context.Context) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Focus      FocusService
	Settings   SettingsService
	Onboarding OnboardingService
}

// Handler dispatches commands to domain services. Both the JSON-RPC
// endpoint and the MCP tools go through Handle.
type Handler struct {
	focus      FocusService
	settings   SettingsService
	onboarding OnboardingService
	logger     *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		focus:      services.Focus,
		settings:   services.Settings,
		onboarding: services.Onboarding,
		logger:     logger,
	}
}

// Handle dispatches requests to domain services.
func (h *Handler) Handle(ctx context.Context, clientID, method string, params json.RawMessage) (any, error) {
	h.logger.Debug("dispatch", "method", method, "client_id", clientID)

	switch method {
	case "timer_status":
		return timerStatusResponse(h.focus.Status()), nil
	case "timer_begin":
		var req TimerBeginParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		status, err := h.focus.Begin(ctx, session.Kind(req.Kind))
		if err != nil {
			return nil, mapError(err)
		}
		return timerStatusResponse(status), nil
	case "timer_start":
		status, err := h.focus.Start(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return timerStatusResponse(status), nil
	case "timer_pause":
		return timerStatusResponse(h.focus.Pause()), nil
	case "timer_reset":
		var req TimerResetParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return timerStatusResponse(h.focus.Reset(req.Seconds)), nil
	case "timer_set":
		var req TimerSecondsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return timerStatusResponse(h.focus.Set(req.Seconds)), nil
	case "timer_set_duration":
		var req TimerSecondsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return timerStatusResponse(h.focus.SetDuration(req.Seconds)), nil
	case "timer_complete":
		var req CompleteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		completed, err := h.focus.Complete(ctx, req.Notes)
		if err != nil {
			return nil, mapError(err)
		}
		return TimerCompleteResponse{
			Completed: completed != nil,
			Session:   completed,
			Timer:     timerStatusResponse(h.focus.Status()),
		}, nil
	case "session_start":
		var req SessionStartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.focus.StartSession(ctx, session.StartRequest{
			ID:       req.ID,
			Kind:     session.Kind(req.Kind),
			Start:    req.Start,
			End:      req.End,
			Duration: req.Duration,
			Notes:    req.Notes,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return SessionStartResponse{
			Session:   result.Session,
			Replaced:  result.Replaced,
			Completed: result.Completed,
		}, nil
	case "session_complete":
		var req CompleteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		completed, err := h.focus.CompleteSession(ctx, req.Notes)
		if err != nil {
			return nil, mapError(err)
		}
		return SessionCompleteResponse{Completed: completed != nil, Session: completed}, nil
	case "session_add":
		var req SessionAddParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess := session.Session{
			ID:       req.ID,
			Kind:     session.Kind(req.Kind),
			Start:    req.Start,
			End:      req.End,
			Duration: req.Duration,
			Notes:    req.Notes,
		}
		if err := h.focus.AddSession(ctx, sess); err != nil {
			return nil, mapError(err)
		}
		return sess, nil
	case "session_active":
		status := h.focus.Status()
		return SessionActiveResponse{Active: status.Active != nil, Session: status.Active}, nil
	case "session_history":
		var req SessionHistoryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sessions, total, err := h.focus.History(ctx, req.Limit)
		if err != nil {
			return nil, mapError(err)
		}
		return SessionHistoryResponse{Sessions: sessions, Total: total}, nil
	case "session_search":
		var req SessionSearchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		matches, err := h.focus.Search(ctx, req.Query, req.Limit)
		if err != nil {
			return nil, mapError(err)
		}
		return SessionSearchResponse{Matches: matches}, nil
	case "settings_get":
		return h.settings.Get(ctx)
	case "settings_update":
		var req SettingsUpdateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		updated, err := h.settings.Update(ctx, settingsPatch(req))
		if err != nil {
			return nil, mapError(err)
		}
		h.reseed(ctx)
		return updated, nil
	case "settings_reset":
		defaults, err := h.settings.Reset(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		h.reseed(ctx)
		return defaults, nil
	case "onboarding_get":
		return OnboardingResponse{Completed: h.onboarding.Completed(ctx)}, nil
	case "onboarding_set":
		var req OnboardingSetParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.onboarding.SetCompleted(ctx, req.Completed); err != nil {
			return nil, mapError(err)
		}
		return OnboardingResponse{Completed: req.Completed}, nil
	case "onboarding_reset":
		if err := h.onboarding.Reset(ctx); err != nil {
			return nil, mapError(err)
		}
		return OKResponse{OK: true}, nil
	case "stats_weekly":
		summary, err := h.focus.Stats(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return summary, nil
	default:
		return nil, unknownMethod(method)
	}
}

// reseed refreshes an idle timer after a settings change. Failures only
// leave the old duration in place.
func (h *Handler) reseed(ctx context.Context) {
	if err := h.focus.Reseed(ctx); err != nil {
		h.logger.Warn("reseeding timer after settings change", "error", err)
	}
}

func settingsPatch(req SettingsUpdateParams) settings.Patch {
	patch := settings.Patch{
		WorkDuration:     req.WorkDuration,
		ShortBreak:       req.ShortBreak,
		LongBreak:        req.LongBreak,
		DailyGoal:        req.DailyGoal,
		SoundEnabled:     req.SoundEnabled,
		VibrationEnabled: req.VibrationEnabled,
	}
	if req.Theme != nil {
		theme := settings.Theme(*req.Theme)
		patch.Theme = &theme
	}
	return patch
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
