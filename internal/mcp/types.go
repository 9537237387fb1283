package mcp

import (
	"github.com/ganot/pomodoom/internal/domain/focus"
	"github.com/ganot/pomodoom/internal/domain/session"
)

type EmptyParams struct{}

type TimerBeginParams struct {
	Kind string `json:"kind,omitempty" jsonschema:"interval kind: work, short_break or long_break (default work)"`
}

type TimerResetParams struct {
	Seconds *int `json:"seconds,omitempty" jsonschema:"new duration in seconds; omit to refill the current duration"`
}

type TimerSecondsParams struct {
	Seconds int `json:"seconds" jsonschema:"duration in seconds; negative values clamp to zero"`
}

type CompleteParams struct {
	Notes *string `json:"notes,omitempty" jsonschema:"notes to store; omit to keep existing notes"`
}

type SessionStartParams struct {
	ID       string `json:"id,omitempty" jsonschema:"session id; generated when omitted"`
	Kind     string `json:"kind,omitempty" jsonschema:"interval kind"`
	Start    *int64 `json:"start,omitempty" jsonschema:"start time in epoch milliseconds; now when omitted"`
	End      *int64 `json:"end,omitempty" jsonschema:"end time in epoch milliseconds"`
	Duration *int   `json:"duration,omitempty" jsonschema:"measured length in seconds"`
	Notes    string `json:"notes,omitempty"`
}

type SessionAddParams struct {
	ID       string `json:"id" jsonschema:"session id, unique in history"`
	Kind     string `json:"kind,omitempty" jsonschema:"interval kind"`
	Start    int64  `json:"start" jsonschema:"start time in epoch milliseconds"`
	End      *int64 `json:"end,omitempty" jsonschema:"end time in epoch milliseconds"`
	Duration *int   `json:"duration,omitempty" jsonschema:"measured length in seconds"`
	Notes    string `json:"notes,omitempty"`
}

type SessionHistoryParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of sessions; 0 returns all"`
}

type SessionSearchParams struct {
	Query string `json:"query" jsonschema:"full-text query over session notes; supports prefix* and quoted phrases"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of matches; 0 returns all"`
}

type SettingsUpdateParams struct {
	WorkDuration     *int    `json:"work_duration,omitempty" jsonschema:"work interval in seconds"`
	ShortBreak       *int    `json:"short_break,omitempty" jsonschema:"short break in seconds"`
	LongBreak        *int    `json:"long_break,omitempty" jsonschema:"long break in seconds"`
	DailyGoal        *int    `json:"daily_goal,omitempty" jsonschema:"work sessions per day"`
	Theme            *string `json:"theme,omitempty" jsonschema:"light, dark or system"`
	SoundEnabled     *bool   `json:"sound_enabled,omitempty"`
	VibrationEnabled *bool   `json:"vibration_enabled,omitempty"`
}

type OnboardingSetParams struct {
	Completed bool `json:"completed"`
}

type TimerStatusResponse struct {
	Duration      int              `json:"duration"`
	SecondsLeft   int              `json:"seconds_left"`
	IsRunning     bool             `json:"is_running"`
	Formatted     string           `json:"formatted"`
	Progress      float64          `json:"progress"`
	Kind          session.Kind     `json:"kind"`
	ActiveSession *session.Session `json:"active_session,omitempty"`
}

type TimerCompleteResponse struct {
	Completed bool                `json:"completed"`
	Session   *session.Session    `json:"session,omitempty"`
	Timer     TimerStatusResponse `json:"timer"`
}

type SessionStartResponse struct {
	Session   session.Session  `json:"session"`
	Replaced  *session.Session `json:"replaced,omitempty"`
	Completed *session.Session `json:"completed,omitempty"`
}

type SessionCompleteResponse struct {
	Completed bool             `json:"completed"`
	Session   *session.Session `json:"session,omitempty"`
}

type SessionActiveResponse struct {
	Active  bool             `json:"active"`
	Session *session.Session `json:"session,omitempty"`
}

type SessionHistoryResponse struct {
	Sessions []session.Session `json:"sessions"`
	Total    int               `json:"total"`
}

type SessionSearchResponse struct {
	Matches []session.Match `json:"matches"`
}

type OnboardingResponse struct {
	Completed bool `json:"completed"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func timerStatusResponse(status focus.Status) TimerStatusResponse {
	return TimerStatusResponse{
		Duration:      status.Timer.Duration,
		SecondsLeft:   status.Timer.SecondsLeft,
		IsRunning:     status.Timer.IsRunning,
		Formatted:     status.Timer.Formatted,
		Progress:      status.Timer.Progress,
		Kind:          status.Kind,
		ActiveSession: status.Active,
	}
}
