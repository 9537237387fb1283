package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every handler method as a tool of the same name.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Timer
	addTool[EmptyParams](server, h, "timer_status", "Get the countdown state with formatted time, progress, interval kind and active session")
	addTool[TimerBeginParams](server, h, "timer_begin", "Start a fresh interval of the given kind using the configured duration and open a session for it")
	addTool[EmptyParams](server, h, "timer_start", "Resume the countdown, opening a session for the current kind if none is active")
	addTool[EmptyParams](server, h, "timer_pause", "Pause the countdown, keeping the remaining seconds")
	addTool[TimerResetParams](server, h, "timer_reset", "Pause and refill the countdown, optionally with a new duration")
	addTool[TimerSecondsParams](server, h, "timer_set", "Replace duration and remaining seconds without changing whether the timer runs")
	addTool[TimerSecondsParams](server, h, "timer_set_duration", "Replace only the target duration; remaining seconds are clamped down")
	addTool[CompleteParams](server, h, "timer_complete", "Pause the countdown and complete the active session")

	// Sessions
	addTool[SessionStartParams](server, h, "session_start", "Start a session without touching the timer")
	addTool[CompleteParams](server, h, "session_complete", "Complete the active session into history")
	addTool[SessionAddParams](server, h, "session_add", "Import a finished session (id, end and duration required) into history as-is")
	addTool[EmptyParams](server, h, "session_active", "Get the active session, if any")
	addTool[SessionHistoryParams](server, h, "session_history", "List completed sessions, most recent first")
	addTool[SessionSearchParams](server, h, "session_search", "Full-text search over the notes of completed sessions, best match first")

	// Settings and onboarding
	addTool[EmptyParams](server, h, "settings_get", "Get interval durations, daily goal and preferences")
	addTool[SettingsUpdateParams](server, h, "settings_update", "Update the given settings fields; an idle timer picks up the new duration")
	addTool[EmptyParams](server, h, "settings_reset", "Restore default settings")
	addTool[EmptyParams](server, h, "onboarding_get", "Report whether onboarding was completed")
	addTool[OnboardingSetParams](server, h, "onboarding_set", "Mark onboarding as completed or not")
	addTool[EmptyParams](server, h, "onboarding_reset", "Clear the onboarding flag")

	// Statistics
	addTool[EmptyParams](server, h, "stats_weekly", "Summarize completed work sessions for the current week against the daily goal")
}

func addTool[In any](server *sdkmcp.Server, h *Handler, name, description string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		params, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding params: %w", err)
		}
		result, err := h.Handle(ctx, getClientID(ctx), name, params)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(result)
	})
}

func toolResult(result any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	text := err.Error()
	if apiErr := MapError(err); apiErr != nil {
		if data, marshalErr := json.Marshal(apiErr); marshalErr == nil {
			text = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}
}
