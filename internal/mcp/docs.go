package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `pomodoom is a focus timer: one countdown and one session lifecycle.

Core concepts:
- Timer: counts down once per second from a duration. Reaching zero stops it and completes the active session.
- Session: one timed interval (work, short_break or long_break). At most one is active; completed ones go to history, most recent first.
- Settings: durations per kind and a daily goal of work sessions.

Typical workflow:
1) timer_begin(kind) to start an interval.
2) timer_pause / timer_start to interrupt and resume.
3) Let it run out, or call timer_complete(notes) to finish early.
4) session_history and stats_weekly to review.

Docs:
- pomodoom://docs/index
- pomodoom://docs/timer
- pomodoom://docs/sessions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "pomodoom://docs/index",
		Name:        "docs_index",
		Title:       "pomodoom docs index",
		Description: "What the server does and which tool to use when.",
		Content: `# pomodoom: Docs Index

## Tools by area

- Timer: timer_status, timer_begin, timer_start, timer_pause, timer_reset, timer_set, timer_set_duration, timer_complete
- Sessions: session_start, session_complete, session_add, session_active, session_history, session_search
- Settings: settings_get, settings_update, settings_reset
- Onboarding: onboarding_get, onboarding_set, onboarding_reset
- Statistics: stats_weekly

## Read next

- pomodoom://docs/timer for countdown rules
- pomodoom://docs/sessions for history and the replace policy
`,
	},
	{
		URI:         "pomodoom://docs/timer",
		Name:        "docs_timer",
		Title:       "Countdown rules",
		Description: "How start, pause, reset and set interact.",
		Content: `# Countdown rules

- Durations are whole seconds. Negative values become 0.
- timer_start while running does nothing. timer_pause while paused does nothing.
- Every tick removes one second. The tick that reaches 0 stops the timer and completes the active session exactly once.
- timer_set replaces both duration and remaining seconds and keeps the timer running if it was.
- timer_set_duration changes only the duration. Remaining seconds never grow, they only clamp down.
- timer_reset pauses and refills to the duration (or to the given seconds).
- formatted is m:ss; progress is 1 - remaining/duration, between 0 and 1.
`,
	},
	{
		URI:         "pomodoom://docs/sessions",
		Name:        "docs_sessions",
		Title:       "Sessions and history",
		Description: "Active session, completion, import and the replace policy.",
		Content: `# Sessions and history

- Times are epoch milliseconds. duration is the measured wall-clock length in seconds, rounded.
- Completing with notes replaces the notes; omitting notes keeps them.
- Completing when nothing is active is a no-op and reports completed=false.
- session_search runs a full-text query over notes. prefix* terms and "quoted phrases" work; matches come best first.
- session_add imports a finished session at the front of history without sorting and without touching the active session. id, end and duration are required and end must not precede start.
- Starting while a session is active follows the server's replace policy:
  - discard (default): the old session is dropped and returned as replaced
  - reject: SESSION_ACTIVE error
  - complete: the old session is completed into history first
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
