package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganot/pomodoom/internal/clock"
	"github.com/ganot/pomodoom/internal/domain/focus"
	"github.com/ganot/pomodoom/internal/domain/onboarding"
	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/domain/timer"
	"github.com/ganot/pomodoom/internal/mcp"
	"github.com/ganot/pomodoom/internal/sqlite"
	"github.com/ganot/pomodoom/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full HTTP stack against an in-memory database and a
// manually driven clock.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Clock  *clock.Manual
	Focus  *focus.Service
	Token  string
}

// Options tweaks the server under test.
type Options struct {
	Token  string
	Policy session.ReplacePolicy
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	settingsSvc := settings.NewService(sqlite.NewSettingsRepository(db), nil)
	onboardingSvc := onboarding.NewService(sqlite.NewFlagRepository(db), nil)

	source := clock.NewManual()
	engine := timer.New(source, settings.Defaults().WorkDuration, timer.Config{})
	manager := session.NewManager(session.Options{Policy: opts.Policy})
	focusSvc := focus.NewService(engine, manager, settingsSvc, focus.Options{
		Archive: sqlite.NewSessionRepository(db),
		Search:  sqlite.NewSearchRepository(db),
	})

	handler := mcp.NewHandler(mcp.Services{
		Focus:      focusSvc,
		Settings:   settingsSvc,
		Onboarding: onboardingSvc,
	}, nil)
	mcpServer := mcp.NewServer(mcp.Config{Handler: handler})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	routerOpts := transport.Options{MCP: mcpHandler}
	if opts.Token != "" {
		routerOpts.AuthMiddleware = transport.AuthMiddleware(transport.StaticToken(opts.Token))
	}
	server := httptest.NewServer(transport.NewServer(handler, routerOpts))

	ts := &TestServer{
		Server: server,
		DB:     db,
		Clock:  source,
		Focus:  focusSvc,
		Token:  opts.Token,
	}

	t.Cleanup(func() {
		server.Close()
		focusSvc.Close()
		_ = db.Close()
	})

	return ts
}
