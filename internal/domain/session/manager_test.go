package session_test

import (
	"testing"
	"time"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	ms int64
}

func (c *fakeClock) now() time.Time {
	return time.UnixMilli(c.ms)
}

func newManager(policy session.ReplacePolicy) (*session.Manager, *fakeClock) {
	clk := &fakeClock{ms: 1000}
	return session.NewManager(session.Options{Policy: policy, Now: clk.now}), clk
}

func strPtr(s string) *string { return &s }

func finished(id string, start int64, seconds int) session.Session {
	end := start + int64(seconds)*1000
	return session.Session{ID: id, Start: start, End: &end, Duration: &seconds}
}

func TestManager_StartComplete(t *testing.T) {
	mgr, clk := newManager("")
	clk.ms = 1000 * 1000

	result, err := mgr.StartSession(session.StartRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, result.Session.ID)
	require.Equal(t, int64(1_000_000), result.Session.Start)
	require.Nil(t, result.Replaced)

	clk.ms = 1030 * 1000
	completed, ok := mgr.CompleteSession(strPtr("done"))
	require.True(t, ok)
	require.NotNil(t, completed.Duration)
	require.Equal(t, 30, *completed.Duration)

	_, active := mgr.Active()
	require.False(t, active)

	history := mgr.History()
	require.Len(t, history, 1)
	require.Equal(t, "done", history[0].Notes)
	require.Equal(t, int64(1_030_000), *history[0].End)
}

func TestManager_DurationIsWallClock(t *testing.T) {
	mgr, clk := newManager("")
	_, err := mgr.StartSession(session.StartRequest{})
	require.NoError(t, err)

	clk.ms = 1000 + 400
	completed, ok := mgr.CompleteSession(nil)
	require.True(t, ok)
	require.Equal(t, 0, *completed.Duration)
}

func TestManager_DurationRoundsHalfUp(t *testing.T) {
	mgr, clk := newManager("")
	_, err := mgr.StartSession(session.StartRequest{})
	require.NoError(t, err)

	clk.ms = 1000 + 2500
	completed, _ := mgr.CompleteSession(nil)
	require.Equal(t, 3, *completed.Duration)
}

func TestManager_CompleteKeepsExistingNotes(t *testing.T) {
	mgr, _ := newManager("")
	_, err := mgr.StartSession(session.StartRequest{Notes: "draft"})
	require.NoError(t, err)

	completed, ok := mgr.CompleteSession(nil)
	require.True(t, ok)
	require.Equal(t, "draft", completed.Notes)
}

func TestManager_CompleteWithoutActiveIsNoop(t *testing.T) {
	mgr, _ := newManager("")

	_, ok := mgr.CompleteSession(strPtr("x"))
	require.False(t, ok)
	require.Empty(t, mgr.History())
}

func TestManager_StartUsesPayload(t *testing.T) {
	mgr, _ := newManager("")
	start := int64(42)
	end := int64(5042)
	duration := 5

	result, err := mgr.StartSession(session.StartRequest{
		ID:       "imported",
		Kind:     session.KindShortBreak,
		Start:    &start,
		End:      &end,
		Duration: &duration,
	})
	require.NoError(t, err)
	require.Equal(t, "imported", result.Session.ID)
	require.Equal(t, int64(42), result.Session.Start)
	require.True(t, result.Session.Completed())
	require.Equal(t, session.KindShortBreak, result.Session.Kind)
}

func TestManager_StartRejectsUnknownKind(t *testing.T) {
	mgr, _ := newManager("")
	_, err := mgr.StartSession(session.StartRequest{Kind: "nap"})
	require.ErrorIs(t, err, session.ErrInvalidKind)
}

func TestManager_DoubleStartDiscardsFirst(t *testing.T) {
	mgr, _ := newManager(session.ReplaceDiscard)

	first, err := mgr.StartSession(session.StartRequest{ID: "first"})
	require.NoError(t, err)
	second, err := mgr.StartSession(session.StartRequest{ID: "second"})
	require.NoError(t, err)

	require.NotNil(t, second.Replaced)
	require.Equal(t, first.Session.ID, second.Replaced.ID)

	active, ok := mgr.Active()
	require.True(t, ok)
	require.Equal(t, "second", active.ID)
	require.Empty(t, mgr.History())
}

func TestManager_DoubleStartReject(t *testing.T) {
	mgr, _ := newManager(session.ReplaceReject)

	_, err := mgr.StartSession(session.StartRequest{ID: "first"})
	require.NoError(t, err)
	_, err = mgr.StartSession(session.StartRequest{ID: "second"})
	require.ErrorIs(t, err, session.ErrSessionActive)

	active, ok := mgr.Active()
	require.True(t, ok)
	require.Equal(t, "first", active.ID)
}

func TestManager_DoubleStartComplete(t *testing.T) {
	mgr, clk := newManager(session.ReplaceComplete)

	_, err := mgr.StartSession(session.StartRequest{ID: "first"})
	require.NoError(t, err)
	clk.ms = 61_000
	result, err := mgr.StartSession(session.StartRequest{ID: "second"})
	require.NoError(t, err)
	require.NotNil(t, result.Completed)
	require.Equal(t, 60, *result.Completed.Duration)

	history := mgr.History()
	require.Len(t, history, 1)
	require.Equal(t, "first", history[0].ID)
	active, _ := mgr.Active()
	require.Equal(t, "second", active.ID)
}

func TestManager_AddSessionPrepends(t *testing.T) {
	mgr, _ := newManager("")
	_, err := mgr.StartSession(session.StartRequest{ID: "live"})
	require.NoError(t, err)

	require.NoError(t, mgr.AddSession(finished("newer", 5000, 60)))
	require.NoError(t, mgr.AddSession(finished("older", 1, 60)))

	history := mgr.History()
	require.Len(t, history, 2)
	require.Equal(t, "older", history[0].ID)
	require.Equal(t, "newer", history[1].ID)

	active, ok := mgr.Active()
	require.True(t, ok)
	require.Equal(t, "live", active.ID)
}

func TestManager_HistoryIsACopy(t *testing.T) {
	mgr, _ := newManager("")
	require.NoError(t, mgr.AddSession(finished("a", 0, 10)))

	history := mgr.History()
	history[0].ID = "mutated"
	*history[0].End = 99

	again := mgr.History()
	require.Equal(t, "a", again[0].ID)
	require.Equal(t, int64(10_000), *again[0].End)
}

func TestManager_AddSessionRejectsMalformed(t *testing.T) {
	mgr, _ := newManager("")

	open := session.Session{ID: "open", Start: 1000}
	require.ErrorIs(t, mgr.AddSession(open), session.ErrInvalidInput)

	noDuration := finished("no-duration", 1000, 5)
	noDuration.Duration = nil
	require.ErrorIs(t, mgr.AddSession(noDuration), session.ErrInvalidInput)

	backwards := finished("backwards", 5000, 1)
	*backwards.End = 10
	require.ErrorIs(t, mgr.AddSession(backwards), session.ErrInvalidInput)

	require.ErrorIs(t, mgr.AddSession(finished("", 1, 1)), session.ErrInvalidInput)

	nap := finished("nap", 1, 1)
	nap.Kind = "nap"
	require.ErrorIs(t, mgr.AddSession(nap), session.ErrInvalidKind)

	require.Empty(t, mgr.History())
}

func TestParseReplacePolicy(t *testing.T) {
	policy, err := session.ParseReplacePolicy("")
	require.NoError(t, err)
	require.Equal(t, session.ReplaceDiscard, policy)

	policy, err = session.ParseReplacePolicy("complete")
	require.NoError(t, err)
	require.Equal(t, session.ReplaceComplete, policy)

	_, err = session.ParseReplacePolicy("queue")
	require.ErrorIs(t, err, session.ErrInvalidPolicy)
}
