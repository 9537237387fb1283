package timer_test

import (
	"testing"

	"github.com/ganot/pomodoom/internal/clock"
	"github.com/ganot/pomodoom/internal/domain/timer"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []timer.Event
}

func (r *recorder) listen(event timer.Event) {
	r.events = append(r.events, event)
}

func (r *recorder) count(eventType timer.EventType) int {
	n := 0
	for _, event := range r.events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, duration int) (*timer.Engine, *clock.Manual, *recorder) {
	t.Helper()
	source := clock.NewManual()
	engine := timer.New(source, duration, timer.Config{})
	rec := &recorder{}
	engine.Subscribe(rec.listen)
	t.Cleanup(engine.Close)
	return engine, source, rec
}

func TestEngine_InitialState(t *testing.T) {
	engine, source, _ := newEngine(t, 90)

	require.Equal(t, timer.State{Duration: 90, SecondsLeft: 90}, engine.State())
	require.Equal(t, 0, source.Active())
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	engine, source, rec := newEngine(t, 10)

	engine.Start()
	engine.Start()

	require.True(t, engine.State().IsRunning)
	require.Equal(t, 1, source.Active())
	require.Equal(t, 1, rec.count(timer.EventStart))

	source.Tick()
	require.Equal(t, 9, engine.State().SecondsLeft)
}

func TestEngine_TicksDownToCompletion(t *testing.T) {
	engine, source, rec := newEngine(t, 3)
	engine.Start()

	previous := engine.State().SecondsLeft
	for previous > 0 {
		source.Tick()
		current := engine.State().SecondsLeft
		require.Equal(t, previous-1, current)
		previous = current
	}

	state := engine.State()
	require.False(t, state.IsRunning)
	require.Equal(t, 0, state.SecondsLeft)
	require.Equal(t, 0, source.Active())
	require.Equal(t, 1, rec.count(timer.EventComplete))

	source.Advance(5)
	require.Equal(t, 0, engine.State().SecondsLeft)
	require.Equal(t, 1, rec.count(timer.EventComplete))
}

func TestEngine_ProgressMonotonic(t *testing.T) {
	engine, source, _ := newEngine(t, 5)
	require.Equal(t, 0.0, engine.View().Progress)

	engine.Start()
	last := engine.View().Progress
	for engine.State().IsRunning {
		source.Tick()
		progress := engine.View().Progress
		require.GreaterOrEqual(t, progress, last)
		last = progress
	}
	require.Equal(t, 1.0, last)
}

func TestEngine_PauseKeepsRemaining(t *testing.T) {
	engine, source, rec := newEngine(t, 60)
	engine.Start()
	source.Advance(5)

	engine.Pause()
	afterOne := engine.State()
	engine.Pause()
	afterTwo := engine.State()

	require.Equal(t, afterOne, afterTwo)
	require.Equal(t, timer.State{Duration: 60, SecondsLeft: 55}, afterTwo)
	require.Equal(t, 1, rec.count(timer.EventPause))
	require.Equal(t, 0, source.Active())

	source.Tick()
	require.Equal(t, 55, engine.State().SecondsLeft)

	engine.Start()
	source.Tick()
	require.Equal(t, 54, engine.State().SecondsLeft)
}

func TestEngine_Reset(t *testing.T) {
	for _, d := range []int{0, 1, 59, 600, 3600} {
		engine, source, _ := newEngine(t, 120)
		engine.Start()
		source.Advance(3)

		engine.ResetTo(d)
		require.Equal(t, timer.State{Duration: d, SecondsLeft: d}, engine.State())
		require.Equal(t, 0, source.Active())
	}
}

func TestEngine_ResetKeepsDuration(t *testing.T) {
	engine, source, rec := newEngine(t, 30)
	engine.Start()
	source.Advance(10)

	engine.Reset()
	require.Equal(t, timer.State{Duration: 30, SecondsLeft: 30}, engine.State())
	require.Equal(t, 1, rec.count(timer.EventReset))
}

func TestEngine_SetWhileRunningKeepsTicking(t *testing.T) {
	engine, source, _ := newEngine(t, 1500)
	engine.Start()
	source.Advance(2)

	engine.Set(600)
	require.Equal(t, timer.State{Duration: 600, SecondsLeft: 600, IsRunning: true}, engine.State())
	require.Equal(t, 1, source.Active())

	source.Tick()
	require.Equal(t, 599, engine.State().SecondsLeft)
}

func TestEngine_SetDurationClampsDown(t *testing.T) {
	engine, source, _ := newEngine(t, 100)
	engine.Start()
	source.Advance(10)

	engine.SetDuration(50)
	require.Equal(t, 50, engine.State().SecondsLeft)

	engine.SetDuration(200)
	state := engine.State()
	require.Equal(t, 200, state.Duration)
	require.Equal(t, 50, state.SecondsLeft)
	require.True(t, state.IsRunning)
}

func TestEngine_NegativeDurationClamps(t *testing.T) {
	engine, _, _ := newEngine(t, -5)
	require.Equal(t, timer.State{}, engine.State())

	engine.Set(-10)
	view := engine.View()
	require.Equal(t, "0:00", view.Formatted)
	require.Equal(t, 0.0, view.Progress)
}

func TestEngine_CloseReleasesSubscription(t *testing.T) {
	engine, source, rec := newEngine(t, 10)
	engine.Start()
	engine.Close()

	require.Equal(t, 0, source.Active())
	require.False(t, engine.State().IsRunning)

	engine.Start()
	require.Equal(t, 0, source.Active())

	before := len(rec.events)
	engine.Set(5)
	require.Len(t, rec.events, before)
}

func TestEngine_Unsubscribe(t *testing.T) {
	engine, _, _ := newEngine(t, 10)
	rec := &recorder{}
	unsubscribe := engine.Subscribe(rec.listen)

	engine.Set(20)
	unsubscribe()
	engine.Set(30)

	require.Len(t, rec.events, 1)
	require.Equal(t, timer.EventSet, rec.events[0].Type)
	require.Equal(t, 20, rec.events[0].State.Duration)
}

func TestEngine_RunNumbering(t *testing.T) {
	engine, source, rec := newEngine(t, 2)
	require.Equal(t, uint64(0), engine.Run())
	require.False(t, engine.Finished(0))

	engine.Start()
	first := engine.Run()
	require.Equal(t, uint64(1), first)
	engine.Pause()
	engine.Start()
	second := engine.Run()
	require.Equal(t, uint64(2), second)

	source.Advance(2)
	require.True(t, engine.Finished(second))
	require.False(t, engine.Finished(first))
	require.Equal(t, second, rec.events[len(rec.events)-1].Run)

	engine.Reset()
	engine.Start()
	require.False(t, engine.Finished(engine.Run()))
	require.True(t, engine.Finished(second))
}
