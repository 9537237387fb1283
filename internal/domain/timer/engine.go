package timer

import (
	"sync"
	"time"

	"github.com/ganot/pomodoom/internal/clock"
)

// DefaultDuration is the length of a work interval when no settings are supplied.
const DefaultDuration = 25 * 60

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
}

// Engine is the countdown state machine. It owns at most one clock
// subscription at a time.
type Engine struct {
	mu          sync.Mutex
	source      clock.Source
	options     Config
	duration    int
	secondsLeft int
	running     bool
	sub         *clock.Subscription
	generation  uint64
	run         uint64
	finishedRun uint64
	closed      bool
	listeners   []listenerEntry
	nextID      uint64
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// New creates an idle Engine with secondsLeft = duration = initialDuration.
func New(source clock.Source, initialDuration int, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	initialDuration = clampSeconds(initialDuration)

	return &Engine{
		source:      source,
		options:     options,
		duration:    initialDuration,
		secondsLeft: initialDuration,
	}
}

// Subscribe registers a listener and returns a func that removes it.
func (e *Engine) Subscribe(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, entry := range e.listeners {
			if entry.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// State returns the current snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Run returns the number of the latest Start. Runs are numbered from 1;
// 0 means the engine never started.
func (e *Engine) Run() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.run
}

// Finished reports whether the given run counted down to zero.
func (e *Engine) Finished(run uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return run != 0 && e.finishedRun == run
}

// View returns the snapshot with its derived display values.
func (e *Engine) View() View {
	return NewView(e.State())
}

// Start begins ticking. It is a no-op while already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.closed || e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.generation++
	e.run++
	generation := e.generation
	e.sub = e.source.Every(e.options.TickInterval, func() { e.tick(generation) })
	event := e.eventLocked(EventStart)
	e.mu.Unlock()

	e.emit(event)
}

// Pause stops ticking and keeps secondsLeft so the countdown can resume.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running && e.sub == nil {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	event := e.eventLocked(EventPause)
	e.mu.Unlock()

	e.emit(event)
}

// Reset pauses and refills secondsLeft from the current duration.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.stopLocked()
	e.secondsLeft = e.duration
	event := e.eventLocked(EventReset)
	e.mu.Unlock()

	e.emit(event)
}

// ResetTo pauses, replaces the duration and refills secondsLeft.
func (e *Engine) ResetTo(seconds int) {
	e.mu.Lock()
	e.stopLocked()
	e.setDurationLocked(seconds)
	e.secondsLeft = e.duration
	event := e.eventLocked(EventReset)
	e.mu.Unlock()

	e.emit(event)
}

// Set replaces both duration and secondsLeft without touching the run state.
// A running countdown continues from the new value.
func (e *Engine) Set(seconds int) {
	e.mu.Lock()
	e.setDurationLocked(seconds)
	e.secondsLeft = e.duration
	event := e.eventLocked(EventSet)
	e.mu.Unlock()

	e.emit(event)
}

// SetDuration replaces only the target duration. secondsLeft is clamped
// down to the new duration, never raised.
func (e *Engine) SetDuration(seconds int) {
	e.mu.Lock()
	e.setDurationLocked(seconds)
	event := e.eventLocked(EventSet)
	e.mu.Unlock()

	e.emit(event)
}

// Close releases the clock subscription and drops all listeners.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopLocked()
	e.closed = true
	e.listeners = nil
}

func (e *Engine) tick(generation uint64) {
	e.mu.Lock()
	if !e.running || generation != e.generation {
		e.mu.Unlock()
		return
	}

	var event Event
	if e.secondsLeft <= 1 {
		e.secondsLeft = 0
		e.finishedRun = e.run
		e.stopLocked()
		event = e.eventLocked(EventComplete)
	} else {
		e.secondsLeft--
		event = e.eventLocked(EventTick)
	}
	e.mu.Unlock()

	e.emit(event)
}

func (e *Engine) stopLocked() {
	if e.sub != nil {
		e.sub.Stop()
		e.sub = nil
	}
	e.running = false
	e.generation++
}

func (e *Engine) setDurationLocked(seconds int) {
	e.duration = clampSeconds(seconds)
	if e.secondsLeft > e.duration {
		e.secondsLeft = e.duration
	}
}

func (e *Engine) stateLocked() State {
	return State{
		Duration:    e.duration,
		SecondsLeft: e.secondsLeft,
		IsRunning:   e.running,
	}
}

func (e *Engine) eventLocked(eventType EventType) Event {
	return Event{
		Type:  eventType,
		State: e.stateLocked(),
		Run:   e.run,
		At:    e.options.Now(),
	}
}

func (e *Engine) emit(event Event) {
	e.mu.Lock()
	listeners := append([]listenerEntry(nil), e.listeners...)
	e.mu.Unlock()

	for _, entry := range listeners {
		entry.fn(event)
	}
}

func clampSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds
}
