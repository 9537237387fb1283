package timer

import "time"

// State is a read-only snapshot of the engine.
type State struct {
	Duration    int  `json:"duration"`
	SecondsLeft int  `json:"seconds_left"`
	IsRunning   bool `json:"is_running"`
}

// EventType defines the type of engine event.
type EventType string

const (
	EventStart    EventType = "start"
	EventTick     EventType = "tick"
	EventPause    EventType = "pause"
	EventReset    EventType = "reset"
	EventSet      EventType = "set"
	EventComplete EventType = "complete"
)

// Event is delivered to listeners after every state change.
type Event struct {
	Type  EventType
	State State
	Run   uint64
	At    time.Time
}

// Listener receives engine events.
type Listener func(Event)
