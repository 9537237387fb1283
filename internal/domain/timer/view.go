package timer

import "fmt"

// View bundles a snapshot with the values a display needs.
type View struct {
	State
	Formatted string  `json:"formatted"`
	Progress  float64 `json:"progress"`
}

// NewView derives display values from a snapshot.
func NewView(state State) View {
	return View{
		State:     state,
		Formatted: Format(state.SecondsLeft),
		Progress:  Progress(state.SecondsLeft, state.Duration),
	}
}

// Format renders remaining seconds as m:ss.
func Format(secondsLeft int) string {
	if secondsLeft < 0 {
		secondsLeft = 0
	}
	return fmt.Sprintf("%d:%02d", secondsLeft/60, secondsLeft%60)
}

// Progress returns the elapsed fraction of duration in [0, 1].
func Progress(secondsLeft, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	progress := 1 - float64(secondsLeft)/float64(duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
