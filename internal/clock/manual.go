package clock

import (
	"sync"
	"time"
)

// Manual is a Source driven explicitly by the caller. Tick fires every
// live subscription synchronously on the calling goroutine.
type Manual struct {
	mu   sync.Mutex
	subs []*manualEntry
}

type manualEntry struct {
	sub *Subscription
	fn  func()
}

// NewManual returns a Source with no live subscriptions.
func NewManual() *Manual {
	return &Manual{}
}

// Every registers fn. The interval is ignored; each Tick counts as one period.
func (m *Manual) Every(_ time.Duration, fn func()) *Subscription {
	entry := &manualEntry{fn: fn}
	entry.sub = newSubscription(func() { m.remove(entry) })

	m.mu.Lock()
	m.subs = append(m.subs, entry)
	m.mu.Unlock()
	return entry.sub
}

// Tick fires each live subscription once.
func (m *Manual) Tick() {
	m.mu.Lock()
	entries := append([]*manualEntry(nil), m.subs...)
	m.mu.Unlock()

	for _, entry := range entries {
		if entry.sub.Active() {
			entry.fn()
		}
	}
}

// Advance calls Tick n times.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Active returns the number of live subscriptions.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *Manual) remove(target *manualEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, entry := range m.subs {
		if entry == target {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}
