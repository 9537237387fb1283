package clock

import (
	"sync"
	"time"
)

// Source schedules a callback once per interval until the returned
// subscription is stopped.
type Source interface {
	Every(interval time.Duration, fn func()) *Subscription
}

// Subscription is the cancellable handle for a scheduled callback.
type Subscription struct {
	once   sync.Once
	mu     sync.Mutex
	active bool
	stopFn func()
}

func newSubscription(stopFn func()) *Subscription {
	return &Subscription{active: true, stopFn: stopFn}
}

// Stop cancels the subscription. Calling Stop more than once is a no-op.
func (s *Subscription) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		if s.stopFn != nil {
			s.stopFn()
		}
	})
}

// Active reports whether the callback is still scheduled.
func (s *Subscription) Active() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Ticker is the wall-clock Source backed by time.Ticker.
type Ticker struct{}

// NewTicker returns a wall-clock Source.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Every starts a goroutine that invokes fn on every tick.
func (t *Ticker) Every(interval time.Duration, fn func()) *Subscription {
	if interval <= 0 {
		interval = time.Second
	}
	stopCh := make(chan struct{})
	sub := newSubscription(func() { close(stopCh) })

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return sub
}
