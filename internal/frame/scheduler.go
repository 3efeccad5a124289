package frame

import (
	"context"
	"time"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// Scheduler is the host's display-refresh primitive. A requested callback
// runs once, on the next refresh.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

type request struct {
	id FrameID
	fn func(time.Time)
}

// ManualScheduler delivers frames only when Fire is called.
type ManualScheduler struct {
	next    FrameID
	pending []request
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) RequestFrame(fn func(time.Time)) FrameID {
	m.next++
	m.pending = append(m.pending, request{id: m.next, fn: fn})
	return m.next
}

func (m *ManualScheduler) CancelFrame(id FrameID) {
	for i, r := range m.pending {
		if r.id == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Fire runs the callbacks pending at call time and returns how many ran.
// Callbacks requested while firing wait for the next Fire.
func (m *ManualScheduler) Fire(now time.Time) int {
	batch := m.pending
	m.pending = nil
	for _, r := range batch {
		r.fn(now)
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int { return len(m.pending) }

// TickerScheduler fires pending callbacks from a time.Ticker.
type TickerScheduler struct {
	ManualScheduler
	Interval time.Duration
}

// NewTickerScheduler returns a scheduler firing fps times per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{Interval: time.Second / time.Duration(fps)}
}

// Run fires frames on the calling goroutine until ctx is done or nothing is
// left pending.
func (t *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for t.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t.Fire(now)
		}
	}
	return nil
}
