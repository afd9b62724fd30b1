package scheduler

import (
	"sync"
	"time"
)

// Source is a cancellable stream of ticks. The focus timer consumes one so
// tests can drive it with synthetic ticks instead of wall-clock time.
type Source interface {
	C() <-chan time.Time
	Stop()
}

type Ticker struct {
	t *time.Ticker
}

func NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		d = time.Second
	}
	return &Ticker{t: time.NewTicker(d)}
}

func (t *Ticker) C() <-chan time.Time { return t.t.C }

func (t *Ticker) Stop() { t.t.Stop() }

// Manual emits ticks only when Fire is called.
type Manual struct {
	ch   chan time.Time
	done chan struct{}
	once sync.Once
}

func NewManual() *Manual {
	return &Manual{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
	}
}

func (m *Manual) C() <-chan time.Time { return m.ch }

// Fire blocks until the consumer receives the tick. It reports false once the
// source has been stopped.
func (m *Manual) Fire(at time.Time) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.ch <- at:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manual) Stop() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manual) Stopped() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}
