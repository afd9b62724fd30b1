package scheduler

import (
	"testing"
	"time"
)

func TestManualDeliversFiredTicks(t *testing.T) {
	src := NewManual()
	at := time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

	got := make(chan time.Time, 1)
	go func() { got <- <-src.C() }()

	if !src.Fire(at) {
		t.Fatal("expected fire to be delivered")
	}
	select {
	case tick := <-got:
		if !tick.Equal(at) {
			t.Fatalf("unexpected tick: %s", tick)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
	}
}

func TestManualFireAfterStop(t *testing.T) {
	src := NewManual()
	src.Stop()
	src.Stop()
	if !src.Stopped() {
		t.Fatal("expected stopped source")
	}
	if src.Fire(time.Now()) {
		t.Fatal("expected fire on stopped source to report false")
	}
}

func TestTickerTicks(t *testing.T) {
	src := NewTicker(5 * time.Millisecond)
	defer src.Stop()
	select {
	case <-src.C():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ticker")
	}
}
