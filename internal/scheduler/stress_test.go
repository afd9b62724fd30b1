package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineStressConcurrentScheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+100) * time.Millisecond
				ev := Event{
					ID:        fmt.Sprintf("w%d-%d", w, i),
					Kind:      KindSlotStart,
					TaskID:    fmt.Sprintf("task-%d", i),
					TriggerAt: now.Add(delay),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
				if i%2 == 1 && !engine.Cancel(ev.ID) {
					t.Errorf("cancel %s failed", ev.ID)
					return
				}
			}
		}()
	}
	wg.Wait()

	want := total / 2
	deadline := time.After(5 * time.Second)
	received := 0
	for received < want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d want=%d dropped=%d", received, want, engine.Dropped())
		case <-engine.C():
			received++
		}
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event after cancellation: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}
