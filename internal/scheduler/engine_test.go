package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{ID: "later", Kind: KindDayRollover, TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", Kind: KindSlotStart, TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if second.Kind != KindDayRollover {
		t.Fatalf("unexpected kind: %s", second.Kind)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(SlotEvent(fmt.Sprintf("t%d", i), now)); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", TriggerAt: time.Now()}); err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestCancelRemovesPendingEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{ID: "rollover", TriggerAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Event{ID: "keep", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel("rollover") {
		t.Fatal("expected cancel to remove event")
	}
	if engine.Cancel("rollover") {
		t.Fatal("expected second cancel to be a no-op")
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending event, got %d", engine.Pending())
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != "keep" {
		t.Fatalf("expected keep event, got %s", ev.ID)
	}
}

func TestScheduleSameIDMovesEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(SlotEvent("t1", now.Add(time.Hour))); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(SlotEvent("t1", now.Add(20*time.Millisecond))); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != SlotEventID("t1") || ev.TaskID != "t1" || ev.Kind != KindSlotStart {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected moved event delivered once, pending=%d", engine.Pending())
	}
}

func TestScheduleBeforeStartIsKept(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(RolloverEvent(time.Now().Add(-24 * time.Hour))); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Start()
	defer engine.Stop()
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID != RolloverID || ev.Kind != KindDayRollover {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestNextMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 2, 28, 23, 59, 0, 0, loc)
	got := NextMidnight(now)
	if got.Format("2006-01-02 15:04") != "2026-03-01 00:00" || got.Location() != loc {
		t.Fatalf("unexpected next midnight: %s", got)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
