package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:            "task-1",
		Title:         "Write planner",
		Duration:      45,
		Status:        StatusIdle,
		ScheduledTime: SlotPtr(MustParseSlot("09:00")),
		CreatedAt:     now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Done task",
		Duration:  30,
		Status:    StatusCompleted,
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task status is completed" {
		t.Fatalf("unexpected error: %v", err)
	}

	task.Status = StatusIdle
	task.CompletedAt = &now
	if err := task.Validate(); err == nil {
		t.Fatal("expected completed_at without completed status to fail")
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Bad status",
		Duration:  30,
		Status:    Status("paused"),
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusIdle
	task.Recurrence = Recurrence("monthly")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got: %v", err)
	}

	task.Recurrence = RecurrenceNone
	task.Duration = 0
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got: %v", err)
	}
}

func TestTemplateCannotBeScheduled(t *testing.T) {
	task := Task{
		ID:                  "tpl-1",
		Title:               "Standup",
		Duration:            15,
		Status:              StatusIdle,
		Recurrence:          RecurrenceWeekdays,
		IsRecurringTemplate: true,
		ScheduledTime:       SlotPtr(MustParseSlot("09:00")),
		CreatedAt:           time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected scheduled template to be invalid")
	}
}

func TestTaskJSONUsesSlotText(t *testing.T) {
	task := Task{
		ID:             "task-1",
		Title:          "Focus",
		Duration:       30,
		Status:         StatusIdle,
		ScheduledTime:  SlotPtr(MustParseSlot("09:30")),
		RecurrenceTime: SlotPtr(MustParseSlot("07:15")),
		CreatedAt:      time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"scheduledTime":"09:30"`) {
		t.Fatalf("expected slot text in payload: %s", raw)
	}
	if strings.Contains(string(raw), "completedAt") {
		t.Fatalf("expected completedAt to be omitted: %s", raw)
	}

	var back Task
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ScheduledTime == nil || back.ScheduledTime.String() != "09:30" {
		t.Fatalf("unexpected scheduled time: %v", back.ScheduledTime)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	done := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{ScheduledTime: SlotPtr(60), CompletedAt: &done}
	cp := task.Clone()
	*cp.ScheduledTime = 120
	*cp.CompletedAt = done.Add(time.Hour)
	if *task.ScheduledTime != 60 || !task.CompletedAt.Equal(done) {
		t.Fatalf("clone aliases original: %+v", task)
	}
}

func TestParseTheme(t *testing.T) {
	for _, raw := range []string{"light", "DARK", " system "} {
		if _, err := ParseTheme(raw); err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
	}
	got, err := ParseTheme("neon")
	if !errors.Is(err, ErrInvalidTheme) || got != ThemeSystem {
		t.Fatalf("expected system fallback with ErrInvalidTheme, got %q %v", got, err)
	}
}
