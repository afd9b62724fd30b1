package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/planner"
)

// Bind returns handlers that run every command against store. setTheme may be
// nil, which leaves the theme command unconfigured.
func Bind(ctx context.Context, store *planner.Store, setTheme func(model.Theme) error) Handlers {
	lookup := func(id string) (model.Task, error) {
		t, ok := store.Task(id)
		if !ok {
			return model.Task{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", id)}
		}
		return t, nil
	}
	simple := func(verb string, op func(context.Context, string) error) func(TargetArgs) (Result, error) {
		return func(a TargetArgs) (Result, error) {
			t, err := lookup(a.Target)
			if err != nil {
				return Result{}, err
			}
			if err := op(ctx, t.ID); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("%s %s", verb, t.Title)}, nil
		}
	}

	h := Handlers{
		Add: func(a AddArgs) (Result, error) {
			at := a.At
			if !a.Recurrence.IsRecurring() {
				at = nil
			}
			t, err := store.AddTask(ctx, a.Title, a.Duration, a.Recurrence, at)
			if err != nil {
				return Result{}, err
			}
			if t.IsRecurringTemplate {
				return Result{Message: fmt.Sprintf("added %s template %s", t.Recurrence, t.Title), TaskID: t.ID}, nil
			}
			if a.At != nil {
				placed, _, err := store.ScheduleTask(ctx, t.ID, *a.At)
				if err != nil {
					return Result{}, err
				}
				return Result{Message: fmt.Sprintf("added %s at %s", t.Title, placed), TaskID: t.ID}, nil
			}
			return Result{Message: fmt.Sprintf("added %s to backlog", t.Title), TaskID: t.ID}, nil
		},
		Move: func(a MoveArgs) (Result, error) {
			t, err := lookup(a.Target)
			if err != nil {
				return Result{}, err
			}
			placed, ok, err := store.ScheduleTask(ctx, t.ID, a.Slot)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "templates cannot be scheduled"}
			}
			return Result{Message: fmt.Sprintf("moved %s to %s", t.Title, placed)}, nil
		},
		Backlog: simple("unscheduled", store.UnscheduleTask),
		Start:   simple("started", store.StartTask),
		Stop: func() (Result, error) {
			if err := store.StopTask(ctx); err != nil {
				return Result{}, err
			}
			return Result{Message: "stopped active task"}, nil
		},
		Complete: simple("completed", store.CompleteTask),
		Delete:   simple("deleted", store.DeleteTask),
		Rename: func(a RenameArgs) (Result, error) {
			if _, err := lookup(a.Target); err != nil {
				return Result{}, err
			}
			if err := store.UpdateTask(ctx, a.Target, planner.Rename(a.Title)); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("renamed to %s", strings.TrimSpace(a.Title))}, nil
		},
		Retime: func(a RetimeArgs) (Result, error) {
			t, err := lookup(a.Target)
			if err != nil {
				return Result{}, err
			}
			if err := store.UpdateTask(ctx, t.ID, planner.Retime(a.Minutes)); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("%s now takes %dm", t.Title, a.Minutes)}, nil
		},
		Untemplate: func(a TargetArgs) (Result, error) {
			t, err := lookup(a.Target)
			if err != nil {
				return Result{}, err
			}
			if !t.IsRecurringTemplate {
				return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not a recurring template", t.ID)}
			}
			if err := store.DeleteRecurringTemplate(ctx, t.ID); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("deleted template %s and its instances", t.Title)}, nil
		},
		Clear: func() (Result, error) {
			if err := store.ClearCompleted(ctx); err != nil {
				return Result{}, err
			}
			return Result{Message: "cleared completed tasks"}, nil
		},
	}
	if setTheme != nil {
		h.Theme = func(a ThemeArgs) (Result, error) {
			if err := setTheme(a.Theme); err != nil {
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("theme set to %s", a.Theme)}, nil
		}
	}
	return h
}
