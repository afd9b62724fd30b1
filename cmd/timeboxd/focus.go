package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/focus"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

func newFocusCmd(opts *rootOptions) *cobra.Command {
	var keepOpen bool
	cmd := &cobra.Command{
		Use:   "focus <task-id>",
		Short: "Start a task and count its timebox down in the terminal",
		Long: `Start a task and count its timebox down. When the time is up the task is
completed unless --keep-open is set. Interrupting the countdown returns the
task to idle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			t, ok := a.store.Task(args[0])
			if !ok {
				return fmt.Errorf("no task with id %s", args[0])
			}
			if t.IsRecurringTemplate || t.IsCompleted() {
				return fmt.Errorf("%s cannot be focused", t.ID)
			}
			if err := a.store.StartTask(ctx, t.ID); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			timer := focus.NewTimer(a.cfg.WarningSeconds)
			armed := timer.Arm(t.ID, t.Duration)
			fmt.Fprintf(out, "focus: %s (%s)\n", t.Title, views.FormatMinutes(t.Duration))
			if slices.Contains(armed, focus.EventWarning) {
				fmt.Fprintf(out, "%s left\n", timer.Status().Clock())
			}

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			timeUp := false
			runErr := focus.Run(runCtx, opts.newTickSource(), timer, func(st focus.Status, events []focus.Event) {
				for _, ev := range events {
					switch ev {
					case focus.EventWarning:
						fmt.Fprintf(out, "%s left\n", st.Clock())
					case focus.EventTimeUp:
						timeUp = true
						cancel()
					}
				}
				if st.Remaining > 0 && st.Remaining%60 == 0 {
					fmt.Fprintf(out, "%s\n", st.Clock())
				}
			})
			a.logger.Debug("focus run ended", zap.String("task_id", t.ID), zap.Bool("time_up", timeUp), zap.Error(runErr))

			// Interrupts cancel ctx; the outcome is still saved.
			saveCtx := context.WithoutCancel(ctx)
			switch {
			case timeUp && !keepOpen:
				timer.Complete()
				if err := a.store.CompleteTask(saveCtx, t.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "time is up, completed %s\n", t.Title)
			case timeUp:
				fmt.Fprintf(out, "time is up, %s is still active\n", t.Title)
			default:
				timer.Abort()
				if err := a.store.StopTask(saveCtx); err != nil {
					return err
				}
				fmt.Fprintf(out, "focus stopped with %s left\n", timer.Status().Clock())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepOpen, "keep-open", false, "leave the task active when the time is up")
	return cmd
}
