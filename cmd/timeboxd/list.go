package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/recurrence"
	"github.com/sandeepkv93/timeboxd/internal/stats"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the timeline, the backlog and the recurring templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a.store.Tasks())
			}
			printTasks(out, a.store.Timeline(), a.store.Backlog(), a.store.Templates(), a.store.Tasks(), time.Now())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print every task as JSON")
	return cmd
}

func printTasks(out io.Writer, timeline, backlog, templates, all []model.Task, now time.Time) {
	fmt.Fprintf(out, "timeline (%s):\n", now.Format("Mon 01-02"))
	if len(timeline) == 0 {
		fmt.Fprintln(out, "  nothing scheduled")
	}
	for _, t := range timeline {
		start, end, _ := t.Interval()
		fmt.Fprintf(out, "  %s-%s  %-8s  %s (%s)%s\n", clock(start), clock(end), t.ID, t.Title, views.FormatMinutes(t.Duration), statusSuffix(t))
	}

	fmt.Fprintln(out, "backlog:")
	if len(backlog) == 0 {
		fmt.Fprintln(out, "  empty")
	}
	for _, t := range backlog {
		fmt.Fprintf(out, "  %-8s  %s (%s)%s\n", t.ID, t.Title, views.FormatMinutes(t.Duration), statusSuffix(t))
	}

	var done []model.Task
	for _, t := range all {
		if t.IsCompleted() && !t.IsScheduled() {
			done = append(done, t)
		}
	}
	if len(done) > 0 {
		fmt.Fprintln(out, "completed off the timeline:")
		for _, t := range done {
			fmt.Fprintf(out, "  %-8s  %s (%s)%s\n", t.ID, t.Title, views.FormatMinutes(t.Duration), statusSuffix(t))
		}
	}

	if len(templates) == 0 {
		return
	}
	fmt.Fprintln(out, "templates:")
	for _, tpl := range templates {
		at := "backlog"
		if tpl.RecurrenceTime != nil {
			at = tpl.RecurrenceTime.String()
		}
		next := "-"
		if when, ok := tpl.Recurrence.NextOccurrence(now); ok {
			next = when.Format("Mon 01-02")
		}
		fmt.Fprintf(out, "  %-8s  %s [%s @ %s] next %s, %d instance(s)\n",
			tpl.ID, tpl.Title, tpl.Recurrence, at, next, len(recurrence.Instances(all, tpl.ID)))
	}
}

func statusSuffix(t model.Task) string {
	switch t.Status {
	case model.StatusActive:
		return "  active"
	case model.StatusCompleted:
		return "  done"
	default:
		return ""
	}
}

// clock formats minutes since midnight; 24:00 closes the last slot.
func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show today's completion, focus time and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.store.Stats()
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(struct {
					stats.Stats
					Degraded bool `json:"degraded"`
				}{s, a.store.Degraded()})
			}
			fmt.Fprintln(out, views.RenderStatsPanel(views.StatsPanelData{
				CompletedToday:      s.CompletedToday,
				TotalTasksToday:     s.TotalTasksToday,
				ScheduledOpen:       s.ScheduledOpen,
				Streak:              s.Streak,
				TotalFocusTimeToday: s.TotalFocusTimeToday,
				CompletionRate:      s.CompletionRate,
				Degraded:            a.store.Degraded(),
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stats as JSON")
	return cmd
}
