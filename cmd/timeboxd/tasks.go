package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// execLine opens the app, runs one palette-style command line and prints the
// result.
func execLine(cmd *cobra.Command, opts *rootOptions, line string) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.run(cmd.Context(), line)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Message)
	if res.TaskID != "" {
		fmt.Fprintf(out, "id: %s\n", res.TaskID)
	}
	if a.store.Degraded() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: storage unavailable, change was not saved")
	}
	return nil
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		minutes int
		repeat  string
		at      string
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task to the backlog, the timeline or as a recurring template",
		Long: `Add a task. The title may carry the same modifiers as the command palette:
"for 45", "daily|weekdays|weekly" and "at 09:00". Flags append the same modifiers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := append([]string{"add"}, args...)
			if minutes > 0 {
				parts = append(parts, "for", strconv.Itoa(minutes))
			}
			if repeat != "" {
				parts = append(parts, repeat)
			}
			if at != "" {
				parts = append(parts, "at", at)
			}
			return execLine(cmd, opts, strings.Join(parts, " "))
		},
	}
	cmd.Flags().IntVarP(&minutes, "for", "f", 0, "duration in minutes (default 30)")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "recurrence: daily, weekdays or weekly")
	cmd.Flags().StringVarP(&at, "at", "a", "", "start slot as HH:MM")
	return cmd
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <HH:MM>",
		Short: "Schedule a task at a slot, or the next free one after it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLine(cmd, opts, "move "+args[0]+" "+args[1])
		},
	}
}

// newTargetCmd builds the commands that take a single task id.
func newTargetCmd(opts *rootOptions, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLine(cmd, opts, verb+" "+args[0])
		},
	}
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Return the active task to idle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execLine(cmd, opts, "stop")
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execLine(cmd, opts, "clear")
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		title   string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Rename a task or change its duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && minutes == 0 {
				return errors.New("edit: nothing to change, pass --title or --for")
			}
			if title != "" {
				if err := execLine(cmd, opts, "rename "+args[0]+" "+title); err != nil {
					return err
				}
			}
			if minutes != 0 {
				return execLine(cmd, opts, fmt.Sprintf("retime %s %d", args[0], minutes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().IntVarP(&minutes, "for", "f", 0, "new duration in minutes")
	return cmd
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Set the display theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLine(cmd, opts, "theme "+args[0])
		},
	}
}
