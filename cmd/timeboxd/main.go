package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/timeboxd/internal/scheduler"
)

type rootOptions struct {
	envFile string

	// newTickSource drives the headless focus countdown.
	newTickSource func() scheduler.Source
}

func main() {
	if err := newRootCmd(defaultOptions()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "timeboxd failed: %v\n", err)
		os.Exit(1)
	}
}

func defaultOptions() *rootOptions {
	return &rootOptions{
		envFile:       ".env",
		newTickSource: func() scheduler.Source { return scheduler.NewTicker(time.Second) },
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "timeboxd",
		Short:         "Plan the day in 15-minute timeboxes",
		Long:          `timeboxd keeps a backlog and a timeline of 15-minute slots. Without a subcommand it opens the interactive planner.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", opts.envFile, "dotenv file loaded before reading TIMEBOXD_* variables")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newMoveCmd(opts),
		newTargetCmd(opts, "backlog", "Move a task off the timeline"),
		newTargetCmd(opts, "start", "Make a task the active one"),
		newStopCmd(opts),
		newTargetCmd(opts, "complete", "Mark a task completed"),
		newTargetCmd(opts, "delete", "Delete a task"),
		newEditCmd(opts),
		newTargetCmd(opts, "untemplate", "Delete a recurring template and its instances"),
		newClearCmd(opts),
		newStatsCmd(opts),
		newFocusCmd(opts),
		newThemeCmd(opts),
	)
	return root
}
