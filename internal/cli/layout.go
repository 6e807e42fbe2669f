package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// layoutCommand creates the layout command for computing a day grid.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [schedule.toml|schedule.json|url]",
		Short: "Compute the timetable grid of one day",
		Long: `Compute the timetable grid of one day.

The layout command reads a schedule document (a file or an http(s) URL,
cached between runs) and writes the grid as a
layout.json file: columns, venue spans, time slots and one placement per
session. The layout can be rendered later with 'render' without the schedule.

Sessions that reference an unknown venue or room are dropped from the grid
and reported as a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<day>.layout.json)")
	addSelectionFlags(cmd, &opts)
	addGridFlags(cmd, &opts)

	return cmd
}

// runLayout loads the schedule, computes the grid and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	ev, err := c.loadSchedule(ctx, input, false)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, nil, c.Logger)
	l, stats, err := runner.Layout(ctx, ev, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if output == "" {
		output = layoutPath(input, l.Day)
	}
	if err := timetable.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done("wrote layout", "path", output)

	printSuccess("Layout complete")
	printFile(output)
	printStats(stats, false)
	printNewline()
	printNextStep("Render", appName+" render "+output+" -f text")
	return nil
}

// layoutPath derives "<input base>.<day>.layout.json".
func layoutPath(input, day string) string {
	base := inputBase(input)
	if day == "" {
		return base + ".layout.json"
	}
	return base + "." + day + ".layout.json"
}
