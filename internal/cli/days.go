package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// daysCommand lists the days of a schedule that have matching sessions.
func (c *CLI) daysCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "days [schedule.toml|schedule.json|url]",
		Short: "List the days that have sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(&opts)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			ev, err := c.loadSchedule(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), daysTable(ev, opts))
			return nil
		},
	}
	addSelectionFlags(cmd, &opts)
	return cmd
}

// daysTable renders one row per day: session count and the time span the
// sessions cover.
func daysTable(ev *schedule.Event, opts pipeline.Options) string {
	sel := pipeline.Select(ev, opts)

	var rows [][]string
	for _, day := range sel.Days {
		opts.Day = day
		sessions := pipeline.Select(ev, opts).Sessions
		first, last := sessions[0].Start, sessions[0].End
		for _, s := range sessions[1:] {
			if s.Start.Before(first) {
				first = s.Start
			}
			if s.End.After(last) {
				last = s.End
			}
		}
		rows = append(rows, []string{
			day,
			strconv.Itoa(len(sessions)),
			first.In(sel.Location).Format("15:04") + "–" + last.In(sel.Location).Format("15:04"),
		})
	}
	if len(rows) == 0 {
		return StyleDim.Render("No sessions match")
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Day", "Sessions", "Span ("+sel.Location.String()+")").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return cell.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cell
		}).
		Render()
}
