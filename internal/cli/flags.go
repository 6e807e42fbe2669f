package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
)

// addSelectionFlags registers the day and filter flags shared by the
// layout, render, days and browse commands.
func addSelectionFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Day, "day", "d", "", "day to lay out, YYYY-MM-DD (default: first day with sessions)")
	cmd.Flags().StringSliceVar(&opts.Tracks, "track", nil, "only sessions in these track ids")
	cmd.Flags().StringSliceVar(&opts.Types, "type", nil, "only sessions of these type ids")
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "only sessions whose title, description or speakers contain this text")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "", "timezone for days and times (default: the event's timezone)")
}

// addGridFlags registers the grid geometry flags. Zero values fall back to
// the config file, then to pipeline defaults.
func addGridFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.QuantumMinutes, "quantum", 0, "row height in minutes (default 15)")
	cmd.Flags().StringVar(&opts.DayStart, "day-start", "", "start of the business window, HH:MM (default "+pipeline.DefaultDayStart+")")
	cmd.Flags().StringVar(&opts.DayEnd, "day-end", "", "end of the business window, HH:MM (default "+pipeline.DefaultDayEnd+")")
	cmd.Flags().StringVar(&opts.GeneralLabel, "general-label", "", "label of the column for sessions without a venue")
}
