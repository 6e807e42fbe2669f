package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/buildinfo"
	"github.com/matzehuels/schedgrid/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Persistent flags:
//   - --config: config file (default $XDG_CONFIG_HOME/schedgrid/config.toml)
//   - --verbose (-v): debug logging, plus pipeline and cache hook logging
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Schedgrid lays out event schedules as timetable grids",
		Long: `Schedgrid turns a conference schedule into a timetable grid: one column per
room (or venue), one row per time quantum, each session placed as a block.

Grids can be written as JSON layouts, text tables, agendas, Graphviz DOT or
SVG, browsed in the terminal, or served over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/schedgrid/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.daysCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
