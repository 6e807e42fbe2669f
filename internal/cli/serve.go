package cli

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/internal/server"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		seed    []string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grids over HTTP",
		Long: `Serve grids over HTTP.

Events live in the configured store ([store] in the config file). With the
default memory store, use --seed to load schedule files at startup.

Grid settings from flags and the config file become the defaults of every
request; query parameters select the day and filters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.applyConfig(&opts)

			store, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			if err := c.runImport(ctx, store, seed, ""); err != nil {
				store.Close()
				return fmt.Errorf("seed: %w", err)
			}
			ch, err := c.newCache(ctx, noCache)
			if err != nil {
				store.Close()
				return fmt.Errorf("open cache: %w", err)
			}

			srv, err := server.New(server.Config{
				Addr:     cmp.Or(addr, c.Config.Server.Addr),
				Store:    store,
				Cache:    ch,
				Logger:   c.Logger,
				Defaults: opts,
			})
			if err != nil {
				store.Close()
				ch.Close()
				return err
			}
			defer srv.Close()

			printInfo("Listening on %s", StyleHighlight.Render(srv.Addr()))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().StringSliceVar(&seed, "seed", nil, "schedule files to import at startup")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "", "default timezone for days and times")
	addGridFlags(cmd, &opts)
	return cmd
}
