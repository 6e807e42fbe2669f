package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/storage"
)

// importCommand loads schedule documents into the configured event store.
func (c *CLI) importCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "import [schedule files or urls...]",
		Short: "Validate schedules and store them in the event store",
		Long: `Validate schedules and store them in the event store.

Each document is stored under its own id, or under --id when a single file
is imported. Sessions, venues and rooms without ids get generated ones.

With the default memory store nothing outlives the command, which makes
import a validation pass. Configure [store] backend = "mongo" to persist.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" && len(args) > 1 {
				return fmt.Errorf("--id needs exactly one file, got %d", len(args))
			}
			if id != "" {
				if err := errors.ValidateEventID(id); err != nil {
					return err
				}
			}
			store, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()
			return c.runImport(cmd.Context(), store, args, id)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "store the document under this event id")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, store storage.Store, files []string, id string) error {
	for _, path := range files {
		ev, err := c.loadSchedule(ctx, path, false)
		if err != nil {
			return err
		}
		if id != "" {
			ev.ID = id
		}
		if err := store.PutEvent(ctx, ev); err != nil {
			return fmt.Errorf("store %s: %w", ev.ID, err)
		}
		c.Logger.Debug("stored event", "event", ev.ID, "sessions", len(ev.Sessions))

		printSuccess("Imported %s", StyleHighlight.Render(ev.ID))
		printDetail("%d sessions · %d venues · days %v", len(ev.Sessions), len(ev.Venues), pipeline.Days(ev, pipeline.Options{}))
	}
	return nil
}
