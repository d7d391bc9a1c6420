package cmd

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"game-with-you/config"
	"game-with-you/store"
)

// newImportCommand copies exported tickets/events files into the active store.
func newImportCommand(app core.App, cfg *config.Config, st store.Store) *cobra.Command {
	var ticketsPath, eventsPath string

	command := &cobra.Command{
		Use:          "import-json",
		Short:        "Import tickets.json and events.json into the configured store",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, args []string) error {
			if cfg.StoreBackend == config.BackendPocketBase {
				if err := store.EnsureCollections(app); err != nil {
					return err
				}
			}

			tickets, events, err := store.ReadFiles(ticketsPath, eventsPath)
			if err != nil {
				return err
			}
			res, err := store.Import(command.Context(), st, tickets, events)
			fmt.Fprintf(command.OutOrStdout(), "imported %d tickets and %d events, skipped %d invalid\n", res.Tickets, res.Events, res.Skipped)
			return err
		},
	}

	command.Flags().StringVar(&ticketsPath, "tickets", "tickets.json", "exported tickets file")
	command.Flags().StringVar(&eventsPath, "events", "events.json", "exported events file")
	return command
}
