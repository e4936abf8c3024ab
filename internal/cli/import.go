package cli

import (
	"fmt"
	"os"

	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewImportCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load seed data, bypassing booking checks",
		Long: `Load hotels, rooms, clients and bookings from a YAML seed file.

Bookings are stored exactly as written: the subscription gate, overlap
detection and room status updates are all skipped. Use it for seeding
and migrations only.

Example:
  hotel-booking import --file seed.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read seed: %w", err)
			}
			var seed service.Seed
			if err := yaml.Unmarshal(raw, &seed); err != nil {
				return fmt.Errorf("parse seed: %w", err)
			}

			cfg, db, err := opts.open()
			if err != nil {
				return err
			}
			a := newApp(cfg, db, notification.LogPublisher{}, nil)

			report, err := a.importer.Import(cmd.Context(), seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d hotels, %d rooms, %d clients, %d bookings\n",
				report.Hotels, report.Rooms, report.Clients, report.Bookings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
