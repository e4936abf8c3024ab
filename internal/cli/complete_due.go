package cli

import (
	"fmt"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/spf13/cobra"
)

func NewCompleteDueCommand(opts *RootOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "complete-due",
		Short: "Complete confirmed bookings whose check-out date has passed",
		Long: `Mark every confirmed booking with check-out on or before --as-of as
completed, releasing its room. Intended to run from cron or a similar
scheduler; it does not schedule itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := models.Date(time.Now())
			if asOf != "" {
				parsed, err := models.ParseDate(asOf)
				if err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
				day = parsed
			}

			cfg, db, err := opts.open()
			if err != nil {
				return err
			}
			a := newApp(cfg, db, notification.LogPublisher{}, nil)

			n, err := a.bookings.CompleteDue(cmd.Context(), day)
			fmt.Fprintf(cmd.OutOrStdout(), "completed %d bookings as of %s\n", n, day.Format(models.DateLayout))
			return err
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "cut-off date YYYY-MM-DD (default today)")
	return cmd
}
