package cli

import (
	"github.com/Eursukkul/hotel-booking/config"
	"github.com/Eursukkul/hotel-booking/pkg/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds what every subcommand shares.
type RootOptions struct {
	// LoadConfig and OpenDB are swapped out in tests.
	LoadConfig func() (*config.Config, error)
	OpenDB     func(cfg *config.Config) (*gorm.DB, error)
}

func defaultOptions() *RootOptions {
	return &RootOptions{
		LoadConfig: config.Load,
		OpenDB: func(cfg *config.Config) (*gorm.DB, error) {
			return database.NewPostgresDB(cfg.DSN())
		},
	}
}

// NewRootCommand creates the hotel-booking command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultOptions())
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hotel-booking",
		Short:         "Multi-tenant hotel booking engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewCompleteDueCommand(opts))

	return cmd
}

// open loads config and opens a migrated database.
func (o *RootOptions) open() (*config.Config, *gorm.DB, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := o.OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
