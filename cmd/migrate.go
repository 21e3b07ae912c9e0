package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the customers, items and reviews tables",
	Long: `Create the schema on the configured driver. Statements are idempotent,
so running migrate against an existing database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		st, err := openStore(config.Database, logger)
		if err != nil {
			return err
		}
		defer st.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := st.migrate(ctx); err != nil {
			return err
		}

		logger.Info("Schema migrated", zap.String("driver", config.Database.Driver))
		return nil
	},
}
