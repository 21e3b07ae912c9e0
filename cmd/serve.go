package cmd

import (
	"context"
	"time"

	"customer-reviews/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.String("driver", config.Database.Driver),
			zap.Bool("debug", config.App.Debug),
		)

		st, err := openStore(config.Database, logger)
		if err != nil {
			logger.Error("Failed to open database", zap.Error(err))
			return err
		}
		defer st.close()

		if migrateOnStart {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			err := st.migrate(ctx)
			cancel()
			if err != nil {
				logger.Error("Failed to migrate schema", zap.Error(err))
				return err
			}
			logger.Info("Schema migrated")
		}

		app := wire.Wiring(st.repo, logger)

		return APIServer(cmd.Context(), app.Router, config.App.Port, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Create the schema before serving")
}
