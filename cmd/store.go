package cmd

import (
	"context"
	"fmt"

	"customer-reviews/internal/data/repository"
	"customer-reviews/pkg/database"
	"customer-reviews/pkg/utils"

	"go.uber.org/zap"
)

// store is an opened database with its repositories.
type store struct {
	repo    *repository.Repository
	migrate func(ctx context.Context) error
	close   func()
}

func openStore(config utils.DatabaseConfig, logger *zap.Logger) (*store, error) {
	switch config.Driver {
	case utils.DriverSQLite:
		db, err := database.InitSQLite(config.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite database opened", zap.String("path", config.SQLitePath))

		return &store{
			repo:    repository.NewSQLiteRepository(db, logger),
			migrate: func(ctx context.Context) error { return database.MigrateSQLite(ctx, db) },
			close:   func() { db.Close() },
		}, nil

	case utils.DriverPostgres:
		db, err := database.InitPostgres(config)
		if err != nil {
			return nil, err
		}
		logger.Info("PostgreSQL database connected",
			zap.String("host", config.Host),
			zap.String("database", config.Name),
		)

		return &store{
			repo:    repository.NewRepository(db, logger),
			migrate: func(ctx context.Context) error { return database.MigratePostgres(ctx, db) },
			close:   db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
}

// setup loads config and the logger shared by every command.
func setup() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		fmt.Printf("Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
