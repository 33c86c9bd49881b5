package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/bistro/internal/config"
	"github.com/Skotchmaster/bistro/internal/db"
	"github.com/Skotchmaster/bistro/internal/repo"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	files, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return nil, err
	}
	return config.Load(files...)
}

func openStore(ctx context.Context, cfg *config.Config) (repo.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repo.NewMongoRepo(client, cfg.MongoDB), nil
	case config.DriverPostgres, config.DriverSQLite:
		gdb, err := db.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repo.NewGormRepo(gdb), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
