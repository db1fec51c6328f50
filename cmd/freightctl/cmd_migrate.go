package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"freightrate/pkg/config"
	"freightrate/pkg/infra/mysql"
	"freightrate/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}

	log, err := logger.NewZapLogger(cfg.App.LogLevel, cfg.IsDev())
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		return err
	}
	defer mysql.Close(db)

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Infof(context.Background(), "[Migrate] tables are up to date")
	return nil
}
