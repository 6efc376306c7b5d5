package main

import (
	"fmt"

	"github.com/simp-lee/logger"
	"github.com/spf13/cobra"

	"github.com/simp-lee/modify/internal/app"
	"github.com/simp-lee/modify/internal/config"
	"github.com/simp-lee/modify/internal/migrations"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "modify",
		Short:         "Module timetable API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to configuration file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before the config")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts))
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			log, err := config.SetupLogger(&cfg.Log, logger.WithConsoleWriter(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			defer log.Close()

			db, err := config.SetupDatabase(&cfg.Database, log.Logger)
			if err != nil {
				return fmt.Errorf("setup database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			return migrations.Up(cmd.Context(), db, cfg.Database.Driver, log.Logger)
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}
	return a.Run()
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
