package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"question-service/internal/infra/postgres"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
		Long:  `Apply or roll back the embedded migrations against db.pg.url.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := migrationDSN(root)
			if err != nil {
				return err
			}
			return postgres.MigrateUp(dsn, cliLogger(cmd))
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			dsn, err := migrationDSN(root)
			if err != nil {
				return err
			}
			return postgres.MigrateDown(dsn, steps, cliLogger(cmd))
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := migrationDSN(root)
			if err != nil {
				return err
			}
			v, dirty, err := postgres.MigrationVersion(dsn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", v, dirty)
			return nil
		},
	})

	return cmd
}

func migrationDSN(root *rootOptions) (string, error) {
	cfg, err := root.load()
	if err != nil {
		return "", err
	}
	if cfg.DB.PG.URL == "" {
		return "", fmt.Errorf("db.pg.url is required for migrations")
	}
	return cfg.DB.PG.URL, nil
}

func cliLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelInfo}))
}
