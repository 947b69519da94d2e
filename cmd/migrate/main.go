// Command migrate manages the database schema from the embedded
// migration files. It is the only process that changes the schema; the
// server and worker expect it to have run.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/migrate"
	"github.com/Shrijeeth/ResumeMindAI-BE/migrations"
)

const migrationsDir = "migrations"

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(upCmd(), downCmd(), newCmd(), headsCmd(), historyCmd())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// withRunner connects to the database and hands a ready Runner to fn.
func withRunner(fn func(ctx context.Context, r *migrate.Runner) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	return fn(ctx, migrate.NewRunner(pool, migrations.FS))
}

func upCmd() *cobra.Command {
	var rev string
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				applied, err := r.Up(ctx, rev)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					log.Info("schema is up to date")
					return nil
				}
				for _, v := range applied {
					log.Infof("applied %s", v)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rev, "rev", "", "stop after this version (default: latest)")
	return cmd
}

func downCmd() *cobra.Command {
	var rev string
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll migrations back (one step by default)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				rolled, err := r.Down(ctx, rev)
				if err != nil {
					return err
				}
				if len(rolled) == 0 {
					log.Info("nothing to roll back")
					return nil
				}
				for _, v := range rolled {
					log.Infof("rolled back %s", v)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rev, "rev", "", `roll back until this version is current ("base" for all)`)
	return cmd
}

func newCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			name, err := migrate.Create(migrationsDir, message)
			if err != nil {
				return err
			}
			log.Infof("created %s/%s.up.sql", migrationsDir, name)
			log.Infof("created %s/%s.down.sql", migrationsDir, name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "short description of the change (required)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func headsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heads",
		Short: "Show current and latest schema versions",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				head, err := r.Heads(ctx)
				if err != nil {
					return err
				}
				current := head.Current
				if current == "" {
					current = "(none)"
				}
				fmt.Printf("current: %s\nlatest:  %s\npending: %d\n", current, head.Latest, head.Pending)
				return nil
			})
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List all migrations and their applied state",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				entries, err := r.History(ctx)
				if err != nil {
					return err
				}
				for _, e := range entries {
					state := "pending"
					if e.Applied {
						state = "applied " + e.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					fmt.Printf("%s  %-40s %s\n", e.Version, e.Name, state)
				}
				return nil
			})
		},
	}
}
