package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/compete"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/db"
)

// migrator is implemented by both store backends.
type migrator interface {
	Migrate(ctx context.Context) error
}

// openStore connects the configured competitor store backend. The returned
// close function is safe to call even on a nil store path.
func openStore(ctx context.Context) (compete.Store, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return compete.NewPostgresStore(pool), pool.Close, nil
	case "sqlite":
		st, err := compete.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the competitor store schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("store"); err != nil {
			return err
		}

		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		m, ok := store.(migrator)
		if !ok {
			return eris.Errorf("store: driver %q does not support migration", cfg.Store.Driver)
		}
		if err := m.Migrate(ctx); err != nil {
			return err
		}

		zap.L().Info("store migrated", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
