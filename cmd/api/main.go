// @title Cattle Health Records API
// @version 1.0
// @description Cadastro de vacas y avaliação sanitária.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "cattle-health-records/internal/adapters/storage/postgres"
	"cattle-health-records/internal/adapters/storage/supabase"
	"cattle-health-records/internal/config"
	"cattle-health-records/internal/platform/logger"
	"cattle-health-records/internal/router"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "cattle-health-records",
		Short:         "Cadastro de vacas y avaliação sanitária",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), v)
		},
	}

	root.PersistentFlags().String("addr", "", "listen address (default :$PORT, or :8080)")
	_ = v.BindPFlag("addr", root.PersistentFlags().Lookup("addr"))

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), v)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the reference schema to DB_DSN",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), v)
			},
		},
	)
	return root
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})
}

func serve(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	opts := router.Options{Logger: log, Location: loc}

	switch cfg.Backend() {
	case config.BackendSupabase:
		client, err := supabase.NewClient(supabase.Config{
			URL:     cfg.Supabase.URL,
			Key:     cfg.Supabase.AnonKey,
			Timeout: cfg.Store.Timeout,
		})
		if err != nil {
			return err
		}
		opts.Supabase = client
	case config.BackendPostgres:
		// Igual que en dev: si la DB no responde seguimos en memoria.
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory store", map[string]any{"error": err.Error()})
		} else {
			defer db.Close()
			opts.DB = db
		}
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr})
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("server stopped", nil)
		return nil
	}
}

func migrate(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cfg.DB.DSN == "" {
		return errors.New("migrate: DB_DSN is required")
	}
	log := newLogger(cfg)

	db, err := pg.Open(cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := pg.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info("schema applied", nil)
	return nil
}
