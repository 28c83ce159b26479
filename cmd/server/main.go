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

	"asset-tracker/internal/config"
	"asset-tracker/internal/database"
	"asset-tracker/internal/logger"
	"asset-tracker/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

// env is what every command needs: configuration, a logger and the database.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.Connect(cfg.DBDSN, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and serve the web interface.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		if err := database.Migrate(e.db); err != nil {
			return err
		}
		if err := database.EnsureAdmin(e.db, e.cfg.AdminEmail, e.cfg.AdminPassword, e.log); err != nil {
			return err
		}

		if e.cfg.GinMode != "" {
			gin.SetMode(e.cfg.GinMode)
		}
		srv := &http.Server{
			Addr:         ":" + e.cfg.ServerPort,
			Handler:      server.NewRouter(e.cfg, e.db, e.log),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			e.log.Info("starting server", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}

		e.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		e.log.Info("server stopped")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema.",
	RunE: func(_ *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		if err := database.Migrate(e.db); err != nil {
			return err
		}
		e.log.Info("schema is up to date")
		return nil
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "inventory",
		Short:         "IT asset inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd())
	rootCmd.AddCommand(entityCmds()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
