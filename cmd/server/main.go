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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/schedule-api/internal/auth"
	"github.com/yukikurage/schedule-api/internal/config"
	"github.com/yukikurage/schedule-api/internal/constants"
	"github.com/yukikurage/schedule-api/internal/database"
	"github.com/yukikurage/schedule-api/internal/logging"
	"github.com/yukikurage/schedule-api/internal/repository"
	"github.com/yukikurage/schedule-api/internal/server"
	"github.com/yukikurage/schedule-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// app holds what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "schedule-api",
		Short:         "Scheduling and task tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(a.db, a.logger); err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.Migrate(a.db, a.logger)
		},
	})

	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	a.logger, err = logging.New(cfg)
	if err != nil {
		return err
	}

	a.db, err = database.Connect(cfg, a.logger)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) serve(ctx context.Context) error {
	tokens, err := auth.NewJWTManager(a.cfg.JWTSecret, constants.TokenTTL)
	if err != nil {
		return err
	}

	accountService := services.NewAccountService(repository.NewAccountRepository(a.db), auth.NewBcryptHasher(0), tokens)
	eventService := services.NewEventService(repository.NewEventRepository(a.db))
	taskService := services.NewTaskService(repository.NewTaskRepository(a.db), accountService, eventService)

	router := server.NewRouter(server.Options{
		Logger:     a.logger,
		Production: a.cfg.IsProduction(),
		Verifier:   tokens,
		Accounts:   accountService,
		Events:     eventService,
		Tasks:      taskService,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
