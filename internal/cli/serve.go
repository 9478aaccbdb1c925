package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todo-lists-api/internal/httpapi"
	"todo-lists-api/internal/store"
	"todo-lists-api/internal/todolist"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo lists API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :3004, or :$PORT)")
	cmd.Flags().Bool("auto-migrate", true, "Apply pending migrations on startup")
	bindFlag(app.v, "http.addr", cmd.Flags().Lookup("addr"))
	bindFlag(app.v, "store.auto_migrate", cmd.Flags().Lookup("auto-migrate"))

	return cmd
}

// runServe blocks until ctx is done, then drains in-flight requests.
func runServe(ctx context.Context, app *App, logOut io.Writer) error {
	cfg, logger, err := app.load(logOut)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("store close failed", "err", err)
		}
	}()

	if cfg.Store.AutoMigrate {
		if err := st.MigrateUp(ctx, logger); err != nil {
			return err
		}
	}

	svc := todolist.NewService(st.Lists, logger)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewServer(svc, st.Lists, logger),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "driver", st.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}
	logger.Info("bye")
	return nil
}
