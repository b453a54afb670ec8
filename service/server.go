package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog/app/application"
	"blog/app/config"
	"blog/app/logging"
	"blog/app/routes"
)

const shutdownTimeout = 10 * time.Second

// serve runs the blog until SIGINT or SIGTERM.
func serve(cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunServer(ctx, cfg); err != nil {
		fmt.Fprintf(stdout, "Server error: %v\n", err)
		return 1
	}
	return 0
}

// RunServer starts the blog web server and blocks until ctx is done, then
// shuts down gracefully.
func RunServer(ctx context.Context, cfg config.Config) error {
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	app, err := application.New(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.StartJobs(); err != nil {
		return err
	}

	router, err := routes.SetupRoutes(app)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("Starting blog server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down blog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
