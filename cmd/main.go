package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"battery_cycling/internal/config"
	"battery_cycling/internal/handlers"
	"battery_cycling/internal/logger"
	"battery_cycling/internal/repository"
	"battery_cycling/internal/repository/db"
	"battery_cycling/internal/server"
	"battery_cycling/internal/service"
	"battery_cycling/internal/simulation"
)

const shutdownTimeout = 10 * time.Second

// @title                       Battery cycling simulation API
// @version                     1.0
// @description                 Runs DFN cycling simulations and returns the requested output series.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	log := logger.Get(cfg.LogLevel, cfg.LogFormat)

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Runner: newRunner(cfg),
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Log: log.Named("service"),
	})
	if cfg.Auth.SigningKey == "" {
		log.Warnw("auth.signing_key not set; tokens will not survive a restart")
	}
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		LegacyErrorStatus: cfg.HTTP.LegacyErrorStatus,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	})

	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "solver", cfg.Solver.Command,
		"solver_timeout", cfg.Solver.Timeout, "solver_max_concurrent", cfg.Solver.MaxConcurrent)

	return waitForShutdown(srv, errCh, log)
}

// newRunner builds the runner over the configured bridge process.
func newRunner(cfg *config.Config) *simulation.Runner {
	solver := simulation.NewExecSolver(simulation.ExecConfig{
		Command: cfg.Solver.Command,
		Args:    cfg.Solver.Args,
		Env:     cfg.Solver.Env,
	})
	return simulation.NewRunner(solver,
		simulation.WithTimeout(cfg.Solver.Timeout),
		simulation.WithConcurrencyLimit(cfg.Solver.MaxConcurrent),
	)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "batsim.db")
		dbPath = "batsim.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine. The returned
// channel receives the error if the server stops on its own.
func runHTTPServer(srv *server.Server, cfg *config.Config, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		err := srv.Run(cfg.Port, handler.InitRoutes(), server.Options{
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("error starting server", "err", err)
			errCh <- err
		}
	}()
	return errCh
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
