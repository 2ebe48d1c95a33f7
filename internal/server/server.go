// Package server boots the storefront HTTP API: configuration, MongoDB,
// Redis, disk storage, the middleware stack, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/novastreet/storefront/app/routes"
	"github.com/novastreet/storefront/config"
	"github.com/novastreet/storefront/pkg/cache"
	"github.com/novastreet/storefront/pkg/database"
	"github.com/novastreet/storefront/pkg/logger"
	"github.com/novastreet/storefront/pkg/metrics"
	"github.com/novastreet/storefront/pkg/middleware"
	"github.com/novastreet/storefront/pkg/reqid"
	"github.com/novastreet/storefront/pkg/router"
	"github.com/novastreet/storefront/pkg/session"
	"github.com/novastreet/storefront/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// BuildRouter assembles the middleware stack and the full route table.
// Split out from Start so the routes CLI command and end-to-end tests can
// build the handler without binding a port.
func BuildRouter() *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	routes.Register(r)

	r.Handle("/metrics", metrics.Handler())
	r.Handle("/uploads/*", http.FileServer(http.Dir(storage.LocalRoot())))

	return r
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	cache.Connect()
	storage.Connect()

	var mongoLogs *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		mongoLogs = logger.NewMongoHandler(database.Collection(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoLogs))
	}

	r := BuildRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if mongoLogs != nil {
		mongoLogs.Close()
	}
	return nil
}
