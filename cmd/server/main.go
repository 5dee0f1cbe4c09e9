// Package main provides the entry point for the goUserRegistry service.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/config"
	"github.com/chybatronik/goUserRegistry/internal/handlers"
	"github.com/chybatronik/goUserRegistry/internal/logging"
	"github.com/chybatronik/goUserRegistry/internal/middleware"
	"github.com/chybatronik/goUserRegistry/internal/service"
	"github.com/chybatronik/goUserRegistry/internal/store"
)

const serviceName = "goUserRegistry"

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

func main() {
	// Initialize configuration first
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger := setupStructuredLogging(appConfig)
	logStartupEvents(logger, appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userStore := store.NewUserStore()
	logger.Store("in-memory user store initialized")

	server, limiter := setupHTTPServer(appConfig, userStore, logger)
	go limiter.Run(ctx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Startup("HTTP server starting",
			"host", appConfig.Server.Host,
			"port", appConfig.Server.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Startup(serviceName + " service started successfully")

	select {
	case err := <-serverErr:
		logger.Error("HTTP server failed", logging.FieldError, err)
		log.Fatalf("FATAL: HTTP server failed: %v", err)
	case <-ctx.Done():
		logger.Startup("Received signal, initiating graceful shutdown")
	}

	gracefulShutdown(server, appConfig.Application.ShutdownTimeout, userStore, logger)
}

// setupHTTPServer configures the HTTP server and returns the rate limiter
// whose idle-visitor cleanup the caller must run.
func setupHTTPServer(appConfig *config.Config, userStore *store.UserStore, logger *logging.Logger) (*http.Server, *middleware.RateLimiter) {
	handler, limiter := newHandler(appConfig, userStore, logger)

	server := &http.Server{
		Addr:         appConfig.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
		IdleTimeout:  appConfig.Server.IdleTimeout,
	}

	return server, limiter
}

// newHandler builds the routes and the middleware chain around them
func newHandler(appConfig *config.Config, userStore *store.UserStore, logger *logging.Logger, opts ...service.Option) (http.Handler, *middleware.RateLimiter) {
	healthHandler := handlers.NewHealthHandler(serviceName, Version, logger)
	if appConfig.HealthCheck.Enabled {
		healthHandler.AddChecker(handlers.NewStoreHealthChecker(userStore, logger))
	}

	userService := service.NewUserService(userStore, opts...)
	userHandler := handlers.NewUserHandler(logger, userService)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	mux.Handle("/users", userHandler)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(serviceName + " is running"))
	})

	limiter := middleware.NewRateLimiter(
		appConfig.Application.RateLimitRequests,
		appConfig.Application.RateLimitBurst,
		logger,
	)

	// Outermost first: Recovery -> RequestID -> Logging -> RateLimit -> Router
	handler := http.Handler(mux)
	handler = limiter.Middleware(handler)
	handler = middleware.NewLoggingMiddleware(logger, handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler, limiter
}

// gracefulShutdown drains in-flight requests within the configured timeout
func gracefulShutdown(server *http.Server, shutdownTimeout time.Duration, userStore *store.UserStore, logger *logging.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Startup("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logging.FieldError, err)
	} else {
		logger.Startup("HTTP server shutdown completed")
	}

	// Users live only in memory and are gone after exit.
	logger.Store("discarding in-memory users", logging.FieldTotalUsers, userStore.Count())

	logger.Startup(serviceName + " service shutdown completed")
}

// setupStructuredLogging initializes the structured logger based on configuration
func setupStructuredLogging(cfg *config.Config) *logging.Logger {
	logger := logging.NewLogger(
		os.Stdout,
		cfg.Logging.Level,
		cfg.Logging.Format,
		serviceName,
		Version,
	)

	return logger.WithServiceContext()
}

// logStartupEvents logs startup information
func logStartupEvents(logger *logging.Logger, cfg *config.Config) {
	logger.Startup(serviceName+" service starting up",
		"version", Version,
		"build_time", BuildTime,
	)

	logger.Startup("configuration loaded successfully",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"server_port", cfg.Server.Port,
		"server_host", cfg.Server.Host,
		"health_check_enabled", cfg.HealthCheck.Enabled,
		"rate_limit_rpm", cfg.Application.RateLimitRequests,
		"rate_limit_burst", cfg.Application.RateLimitBurst,
	)
}
