package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "blogforge/internal/handler/http"
	"blogforge/internal/handler/http/middleware"
	"blogforge/internal/handler/http/requestid"
	pgRepo "blogforge/internal/infra/adapter/persistence/postgres"
	"blogforge/internal/infra/db"
	"blogforge/internal/infra/generator"
	"blogforge/internal/infra/imagesearch"
	artUC "blogforge/internal/usecase/article"
	"blogforge/pkg/config"
	"blogforge/pkg/ratelimit"
)

func main() {
	logger := initLogger()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	gen := initGenerator(logger)
	searcher := initImageSearch(logger)
	svc := artUC.NewService(pgRepo.NewArticleRepo(database), gen, searcher)

	handler, store, window := setupServer(logger, database, svc)
	startStoreCleanup(store, window)

	runServer(logger, handler)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initGenerator builds the configured language model client. The server
// refuses to start without a usable generator since every generation
// endpoint depends on it.
func initGenerator(logger *slog.Logger) generator.Generator {
	settings := generator.SettingsFromEnv()

	keyVar := "OPENAI_API_KEY"
	if settings.Provider == generator.ProviderClaude {
		keyVar = "ANTHROPIC_API_KEY"
	}
	apiKey := os.Getenv(keyVar)
	if apiKey == "" {
		logger.Error("generator API key must be set", slog.String("env", keyVar))
		os.Exit(1)
	}

	gen, err := generator.New(settings, apiKey)
	if err != nil {
		logger.Error("failed to configure generator", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("generator configured",
		slog.String("provider", settings.Provider),
		slog.String("model", settings.Model),
		slog.Duration("timeout", settings.Timeout))
	return gen
}

// initImageSearch builds the Unsplash client. A missing access key disables
// illustration lookup; articles are then stored without images.
func initImageSearch(logger *slog.Logger) imagesearch.Searcher {
	accessKey := os.Getenv("UNSPLASH_ACCESS_KEY")
	if accessKey == "" {
		logger.Warn("UNSPLASH_ACCESS_KEY not set, articles will have no images")
		return nil
	}
	return imagesearch.NewUnsplashClient(accessKey)
}

// setupServer builds the router and middleware chain. It returns the final
// handler along with the rate limit store and window for periodic cleanup.
func setupServer(logger *slog.Logger, database *sql.DB, svc *artUC.Service) (http.Handler, *ratelimit.InMemoryRateLimitStore, time.Duration) {
	// Generation rate limiter: sliding window per client IP
	rlConfig := middleware.GenerationRateLimiterConfigFromEnv()
	store := ratelimit.NewInMemoryRateLimitStore(ratelimit.InMemoryStoreConfig{})
	algorithm := ratelimit.NewSlidingWindowAlgorithm(&ratelimit.SystemClock{})
	genLimiter := middleware.NewGenerationRateLimiter(rlConfig, store, algorithm, hhttp.ExtractIP)

	if rlConfig.Enabled {
		logger.Info("generation rate limiting enabled",
			slog.Int("limit", rlConfig.Limit),
			slog.Duration("window", rlConfig.Window))
	} else {
		logger.Warn("generation rate limiting is DISABLED - not recommended for production")
	}

	mux := hhttp.NewRouter(database, svc, genLimiter.Middleware(), getVersion(), logger)

	// CORS configuration from ALLOWED_ORIGINS
	corsConfig := middleware.LoadCORSConfig()
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}
	if corsConfig.OpenMode {
		logger.Warn("CORS allow-list not configured, admitting all origins")
	}

	// Middleware chain, applied in reverse order (innermost to outermost):
	// CORS -> Request ID -> Recovery -> Logging -> Body Limit -> Metrics -> routes
	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.LimitRequestBody(1 << 20)(handler) // 1MB limit
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = requestid.Middleware(handler)
	handler = middleware.CORS(*corsConfig)(handler)

	return handler, store, rlConfig.Window
}

// startStoreCleanup prunes expired rate limit entries in the background so
// idle client keys do not accumulate.
func startStoreCleanup(store *ratelimit.InMemoryRateLimitStore, window time.Duration) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := store.Cleanup(ctx, time.Now().Add(-2*window)); err != nil {
				slog.Warn("rate limit store cleanup failed", slog.Any("error", err))
			}
			cancel()
		}
	}()
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// runServer starts the HTTP server and blocks until shutdown.
// It handles SIGINT and SIGTERM for graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler) {
	port := config.GetEnvString("PORT", "8080")

	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
		// Generation requests stream for a long time; only bound the time
		// spent reading the (small) request
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	}
}
