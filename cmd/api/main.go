package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "crypto-mood/docs" // swagger docs
	"crypto-mood/internal/config"
	"crypto-mood/internal/infra/cache"
	"crypto-mood/internal/infra/classifier"
	"crypto-mood/internal/infra/provider"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/tracing"
	"crypto-mood/internal/usecase/aggregate"
	"crypto-mood/internal/usecase/mood"

	hhttp "crypto-mood/internal/handler/http"
	"crypto-mood/internal/handler/http/cryptodata"
	"crypto-mood/internal/handler/http/middleware"
	"crypto-mood/internal/handler/http/requestid"
)

// @title           Crypto Mood API
// @version         1.0
// @description     Crypto news aggregation with headline sentiment and an overall market mood.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

func main() {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	version := getVersion()
	handler, store := setupServer(ctx, logger, cfg, version)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error("failed to close cache", slog.Any("error", err))
			}
		}()
	}

	runServer(ctx, logger, cfg.Server, handler, version)
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// setupServer builds the pipeline and returns the root handler with all
// middleware applied.
func setupServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, version string) (http.Handler, cache.Cache) {
	providers := provider.FromConfig(cfg.Providers, logger)
	aggregator := aggregate.NewService(logger, providers...)
	cls := classifier.FromConfig(cfg.Classifier, logger)
	moodSvc := mood.NewService(aggregator, cls, logger)

	store := cache.FromConfig(ctx, cfg.Cache, logger)
	logger.Info("response cache initialized",
		slog.String("backend", store.Backend()),
		slog.Duration("ttl", cfg.Cache.TTL))

	mux := http.NewServeMux()
	cryptodata.Register(mux, moodSvc, logger,
		middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins, logger)),
		middleware.Cache(store, logger),
	)
	mux.Handle("/health", &hhttp.HealthHandler{
		Providers:  provider.Configured(cfg.Providers),
		Classifier: cls,
		Cache:      store,
		Version:    version,
		Logger:     logger,
	})
	mux.Handle("/live", hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.Server.AllowedOrigins))

	handler := hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
	)
	return handler, store
}

func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, version string) {
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
