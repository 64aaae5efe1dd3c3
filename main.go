package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"quote-generator-api/config"
	"quote-generator-api/services/forwarder"
	"quote-generator-api/services/quote"
	"quote-generator-api/services/webhook"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Load(logger)
	level.Set(config.ParseLevel(cfg.Logging.Level))

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	sessionTTL := time.Duration(cfg.Session.MaxAge) * time.Second

	var (
		redisClient *redis.Client
		backend     webhook.Backend
	)
	if cfg.Redis.URL != "" {
		client, err := webhook.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return errors.Wrap(err, "failed to connect to Redis")
		}
		defer client.Close()
		logger.Info("connected to Redis")
		redisClient = client
		backend = webhook.NewRedisBackend(client, sessionTTL)
	} else {
		logger.Info("REDIS_URL not set, keeping webhook sessions in memory")
		backend = webhook.NewMemoryBackend(sessionTTL)
	}

	store := webhook.NewStore(
		webhook.NewCookieStore(cfg.Session),
		cfg.Session.Name,
		backend,
		logger.With("component", "webhook_store"),
	)
	fwd := forwarder.New(
		forwarder.NewHTTPClient(cfg.Webhook.Timeout),
		logger.With("component", "forwarder"),
	)
	pdf := quote.NewPDFGenerator(cfg.PDF.FontPath, logger.With("component", "pdf"))

	router := newRouter(cfg, logger, store, fwd, pdf, redisClient)

	listener, port, err := listenFirstAvailable(cfg.Server.Port, cfg.Server.PortAttempts, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", port, "environment", cfg.Environment)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	logger.Info("server exited properly")
	return nil
}

// listenFirstAvailable binds the first free port in [start, start+attempts).
func listenFirstAvailable(start, attempts int, logger *slog.Logger) (net.Listener, int, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for port := start; port < start+attempts; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
		if err == nil {
			if port != start {
				logger.Warn("configured port busy, using fallback", "configured", start, "port", port)
			}
			return ln, port, nil
		}
		logger.Debug("port unavailable", "port", port, "error", err)
		lastErr = err
	}
	return nil, 0, errors.Wrapf(lastErr, "no available port in range %d-%d", start, start+attempts-1)
}
