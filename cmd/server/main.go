package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"threat_feeds/internal/config"
	"threat_feeds/internal/newsfeed"
	"threat_feeds/internal/server"
	"threat_feeds/internal/storage/jsonfile"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	actorStore := jsonfile.NewActorStore(cfg.Server.DataDir)
	victimStore := jsonfile.NewVictimStore(cfg.Server.DataDir)
	newsStore := newsfeed.NewStore()

	if cfg.Server.LiveFeedURL != "" {
		loader := newsfeed.NewLoader(newsfeed.Config{
			FeedURL:      cfg.Server.LiveFeedURL,
			BuildTimeURL: cfg.Server.BuildTimeURL,
			Timeout:      cfg.Server.Timeout,
		}, logger)
		refresher := newsfeed.NewRefresher(loader, newsStore, cfg.Server.RefreshInterval, logger)
		go func() {
			if err := refresher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("refresher error", "error", err)
			}
		}()
	} else {
		logger.Warn("live feed url not configured, news endpoints will return 503")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(cfg.Server.DataDir, actorStore, victimStore, newsStore, cfg.News, logger).Router(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		logger.Info("http server started", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
