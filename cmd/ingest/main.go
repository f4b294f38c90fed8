package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"threat_feeds/internal/config"
	"threat_feeds/internal/service"
	"threat_feeds/internal/source/aggregator"
	"threat_feeds/internal/source/misp"
	"threat_feeds/internal/source/ransomware"
	"threat_feeds/internal/storage/jsonfile"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	sourceName := flag.String("source", "all", "source to ingest: ransomware, misp, aggregator or all")
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

	victimStore := jsonfile.NewVictimStore(cfg.Ingest.OutputDir)
	actorStore := jsonfile.NewActorStore(cfg.Ingest.OutputDir)

	runs := map[string]func(context.Context) error{
		"ransomware": func(ctx context.Context) error {
			src := ransomware.New(ransomware.Config{
				URL:            cfg.Ingest.RansomwareURL,
				Timeout:        cfg.Ingest.Timeout,
				MaxAttempts:    cfg.Ingest.Retry.MaxAttempts,
				InitialBackoff: cfg.Ingest.Retry.InitialBackoff,
				MaxBackoff:     cfg.Ingest.Retry.MaxBackoff,
			}, logger)
			_, err := service.NewVictimIngest(src, victimStore, logger).Run(ctx)
			return err
		},
		"misp": func(ctx context.Context) error {
			src := misp.New(misp.Config{
				URL:            cfg.Ingest.MISPClusterURL,
				Timeout:        cfg.Ingest.Timeout,
				MaxAttempts:    cfg.Ingest.Retry.MaxAttempts,
				InitialBackoff: cfg.Ingest.Retry.InitialBackoff,
				MaxBackoff:     cfg.Ingest.Retry.MaxBackoff,
			}, logger)
			_, err := service.NewActorIngest(src, actorStore, logger).Run(ctx)
			return err
		},
		"aggregator": func(ctx context.Context) error {
			src := aggregator.New(cfg.Ingest.AggregatorExport, logger)
			_, err := service.NewActorIngest(src, actorStore, logger).Run(ctx)
			return err
		},
	}

	selected, err := selectSources(*sourceName, cfg.Ingest.ActorSource)
	if err != nil {
		logger.Error("invalid source selection", "error", err)
		os.Exit(1)
	}

	// A failed run aborts with a non-zero exit and leaves the previously
	// written artifacts untouched.
	for _, name := range selected {
		if err := runs[name](ctx); err != nil {
			logger.Error("ingest failed", "source", name, "error", err)
			os.Exit(1)
		}
	}
}

// selectSources resolves the -source flag. Both actor sources write the same
// threat-actors artifacts, so "all" runs ransomware plus the one actor source
// named in configuration rather than both back-to-back.
func selectSources(flagValue, actorSource string) ([]string, error) {
	switch flagValue {
	case "all":
		if actorSource != "misp" && actorSource != "aggregator" {
			return nil, fmt.Errorf("unknown actor source %q", actorSource)
		}
		return []string{"ransomware", actorSource}, nil
	case "ransomware", "misp", "aggregator":
		return []string{flagValue}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", flagValue)
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
