package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vinted-scanner/api"
	"vinted-scanner/config"
	"vinted-scanner/notify"
	"vinted-scanner/scraper/vinted"
	"vinted-scanner/services"
	"vinted-scanner/storage"
	"vinted-scanner/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	logger.Info("=== Vinted bundle scanner starting ===",
		"base_url", cfg.BaseURL,
		"fetch_mode", cfg.FetchMode,
		"score_mode", cfg.ScoreMode)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		logger.Error("failed to load rules", "error", err)
		os.Exit(1)
	}

	classifier, err := services.NewClassifier(rules)
	if err != nil {
		logger.Error("failed to compile classifier rules", "error", err)
		os.Exit(1)
	}
	scorer := services.NewScorer(rules)

	fetcher, err := vinted.NewFetcher(cfg)
	if err != nil {
		logger.Error("failed to create fetcher", "error", err)
		os.Exit(1)
	}

	seen := utils.NewSeenSet()
	pipeline := services.NewPipeline(classifier, scorer, seen, cfg.ScoreMode, logger)

	var sinks []notify.Sink
	if cfg.DiscordToken != "" && cfg.DiscordChannel != "" {
		discord, err := notify.NewDiscordSink(cfg.DiscordToken, cfg.DiscordChannel)
		if err != nil {
			logger.Error("failed to create Discord sink", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, discord)
		logger.Info("Discord notifications enabled", "channel", cfg.DiscordChannel)
	} else {
		logger.Warn("no Discord credentials configured, logging notifications instead")
		sinks = append(sinks, notify.NewLogSink(logger))
	}

	var archive storage.AlertWriter
	switch {
	case cfg.PostgresDSN != "":
		pg, err := storage.NewPostgresWriter(cfg.PostgresDSN, logger)
		if err != nil {
			logger.Error("failed to connect to PostgreSQL archive", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		archive = pg
		logger.Info("alert archive: PostgreSQL")
	case cfg.CSVArchivePath != "":
		csvWriter, err := storage.NewCSVWriter(cfg.CSVArchivePath)
		if err != nil {
			logger.Error("failed to create CSV archive", "error", err)
			os.Exit(1)
		}
		defer csvWriter.Close()
		archive = csvWriter
		logger.Info("alert archive: CSV", "path", cfg.CSVArchivePath)
	}

	settings := config.NewSettings(50, 10*time.Minute)

	// One worker: fetches stay strictly sequential and rate-limited even
	// when an ad-hoc check arrives mid-pass.
	pool := utils.NewWorkerPool(1, cfg.RateLimitMs)

	scanner := services.NewScanner(settings, fetcher, pipeline, pool, sinks, archive, cfg.BaseURL, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	handlers := api.NewHandlers(settings, seen, scanner, logger)
	server := api.NewServer(cfg.ListenAddr, handlers, logger)

	go scanner.Run(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		logger.Error("admin API failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shut down cleanly")
}
