package main

import (
	"context"
	"os"

	"daraz-scraper/config"
	"daraz-scraper/driver"
	"daraz-scraper/scraper/daraz"
	"daraz-scraper/services"
	"daraz-scraper/storage"
	"daraz-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Daraz Review Scraper starting ===")
	logger.Info("Config — pages: %d..%d | output: %s | nav timeout: %ds | retries: %d",
		cfg.StartPage, cfg.EndPage, cfg.CSVOutputPath, cfg.NavTimeoutSec, cfg.MaxNavAttempts)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}

	var sink storage.RowWriter = csvWriter
	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d")
			_ = csvWriter.Close()
			os.Exit(1)
		}
		sink = storage.NewTeeWriter(csvWriter, pgWriter, logger)
	}
	defer sink.Close()

	chrome, err := driver.NewChrome(driver.ChromeOptions{
		BinaryPath: cfg.ChromeBin,
		Headless:   cfg.Headless,
		NavTimeout: cfg.NavTimeout(),
	})
	if err != nil {
		logger.Error("Failed to start browser: %v", err)
		_ = sink.Close()
		os.Exit(1)
	}
	defer chrome.Close()

	scraper := daraz.New(cfg, logger, chrome, sink)
	stats, err := scraper.Run(context.Background())
	if err != nil {
		logger.Error("Scrape aborted: %v", err)
		services.PrintRunStats(stats)
		_ = chrome.Close()
		_ = sink.Close()
		os.Exit(1)
	}

	services.PrintRunStats(stats)
	logger.Info("Done. Reviews → %s", cfg.CSVOutputPath)
}
