package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"product-gallery/cmd"
	"product-gallery/pkg/config"
	"product-gallery/pkg/logging"
	"product-gallery/pkg/services"
)

func main() {
	// Load configuration
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize services
	services.InitService(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server
	if err := cmd.ServeWebsite(ctx, cfg, logger); err != nil {
		logger.Sugar().Errorf("Server error: %v", err)
		stop()
		os.Exit(1)
	}
}
