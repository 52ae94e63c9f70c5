package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/config"
	"product-gallery/pkg/gallery"
	"product-gallery/pkg/handlers"
	"product-gallery/pkg/services"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the product grid and carousels via HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return ServeWebsite(ctx, cfg, logger)
		},
	}
}

// CarouselOptions maps configuration onto the options every opened carousel gets
func CarouselOptions(cfg *config.Config) carousel.Options {
	return carousel.Options{
		Autoplay:     cfg.Autoplay,
		Interval:     cfg.AutoplayInterval,
		InitialSlide: cfg.InitialSlide,
		Modal:        true,
	}
}

// ServeWebsite runs the web server until ctx is cancelled
func ServeWebsite(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	svc := services.Default()

	// fail fast on a broken catalog instead of on the first visitor
	if _, err := svc.GetProducts(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	opts := CarouselOptions(cfg)
	sessions := services.NewSessionStore(cfg.SessionTTL, func() (*gallery.Grid, error) {
		products, err := svc.GetProducts(context.Background())
		if err != nil {
			return nil, err
		}
		return gallery.NewGrid(products, opts, logger), nil
	}, logger)
	defer sessions.Close()

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           handlers.NewServer(cfg, sessions, svc, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
