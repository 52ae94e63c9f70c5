package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/models"
	"product-gallery/pkg/services"
)

// Command options
var (
	playDuration time.Duration
	playInterval time.Duration
	playCategory string
)

// newPlayCmd creates a command that runs a product carousel in the terminal
func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [id]",
		Short: "Autoplay a product carousel in the terminal",
		Long: `Mount the carousel of a product and print every slide autoplay moves to,
until the duration elapses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			product, err := services.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			interval := playInterval
			if interval <= 0 {
				interval = cfg.AutoplayInterval
			}

			opts := carousel.Options{
				Autoplay:     true,
				Interval:     interval,
				InitialSlide: cfg.InitialSlide,
				Logger:       logger,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", product.Name)
			return play(cmd.OutOrStdout(), product.Categories, opts, playCategory, playDuration)
		},
	}

	cmd.Flags().DurationVarP(&playDuration, "duration", "d", 30*time.Second, "How long to play before stopping")
	cmd.Flags().DurationVarP(&playInterval, "interval", "i", 0, "Autoplay interval (defaults to AUTOPLAY_INTERVAL_MS)")
	cmd.Flags().StringVar(&playCategory, "category", "", "Category to start in")

	return cmd
}

// play mounts a carousel, prints the current slide, then every slide the
// autoplay timer advances to until duration elapses
func play(out io.Writer, categories []models.Category, opts carousel.Options, category string, duration time.Duration) error {
	moved := make(chan struct{}, 1)
	opts.Scroller = carousel.ScrollerFunc(func(int, int) {
		select {
		case moved <- struct{}{}:
		default:
		}
	})

	c := carousel.New(categories, opts)
	defer c.Unmount()

	if category != "" {
		if err := c.SelectCategory(category); err != nil {
			return err
		}
	}
	printSlide(out, c.View())

	deadline := time.NewTimer(duration)
	defer deadline.Stop()

	for {
		select {
		case <-moved:
			printSlide(out, c.View())
		case <-deadline.C:
			return nil
		}
	}
}

func printSlide(out io.Writer, v carousel.View) {
	if !v.HasImage {
		fmt.Fprintf(out, "[%s] %s\n", v.CategoryLabel, v.Placeholder)
		return
	}
	fmt.Fprintf(out, "[%s] %s  %s\n", v.CategoryLabel, v.Position, v.ImageURL)
}
