package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"product-gallery/pkg/services"
)

// Command options
var (
	forceRegenerate bool
	workerCount     int
	clearOnly       bool
)

// newGenerateThumbnailsCmd creates a new command for generating image thumbnails
func newGenerateThumbnailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-thumbnails",
		Short: "Generate thumbnails for images without existing thumbnails",
		Long: `Generate thumbnails for bucket images that don't have one yet. Thumbnails are
stored under thumbnails/ with the same Product/Category/file path. Requires BUCKET_NAME.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if !cfg.UsesBucket() {
				return services.ErrNoBucket
			}
			return generateThumbnails(cmd)
		},
	}

	// Add command-specific flags
	cmd.Flags().BoolVarP(&forceRegenerate, "force", "f", false, "Force regeneration of all thumbnails, even if they exist")
	cmd.Flags().IntVarP(&workerCount, "workers", "w", 4, "Number of images processed concurrently")
	cmd.Flags().BoolVar(&clearOnly, "clear", false, "Delete every generated thumbnail instead of creating them")

	return cmd
}

// generateThumbnails creates (or clears) thumbnails and prints a summary
func generateThumbnails(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	svc := services.Default()

	if clearOnly {
		deleted, err := svc.ClearThumbnails(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d thumbnails\n", deleted)
		return nil
	}

	fmt.Fprintln(out, "Scanning bucket for images without thumbnails...")
	result, err := svc.GenerateThumbnails(cmd.Context(), forceRegenerate, workerCount, func(object string, done, total int) {
		fmt.Fprintf(out, "  [%d/%d] %s\n", done, total, object)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "  Total images: %d\n", result.Total)
	fmt.Fprintf(out, "  Skipped (thumbnail exists): %d\n", result.Skipped)
	fmt.Fprintf(out, "  Thumbnails successfully generated: %d\n", result.Processed)
	fmt.Fprintf(out, "  Errors: %d\n", result.Errors)
	return nil
}
