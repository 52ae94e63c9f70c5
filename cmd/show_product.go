package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/services"
)

// newShowProductCmd creates a new command for showing product details
func newShowProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-product [id]",
		Short: "Show the images of a product",
		Long:  `Show every category of a product and the images in it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(); err != nil {
				return err
			}
			return showProduct(cmd, args[0])
		},
	}
}

// showProduct displays details about a specific product
func showProduct(cmd *cobra.Command, id string) error {
	product, err := services.GetProduct(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Product: %s (%s)\n", product.Name, product.ID)
	fmt.Fprintf(out, "Images: %d\n", product.ImageCount())
	fmt.Fprintln(out, "================")

	for _, category := range product.Categories {
		fmt.Fprintf(out, "%s (%d)\n", category.Label, len(category.Items))
		if len(category.Items) == 0 {
			fmt.Fprintf(out, "   %s\n", carousel.PlaceholderText)
		}
		for i, item := range category.Items {
			fmt.Fprintf(out, "%d. %s\n", i+1, item.URL)
			if thumb := item.ThumbnailURL(); thumb != item.URL {
				fmt.Fprintf(out, "   Thumbnail: %s\n", thumb)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
