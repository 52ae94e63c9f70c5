package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"product-gallery/pkg/gallery"
	"product-gallery/pkg/services"
)

// newListProductsCmd creates a new command for listing products
func newListProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-products",
		Short: "List all products",
		Long:  `List all products with their image counts, in grid order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(); err != nil {
				return err
			}
			return listProducts(cmd)
		},
	}
}

// listProducts displays every product tile
func listProducts(cmd *cobra.Command) error {
	products, err := services.GetProducts(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Products:")
	fmt.Fprintln(out, "=========")

	for _, tile := range gallery.Tiles(products) {
		fmt.Fprintf(out, "%s  %s\n", tile.ID, tile.Name)
		if tile.HasImages {
			fmt.Fprintf(out, "  Images: %d\n", tile.Count)
		} else {
			fmt.Fprintf(out, "  %s\n", gallery.NoImageText)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Total: %d products\n", len(products))
	return nil
}
