package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"product-gallery/pkg/services"
)

// newExportCmd creates a new command for exporting catalog data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "export [format]",
		Short:     "Export catalog data",
		Long:      `Export all products in the specified format. Supported formats: json, yaml.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"json", "yaml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(); err != nil {
				return err
			}

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			return exportData(cmd, format)
		},
	}
}

type exportedCategory struct {
	Name   string   `json:"name" yaml:"name"`
	Label  string   `json:"label" yaml:"label"`
	Images []string `json:"images" yaml:"images"`
}

type exportedProduct struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Categories []exportedCategory `json:"categories" yaml:"categories"`
}

// exportData writes the catalog in the shape the catalog file is read from
func exportData(cmd *cobra.Command, format string) error {
	products, err := services.GetProducts(cmd.Context())
	if err != nil {
		return err
	}

	exported := make([]exportedProduct, 0, len(products))
	for _, p := range products {
		ep := exportedProduct{ID: p.ID, Name: p.Name, Categories: []exportedCategory{}}
		for _, c := range p.Categories {
			ec := exportedCategory{Name: c.Name, Label: c.Label, Images: []string{}}
			for _, item := range c.Items {
				ec.Images = append(ec.Images, item.URL)
			}
			ep.Categories = append(ep.Categories, ec)
		}
		exported = append(exported, ep)
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(exported, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(map[string]interface{}{"products": exported})
	default:
		return fmt.Errorf("unsupported export format: %s (supported formats: json, yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
