package services

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrDuplicateProduct is returned when a catalog lists the same ID twice
var ErrDuplicateProduct = errors.New("duplicate product id")

type catalogFile struct {
	Products []catalogProduct `yaml:"products"`
}

type catalogProduct struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Categories []catalogCategory  `yaml:"categories"`
	Media      []models.MediaItem `yaml:"media"`
}

type catalogCategory struct {
	Name   string   `yaml:"name"`
	Label  string   `yaml:"label"`
	Images []string `yaml:"images"`
}

// ParseCatalog reads a YAML catalog. Products without an id are numbered by
// position. Invalid image URLs are dropped; empty categories are kept.
func ParseCatalog(data []byte) ([]models.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	seen := make(map[string]bool, len(file.Products))

	for i, p := range file.Products {
		id := p.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, id)
		}
		seen[id] = true

		categories := make([]models.Category, 0, len(p.Categories))
		for _, c := range p.Categories {
			label := c.Label
			if label == "" {
				label = c.Name
			}
			categories = append(categories, models.Category{
				Name:  c.Name,
				Label: label,
				Items: media.FromURLs(label, c.Images),
			})
		}

		categories = media.Merge(media.Normalize(categories), media.Group(p.Media))

		name := media.CleanText(p.Name)
		if name == "" {
			name = "Product " + id
		}

		products = append(products, models.Product{
			ID:         id,
			Name:       name,
			Categories: categories,
		})
	}

	return products, nil
}

// DefaultProducts returns the built-in catalog
func DefaultProducts() ([]models.Product, error) {
	return ParseCatalog(defaultCatalog)
}
