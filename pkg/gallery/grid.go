// Package gallery holds the product grid and the carousel it opens.
package gallery

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"product-gallery/pkg/carousel"
	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

// NoImageText is shown on tiles of products without images
const NoImageText = "No image available"

var (
	// ErrProductNotFound is returned when opening an unknown product
	ErrProductNotFound = errors.New("product not found")

	// ErrNoImages is returned when opening a product that has no images
	ErrNoImages = errors.New("product has no images")

	// ErrNothingOpen is returned when a carousel operation is requested while closed
	ErrNothingOpen = errors.New("no product is open")
)

// Grid owns which product, if any, is open in the carousel
type Grid struct {
	mu       sync.Mutex
	products []models.Product
	options  carousel.Options
	logger   *zap.Logger

	selected *models.Product
	open     *carousel.Carousel
	scroll   *carousel.ScrollRecorder
}

// NewGrid creates a grid over products. opts is applied to every carousel
// the grid opens; its OnClose and Scroller are replaced by the grid's own.
// Media is normalized up front so tiles and image counts only see valid URLs.
func NewGrid(products []models.Product, opts carousel.Options, logger *zap.Logger) *Grid {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make([]models.Product, len(products))
	for i, p := range products {
		p.Categories = media.Normalize(p.Categories)
		normalized[i] = p
	}
	return &Grid{
		products: normalized,
		options:  opts,
		logger:   logger,
	}
}

// Products returns the products in grid order
func (g *Grid) Products() []models.Product {
	return g.products
}

// Tiles renders one tile per product
func (g *Grid) Tiles() []models.Tile {
	return Tiles(g.products)
}

// Tiles renders one tile per product, showing its first image
func Tiles(products []models.Product) []models.Tile {
	tiles := make([]models.Tile, 0, len(products))
	for _, p := range products {
		tile := models.Tile{
			ID:    p.ID,
			Name:  p.Name,
			Count: p.ImageCount(),
		}
		if first, ok := p.FirstImage(); ok {
			tile.Image = first.ThumbnailURL()
			tile.HasImages = true
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// Open mounts a carousel for the product. Clicking a tile without images is
// a no-op reported as ErrNoImages. Opening another product first unmounts
// the current carousel.
func (g *Grid) Open(productID string) (*carousel.Carousel, error) {
	product, ok := g.find(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	if product.ImageCount() == 0 {
		return nil, ErrNoImages
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.selected != nil && g.selected.ID == product.ID && g.open != nil && g.open.Mounted() {
		return g.open, nil
	}
	g.unmountLocked()

	recorder := &carousel.ScrollRecorder{}
	opts := g.options
	opts.Scroller = recorder
	opts.Logger = g.logger
	var c *carousel.Carousel
	opts.OnClose = func() {
		g.closeIf(c)
	}
	c = carousel.New(product.Categories, opts)

	g.selected = &product
	g.open = c
	g.scroll = recorder

	g.logger.Debug("Opened product", zap.String("product", product.ID), zap.Int("images", product.ImageCount()))
	return c, nil
}

// Close unmounts the open carousel and clears the selection
func (g *Grid) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unmountLocked()
}

// closeIf closes only when c is still the open carousel, so a late close
// from a replaced carousel does not dismiss its successor
func (g *Grid) closeIf(c *carousel.Carousel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open != c {
		return
	}
	g.unmountLocked()
}

func (g *Grid) unmountLocked() {
	if g.open != nil {
		g.open.Unmount()
		g.logger.Debug("Closed product", zap.String("product", g.selected.ID))
	}
	g.open = nil
	g.selected = nil
	g.scroll = nil
}

// Current returns the open product and its carousel
func (g *Grid) Current() (models.Product, *carousel.Carousel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open == nil {
		return models.Product{}, nil, ErrNothingOpen
	}
	return *g.selected, g.open, nil
}

// Snapshot is the rendered state of the open carousel
type Snapshot struct {
	Product models.Product          `json:"-"`
	ID      string                  `json:"productId"`
	Name    string                  `json:"productName"`
	View    carousel.View           `json:"view"`
	Scroll  *carousel.ScrollRequest `json:"scroll,omitempty"`
}

// Snapshot renders the open carousel
func (g *Grid) Snapshot() (Snapshot, error) {
	g.mu.Lock()
	if g.open == nil {
		g.mu.Unlock()
		return Snapshot{}, ErrNothingOpen
	}
	product, c, recorder := *g.selected, g.open, g.scroll
	g.mu.Unlock()

	s := Snapshot{
		Product: product,
		ID:      product.ID,
		Name:    product.Name,
		View:    c.View(),
	}
	if req, ok := recorder.Last(); ok {
		s.Scroll = &req
	}
	return s, nil
}

func (g *Grid) find(id string) (models.Product, bool) {
	for _, p := range g.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
