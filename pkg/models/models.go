package models

// Product is a catalog entry whose images are grouped by category
type Product struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Category is an ordered group of images sharing a label
type Category struct {
	Name  string      `json:"name" yaml:"name"`
	Label string      `json:"label,omitempty" yaml:"label"`
	Items []MediaItem `json:"items" yaml:"-"`
}

// MediaItem is a single labeled image with an optional pre-rendered thumbnail
type MediaItem struct {
	Label     string  `json:"label" yaml:"label"`
	URL       string  `json:"url" yaml:"url"`
	Thumbnail *string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// ThumbnailURL returns the thumbnail when one exists and the full image otherwise
func (m MediaItem) ThumbnailURL() string {
	if m.Thumbnail != nil && *m.Thumbnail != "" {
		return *m.Thumbnail
	}
	return m.URL
}

// ImageCount returns the number of images across all categories
func (p Product) ImageCount() int {
	total := 0
	for _, c := range p.Categories {
		total += len(c.Items)
	}
	return total
}

// FirstImage returns the first image across categories in category order
func (p Product) FirstImage() (MediaItem, bool) {
	for _, c := range p.Categories {
		if len(c.Items) > 0 {
			return c.Items[0], true
		}
	}
	return MediaItem{}, false
}

// Tile represents a product in the gallery grid
type Tile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	HasImages bool   `json:"hasImages"`
	Count     int    `json:"count"`
}

// Index represents the grid page data
type Index struct {
	Title string
	Tiles []Tile
}
