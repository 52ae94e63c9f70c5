package carousel

import (
	"fmt"

	"product-gallery/pkg/media"
)

// PlaceholderText is shown in place of the main image for an empty category
const PlaceholderText = "No images in this category."

// View is everything a renderer needs to draw the carousel
type View struct {
	Category       string           `json:"category"`
	CategoryLabel  string           `json:"categoryLabel"`
	Index          int              `json:"index"`
	Count          int              `json:"count"`
	Position       string           `json:"position,omitempty"`
	HasImage       bool             `json:"hasImage"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	ImageAlt       string           `json:"imageAlt,omitempty"`
	Placeholder    string           `json:"placeholder,omitempty"`
	ShowNavigation bool             `json:"showNavigation"`
	ShowThumbnails bool             `json:"showThumbnails"`
	Thumbnails     []Thumbnail      `json:"thumbnails"`
	Categories     []CategoryButton `json:"categories"`
	Autoplay       bool             `json:"autoplay"`
	IntervalMs     int64            `json:"intervalMs"`
	Modal          bool             `json:"modal"`
}

// Thumbnail is one button in the strip. Index is the slide it jumps to.
type Thumbnail struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Active bool   `json:"active"`
}

// CategoryButton is one selectable category label
type CategoryButton struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// View renders the current state
func (c *Carousel) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Autoplay:   c.state.Autoplay,
		IntervalMs: c.opts.Interval.Milliseconds(),
		Modal:      c.opts.Modal,
		Thumbnails: []Thumbnail{},
		Categories: make([]CategoryButton, 0, len(c.categories)),
	}

	for i, category := range c.categories {
		v.Categories = append(v.Categories, CategoryButton{
			Name:   category.Name,
			Label:  fmt.Sprintf("%s (%d)", category.Label, len(category.Items)),
			Count:  len(category.Items),
			Active: i == c.state.Category,
		})
	}

	if c.state.Category >= len(c.categories) {
		v.Placeholder = PlaceholderText
		return v
	}

	category := c.categories[c.state.Category]
	items := category.Items
	v.Category = category.Name
	v.CategoryLabel = category.Label
	v.Count = len(items)

	if len(items) == 0 {
		v.Placeholder = PlaceholderText
		return v
	}

	index := clamp(c.state.Index, len(items))
	current := items[index]
	v.Index = index
	v.Position = fmt.Sprintf("%d / %d", index+1, len(items))
	v.HasImage = true
	v.ImageURL = current.URL
	v.ImageAlt = current.Label
	if v.ImageAlt == "" {
		v.ImageAlt = fmt.Sprintf("Slide %d", index+1)
	}
	v.ShowNavigation = true
	v.ShowThumbnails = len(items) > 1

	if v.ShowThumbnails {
		for i, item := range items {
			thumb := item.ThumbnailURL()
			if !media.IsValidURL(thumb) {
				continue
			}
			alt := item.Label
			if alt == "" {
				alt = fmt.Sprintf("Thumbnail %d", i+1)
			}
			v.Thumbnails = append(v.Thumbnails, Thumbnail{
				Index:  i,
				URL:    thumb,
				Alt:    alt,
				Active: i == index,
			})
		}
	}

	return v
}
