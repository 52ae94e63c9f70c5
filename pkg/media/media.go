// Package media normalizes raw image entries before they reach the carousel.
//
// Entries whose URL is not an absolute http or https URL are dropped without
// error. A URL field may hold several comma separated URLs, each of which
// becomes its own item under the same label.
package media

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"product-gallery/pkg/models"
)

var textPolicy = bluemonday.StrictPolicy()

// IsValidURL reports whether raw is an absolute http(s) URL with a host
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// SplitURLs splits a comma joined URL field. Only a comma followed by a new
// scheme starts another URL; commas inside a query string are kept.
func SplitURLs(field string) []string {
	var urls []string
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != ',' {
			continue
		}
		rest := strings.TrimLeft(field[i+1:], " \t")
		if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
			urls = appendTrimmed(urls, field[start:i])
			start = i + 1
		}
	}
	return appendTrimmed(urls, field[start:])
}

func appendTrimmed(urls []string, s string) []string {
	s = strings.Trim(strings.TrimSpace(s), ",")
	if s != "" {
		urls = append(urls, s)
	}
	return urls
}

// CleanText strips any markup from a display string. The result is plain
// text; escaping is left to the template.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// Expand turns every item into one item per URL in its URL field and drops
// invalid URLs. Applying Expand to its own output returns the same items.
func Expand(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		for _, u := range SplitURLs(item.URL) {
			if !IsValidURL(u) {
				continue
			}
			expanded := models.MediaItem{
				Label: CleanText(item.Label),
				URL:   u,
			}
			if item.Thumbnail != nil && IsValidURL(*item.Thumbnail) {
				thumb := *item.Thumbnail
				expanded.Thumbnail = &thumb
			}
			out = append(out, expanded)
		}
	}
	return out
}

// FromURLs builds items sharing one label from plain URLs
func FromURLs(label string, urls []string) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(urls))
	for _, u := range urls {
		items = append(items, models.MediaItem{Label: label, URL: u})
	}
	return Expand(items)
}

// Group expands items and groups them by label. Categories appear in the
// order their label is first seen.
func Group(items []models.MediaItem) []models.Category {
	var categories []models.Category
	index := make(map[string]int)

	for _, item := range Expand(items) {
		i, ok := index[item.Label]
		if !ok {
			i = len(categories)
			index[item.Label] = i
			categories = append(categories, models.Category{
				Name:  item.Label,
				Label: item.Label,
				Items: []models.MediaItem{},
			})
		}
		categories[i].Items = append(categories[i].Items, item)
	}

	return categories
}

// Normalize drops invalid entries from every category and guarantees a
// non-nil item slice. Category order is preserved and empty categories stay.
func Normalize(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		items := Expand(c.Items)
		name := CleanText(c.Name)
		label := CleanText(c.Label)
		if label == "" && len(items) > 0 {
			label = items[0].Label
		}
		if label == "" {
			label = name
		}
		out = append(out, models.Category{Name: name, Label: label, Items: items})
	}
	return out
}

// Merge appends the groups of extra to categories, joining groups that share
// a name
func Merge(categories []models.Category, extra []models.Category) []models.Category {
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c.Name] = i
	}
	for _, c := range extra {
		if i, ok := index[c.Name]; ok {
			categories[i].Items = append(categories[i].Items, c.Items...)
			continue
		}
		index[c.Name] = len(categories)
		categories = append(categories, c)
	}
	return categories
}
