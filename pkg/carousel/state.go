package carousel

import "product-gallery/pkg/models"

// State is the complete view state of one carousel instance
type State struct {
	Category int  `json:"category"`
	Index    int  `json:"index"`
	Autoplay bool `json:"autoplay"`
}

// DefaultCategory returns the first category holding images, or 0 when every
// category is empty
func DefaultCategory(categories []models.Category) int {
	for i, c := range categories {
		if len(c.Items) > 0 {
			return i
		}
	}
	return 0
}

// Initial builds the state a freshly mounted carousel starts in
func Initial(categories []models.Category, initialSlide int, autoplay bool) State {
	category := DefaultCategory(categories)
	count := 0
	if category < len(categories) {
		count = len(categories[category].Items)
	}
	return State{
		Category: category,
		Index:    clamp(initialSlide, count),
		Autoplay: autoplay,
	}
}

// Next advances one slide, wrapping past the end
func Next(s State, count int) State {
	if count <= 0 {
		return s
	}
	s.Index = (s.Index + 1) % count
	return s
}

// Previous steps back one slide, wrapping to the last slide from 0
func Previous(s State, count int) State {
	if count <= 0 {
		return s
	}
	s.Index = (s.Index - 1 + count) % count
	return s
}

// Jump moves straight to index. It reports false and leaves the state alone
// when index is outside the category.
func Jump(s State, index, count int) (State, bool) {
	if index < 0 || index >= count {
		return s, false
	}
	s.Index = index
	return s, true
}

// SelectCategory switches category. The index survives when it still fits
// the new category and snaps to 0 otherwise.
func SelectCategory(s State, category, count int) State {
	s.Category = category
	s.Index = clamp(s.Index, count)
	return s
}

// SetAutoplay toggles automatic advancement
func SetAutoplay(s State, enabled bool) State {
	s.Autoplay = enabled
	return s
}

func clamp(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}
