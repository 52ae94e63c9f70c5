package carousel

import (
	"math"
	"sync"
)

// Scroller keeps the active thumbnail visible in the strip. Implementations
// must not call back into the carousel.
type Scroller interface {
	EnsureVisible(index, total int)
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func(index, total int)

// EnsureVisible calls f
func (f ScrollerFunc) EnsureVisible(index, total int) {
	f(index, total)
}

type noopScroller struct{}

func (noopScroller) EnsureVisible(int, int) {}

// ScrollLeft returns the strip scroll position that centers a thumbnail
// starting at offset within a container of the given width
func ScrollLeft(offset, thumbWidth, containerWidth float64) float64 {
	return math.Max(0, offset-containerWidth/2+thumbWidth/2)
}

// ScrollRequest is the most recent thumbnail the strip was asked to center
type ScrollRequest struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// ScrollRecorder remembers the last scroll request so a renderer can apply it
type ScrollRecorder struct {
	mu   sync.Mutex
	last *ScrollRequest
}

// EnsureVisible records the request
func (r *ScrollRecorder) EnsureVisible(index, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &ScrollRequest{Index: index, Total: total}
}

// Last returns the most recent request, if any
func (r *ScrollRecorder) Last() (ScrollRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return ScrollRequest{}, false
	}
	return *r.last, true
}
