// Package carousel implements the category carousel: an explicit view state,
// pure transitions over it, and an instance type that owns the autoplay timer.
package carousel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

const (
	// DefaultInterval is the autoplay period when none is configured
	DefaultInterval = 5000 * time.Millisecond

	// BackdropElement and PanelElement identify click targets in modal mode
	BackdropElement = "carousel-backdrop"
	PanelElement    = "carousel-panel"
)

// ErrCategoryNotFound is returned when selecting a category the carousel does not have
var ErrCategoryNotFound = errors.New("category not found")

// Options configures a carousel instance
type Options struct {
	Autoplay     bool
	Interval     time.Duration
	InitialSlide int
	Modal        bool
	OnClose      func()
	Scroller     Scroller
	Logger       *zap.Logger
}

// DefaultOptions returns autoplay on with the default interval
func DefaultOptions() Options {
	return Options{
		Autoplay: true,
		Interval: DefaultInterval,
	}
}

// Carousel is one mounted carousel. All methods are safe for concurrent use;
// the autoplay timer fires on its own goroutine.
type Carousel struct {
	mu         sync.Mutex
	categories []models.Category
	opts       Options
	state      State
	timer      *time.Timer
	generation uint64
	closed     bool
	unmounted  bool
}

// New mounts a carousel over categories and arms autoplay when enabled.
// Items with a missing or malformed URL never become slides.
func New(categories []models.Category, opts Options) *Carousel {
	categories = media.Normalize(categories)
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scroller == nil {
		opts.Scroller = noopScroller{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Carousel{
		categories: categories,
		opts:       opts,
		state:      Initial(categories, opts.InitialSlide, opts.Autoplay),
	}

	c.mu.Lock()
	c.rearmLocked()
	c.mu.Unlock()

	return c
}

// State returns a copy of the current state
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Categories returns the categories the carousel was mounted with
func (c *Carousel) Categories() []models.Category {
	return c.categories
}

// Next advances one slide
func (c *Carousel) Next() {
	c.navigate(func(s State, count int) (State, bool) {
		return Next(s, count), count > 0
	})
}

// Previous steps back one slide
func (c *Carousel) Previous() {
	c.navigate(func(s State, count int) (State, bool) {
		return Previous(s, count), count > 0
	})
}

// Jump moves to a thumbnail's slide. It reports false when index is out of range.
func (c *Carousel) Jump(index int) bool {
	moved := false
	c.navigate(func(s State, count int) (State, bool) {
		s, moved = Jump(s, index, count)
		return s, moved
	})
	return moved
}

// navigate applies a transition, re-arms autoplay and asks the scroller to
// center the new slide. The scroller runs outside the lock.
func (c *Carousel) navigate(step func(State, int) (State, bool)) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	count := c.countLocked()
	next, ok := step(c.state, count)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.state = next
	c.rearmLocked()
	index, scroller := next.Index, c.opts.Scroller
	c.mu.Unlock()

	scroller.EnsureVisible(index, count)
}

// SelectCategory switches to the named category
func (c *Carousel) SelectCategory(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, category := range c.categories {
		if category.Name == name {
			c.state = SelectCategory(c.state, i, len(category.Items))
			c.rearmLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
}

// Hover pauses autoplay while the pointer is over the carousel
func (c *Carousel) Hover() {
	c.setAutoplay(false)
}

// Leave restores the configured autoplay setting
func (c *Carousel) Leave() {
	c.setAutoplay(c.opts.Autoplay)
}

func (c *Carousel) setAutoplay(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Autoplay == enabled {
		return
	}
	c.state = SetAutoplay(c.state, enabled)
	c.rearmLocked()
}

// SetInterval changes the autoplay period and restarts the timer
func (c *Carousel) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Interval = d
	c.rearmLocked()
}

// Close notifies the host that the carousel should be dismissed. The host
// hears about it once; Close reports false when the carousel was already
// closed or unmounted.
func (c *Carousel) Close() bool {
	c.mu.Lock()
	if c.closed || c.unmounted {
		c.mu.Unlock()
		return false
	}
	c.closed = true
	onClose := c.opts.OnClose
	c.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return true
}

// BackdropClick handles a click in modal mode. Only a click whose target is
// the backdrop itself closes the carousel; clicks bubbling up from the panel
// are ignored.
func (c *Carousel) BackdropClick(target, currentTarget string) bool {
	if !c.opts.Modal || target == "" || target != currentTarget {
		return false
	}
	return c.Close()
}

// Unmount stops the autoplay timer for good. Later calls are no-ops.
func (c *Carousel) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		return
	}
	c.unmounted = true
	c.stopLocked()
}

// Mounted reports whether Unmount has not been called yet
func (c *Carousel) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.unmounted
}

func (c *Carousel) countLocked() int {
	if c.state.Category >= len(c.categories) {
		return 0
	}
	return len(c.categories[c.state.Category].Items)
}

func (c *Carousel) stopLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// rearmLocked replaces the autoplay timer. A callback from a replaced timer
// sees a newer generation and does nothing.
func (c *Carousel) rearmLocked() {
	c.stopLocked()
	if c.unmounted || !c.state.Autoplay || c.countLocked() == 0 {
		return
	}
	generation := c.generation
	c.timer = time.AfterFunc(c.opts.Interval, func() {
		c.tick(generation)
	})
}

func (c *Carousel) tick(generation uint64) {
	c.mu.Lock()
	if generation != c.generation || c.unmounted {
		c.mu.Unlock()
		return
	}
	count := c.countLocked()
	c.state = Next(c.state, count)
	c.rearmLocked()
	index, scroller, logger := c.state.Index, c.opts.Scroller, c.opts.Logger
	c.mu.Unlock()

	logger.Debug("Autoplay advanced", zap.Int("index", index), zap.Int("count", count))
	scroller.EnsureVisible(index, count)
}
