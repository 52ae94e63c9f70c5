package carousel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

const (
	url1 = "https://images.example.com/1.jpg"
	url2 = "https://images.example.com/2.jpg"
	url3 = "https://images.example.com/3.jpg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func vehicleMedia() []models.Category {
	return []models.Category{
		{Name: "auction", Label: "Subasta", Items: media.FromURLs("Subasta", []string{url1, url2})},
		{Name: "base", Label: "AutoPAQ", Items: media.FromURLs("AutoPAQ", []string{url3})},
		{Name: "port", Label: "Puerto", Items: []models.MediaItem{}},
	}
}

func mount(t *testing.T, categories []models.Category, opts Options) *Carousel {
	t.Helper()
	c := New(categories, opts)
	t.Cleanup(c.Unmount)
	return c
}

func TestNavigationScenario(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{Autoplay: false})

	assert.Equal(t, url1, c.View().ImageURL)

	c.Next()
	assert.Equal(t, url2, c.View().ImageURL)

	c.Next()
	assert.Equal(t, url1, c.View().ImageURL)

	require.NoError(t, c.SelectCategory("base"))
	v := c.View()
	assert.Equal(t, url3, v.ImageURL)
	assert.Equal(t, 0, v.Index)
}

func TestEmptyCategoryShowsPlaceholder(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{Autoplay: false})

	require.NoError(t, c.SelectCategory("port"))
	v := c.View()
	assert.False(t, v.HasImage)
	assert.Empty(t, v.ImageURL)
	assert.Equal(t, PlaceholderText, v.Placeholder)
	assert.False(t, v.ShowNavigation)
	assert.False(t, v.ShowThumbnails)

	c.Next()
	c.Previous()
	assert.False(t, c.Jump(0))
	assert.Equal(t, 0, c.State().Index)

	require.NoError(t, c.SelectCategory("auction"))
	assert.Equal(t, url1, c.View().ImageURL)
}

func TestSelectUnknownCategory(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{})
	err := c.SelectCategory("garage")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestSwitchPreservesIndexWhenInRange(t *testing.T) {
	categories := []models.Category{
		{Name: "a", Items: media.FromURLs("a", []string{url1, url2, url3})},
		{Name: "b", Items: media.FromURLs("b", []string{url1, url2})},
		{Name: "c", Items: media.FromURLs("c", []string{url3})},
	}
	c := mount(t, categories, Options{})

	require.True(t, c.Jump(1))
	require.NoError(t, c.SelectCategory("b"))
	assert.Equal(t, 1, c.State().Index)

	require.NoError(t, c.SelectCategory("c"))
	assert.Equal(t, 0, c.State().Index)
}

func TestNavigationRequestsScroll(t *testing.T) {
	var recorder ScrollRecorder
	c := mount(t, vehicleMedia(), Options{Scroller: &recorder})

	_, ok := recorder.Last()
	assert.False(t, ok)

	c.Next()
	last, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, ScrollRequest{Index: 1, Total: 2}, last)

	c.Previous()
	last, _ = recorder.Last()
	assert.Equal(t, 0, last.Index)

	require.True(t, c.Jump(1))
	last, _ = recorder.Last()
	assert.Equal(t, 1, last.Index)
}

func TestAutoplayAdvances(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	scroller := ScrollerFunc(func(index, total int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, index)
	})

	c := mount(t, vehicleMedia(), Options{Autoplay: true, Interval: 5 * time.Millisecond, Scroller: scroller})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 3
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1, 0, 1}, seen[:3])
	mu.Unlock()
	assert.True(t, c.State().Autoplay)
}

func TestAutoplayDisabledDoesNotAdvance(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{Autoplay: false, Interval: time.Millisecond})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, c.State().Index)
}

func TestAutoplayIdleOnEmptyCategory(t *testing.T) {
	var fired atomic.Int32
	scroller := ScrollerFunc(func(int, int) { fired.Add(1) })
	c := mount(t, []models.Category{{Name: "port", Items: []models.MediaItem{}}}, Options{
		Autoplay: true,
		Interval: time.Millisecond,
		Scroller: scroller,
	})

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.True(t, c.State().Autoplay)
}

func TestHoverPausesAndLeaveRestores(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{Autoplay: true, Interval: 5 * time.Millisecond})

	c.Hover()
	assert.False(t, c.State().Autoplay)
	paused := c.State().Index
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, paused, c.State().Index)

	c.Leave()
	assert.True(t, c.State().Autoplay)
	assert.Eventually(t, func() bool {
		return c.State().Index != paused
	}, time.Second, time.Millisecond)
}

func TestLeaveKeepsConfiguredAutoplayOff(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{Autoplay: false})
	c.Hover()
	c.Leave()
	assert.False(t, c.State().Autoplay)
}

func TestUnmountStopsAutoplay(t *testing.T) {
	c := New(vehicleMedia(), Options{Autoplay: true, Interval: time.Millisecond})
	c.Unmount()
	c.Unmount()
	assert.False(t, c.Mounted())

	index := c.State().Index
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, index, c.State().Index)

	c.Next()
	assert.Equal(t, index, c.State().Index)
}

func TestSetIntervalRearms(t *testing.T) {
	var ticks atomic.Int32
	scroller := ScrollerFunc(func(int, int) { ticks.Add(1) })
	c := mount(t, vehicleMedia(), Options{Autoplay: true, Interval: time.Hour, Scroller: scroller})
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, ticks.Load())

	c.SetInterval(2 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return ticks.Load() > 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, int64(2), c.View().IntervalMs)
}

func TestCloseNotifiesHost(t *testing.T) {
	closed := 0
	c := mount(t, vehicleMedia(), Options{OnClose: func() { closed++ }})
	c.Close()
	assert.Equal(t, 1, closed)
}

func TestBackdropClick(t *testing.T) {
	closed := 0
	c := mount(t, vehicleMedia(), Options{Modal: true, OnClose: func() { closed++ }})

	assert.False(t, c.BackdropClick(PanelElement, BackdropElement))
	assert.Equal(t, 0, closed)

	assert.True(t, c.BackdropClick(BackdropElement, BackdropElement))
	assert.Equal(t, 1, closed)
}

func TestBackdropClickIgnoredWhenInline(t *testing.T) {
	closed := 0
	c := mount(t, vehicleMedia(), Options{Modal: false, OnClose: func() { closed++ }})
	assert.False(t, c.BackdropClick(BackdropElement, BackdropElement))
	assert.Equal(t, 0, closed)
}

func TestCloseAfterUnmountIsSilent(t *testing.T) {
	closed := 0
	c := New(vehicleMedia(), Options{OnClose: func() { closed++ }})
	c.Unmount()
	assert.False(t, c.Close())
	assert.Equal(t, 0, closed)
}

func TestCloseNotifiesOnce(t *testing.T) {
	closed := 0
	c := mount(t, vehicleMedia(), Options{Modal: true, OnClose: func() { closed++ }})

	assert.True(t, c.Close())
	assert.False(t, c.Close())
	assert.False(t, c.BackdropClick(BackdropElement, BackdropElement))
	assert.Equal(t, 1, closed)
}

func TestConcurrentCloseNotifiesOnce(t *testing.T) {
	var closed atomic.Int32
	c := mount(t, vehicleMedia(), Options{Modal: true, OnClose: func() { closed.Add(1) }})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.BackdropClick(BackdropElement, BackdropElement)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), closed.Load())
}

func TestBackdropClickAfterUnmount(t *testing.T) {
	closed := 0
	c := New(vehicleMedia(), Options{Modal: true, OnClose: func() { closed++ }})
	c.Unmount()
	assert.False(t, c.BackdropClick(BackdropElement, BackdropElement))
	assert.Equal(t, 0, closed)
}

func TestInvalidItemsAreDropped(t *testing.T) {
	c := mount(t, []models.Category{{
		Name:  "a",
		Items: []models.MediaItem{{URL: url1}, {URL: "not-a-url"}, {URL: ""}},
	}}, Options{})

	view := c.View()
	assert.Equal(t, 1, view.Count)
	assert.True(t, view.HasImage)
	assert.Equal(t, url1, view.ImageURL)
	assert.False(t, view.ShowThumbnails)
	assert.Empty(t, view.Thumbnails)

	c.Next()
	assert.Equal(t, url1, c.View().ImageURL)
	assert.Equal(t, "a", c.Categories()[0].Label)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.Autoplay)
	assert.Equal(t, DefaultInterval, opts.Interval)
	assert.Equal(t, 0, opts.InitialSlide)

	c := mount(t, vehicleMedia(), Options{})
	assert.Equal(t, DefaultInterval.Milliseconds(), c.View().IntervalMs)
}
