package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-gallery/pkg/media"
	"product-gallery/pkg/models"
)

func TestViewCategoryButtons(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{})
	v := c.View()

	require.Len(t, v.Categories, 3)
	assert.Equal(t, CategoryButton{Name: "auction", Label: "Subasta (2)", Count: 2, Active: true}, v.Categories[0])
	assert.Equal(t, "Puerto (0)", v.Categories[2].Label)
	assert.False(t, v.Categories[2].Active)
	assert.Equal(t, "1 / 2", v.Position)
}

func TestViewSingleImageHidesStrip(t *testing.T) {
	c := mount(t, vehicleMedia(), Options{})
	require.NoError(t, c.SelectCategory("base"))

	v := c.View()
	assert.True(t, v.HasImage)
	assert.True(t, v.ShowNavigation)
	assert.False(t, v.ShowThumbnails)
	assert.Empty(t, v.Thumbnails)

	c.Next()
	assert.Equal(t, 0, c.View().Index)
	c.Previous()
	assert.Equal(t, 0, c.View().Index)
}

func TestViewThumbnailsFallBackToImage(t *testing.T) {
	bad := "not-a-thumbnail"
	good := "https://thumbs.example.com/3.jpg"
	items := media.FromURLs("Subasta", []string{url1, url2, url3})
	items[1].Thumbnail = &bad
	items[2].Thumbnail = &good

	c := mount(t, []models.Category{{Name: "auction", Label: "Subasta", Items: items}}, Options{InitialSlide: 2})
	v := c.View()

	// a malformed thumbnail falls back to the full image
	require.Len(t, v.Thumbnails, 3)
	assert.Equal(t, url1, v.Thumbnails[0].URL)
	assert.Equal(t, 1, v.Thumbnails[1].Index)
	assert.Equal(t, url2, v.Thumbnails[1].URL)
	assert.Equal(t, 2, v.Thumbnails[2].Index)
	assert.Equal(t, good, v.Thumbnails[2].URL)
	assert.True(t, v.Thumbnails[2].Active)
	assert.Equal(t, url3, v.ImageURL)
}

func TestViewAltFallback(t *testing.T) {
	items := []models.MediaItem{{URL: url1}, {URL: url2}}
	c := mount(t, []models.Category{{Name: "x", Items: items}}, Options{})
	v := c.View()
	assert.Equal(t, "Slide 1", v.ImageAlt)
	assert.Equal(t, "Thumbnail 2", v.Thumbnails[1].Alt)
}

func TestViewWithoutCategories(t *testing.T) {
	c := mount(t, nil, Options{})
	v := c.View()
	assert.Equal(t, PlaceholderText, v.Placeholder)
	assert.Empty(t, v.Categories)
	assert.False(t, v.HasImage)
}

func TestScrollLeft(t *testing.T) {
	assert.Equal(t, 0.0, ScrollLeft(0, 80, 400))
	assert.Equal(t, 0.0, ScrollLeft(100, 80, 400))
	assert.Equal(t, 440.0, ScrollLeft(600, 80, 400))
}
