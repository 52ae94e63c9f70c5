package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-gallery/pkg/models"
)

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://images.example.com/a.jpg": true,
		"http://example.com/b.png?w=500":   true,
		"  https://example.com/c.jpg  ":    true,
		"":                                 false,
		"   ":                              false,
		"ftp://example.com/a.jpg":          false,
		"example.com/a.jpg":                false,
		"/relative/path.jpg":               false,
		"https://":                         false,
		"https://exa mple.com/%zz":         false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, IsValidURL(raw), "IsValidURL(%q)", raw)
	}
}

func TestSplitURLsKeepsQueryCommas(t *testing.T) {
	field := "https://es.ramtrucks.com/iris?sa=DT6R98,2TV,22V,APA&pov=fronthero, https://images.example.com/b.jpg"
	urls := SplitURLs(field)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://es.ramtrucks.com/iris?sa=DT6R98,2TV,22V,APA&pov=fronthero", urls[0])
	assert.Equal(t, "https://images.example.com/b.jpg", urls[1])

	assert.Empty(t, SplitURLs(""))
	assert.Equal(t, []string{"https://a.example.com"}, SplitURLs("https://a.example.com,,"))
}

func TestExpandDropsMalformedEntries(t *testing.T) {
	items := []models.MediaItem{
		{Label: "Subasta", URL: "https://a.example.com/1.jpg,https://a.example.com/2.jpg"},
		{Label: "Subasta", URL: ""},
		{Label: "Subasta", URL: "not a url"},
		{Label: "Puerto", URL: "http://b.example.com/3.jpg"},
	}

	got := Expand(items)
	require.Len(t, got, 3)
	assert.Equal(t, "https://a.example.com/1.jpg", got[0].URL)
	assert.Equal(t, "https://a.example.com/2.jpg", got[1].URL)
	assert.Equal(t, "Subasta", got[1].Label)
	assert.Equal(t, "Puerto", got[2].Label)
}

func TestExpandIsIdempotent(t *testing.T) {
	items := []models.MediaItem{
		{Label: "<b>Base</b>", URL: "https://a.example.com/1.jpg"},
		{Label: "Mail", URL: "mailto:x@y.z"},
		{Label: "A & B", URL: "https://a.example.com/2.jpg"},
		{Label: "Port", URL: "javascript:alert(1)"},
	}
	once := Expand(items)
	twice := Expand(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "Base", once[0].Label)
	assert.Equal(t, "A & B", once[1].Label)
}

func TestGroupKeepsFirstOccurrenceOrder(t *testing.T) {
	items := []models.MediaItem{
		{Label: "port", URL: "https://x.example.com/1.jpg"},
		{Label: "auction", URL: "https://x.example.com/2.jpg"},
		{Label: "port", URL: "https://x.example.com/3.jpg"},
		{Label: "base", URL: "bad"},
	}

	groups := Group(items)
	require.Len(t, groups, 2)
	assert.Equal(t, "port", groups[0].Name)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "auction", groups[1].Name)
}

func TestNormalizeKeepsEmptyCategories(t *testing.T) {
	categories := []models.Category{
		{Name: "auction", Items: FromURLs("Subasta", []string{"https://x.example.com/1.jpg"})},
		{Name: "port", Items: nil},
	}

	got := Normalize(categories)
	require.Len(t, got, 2)
	assert.Equal(t, "Subasta", got[0].Label)
	assert.Equal(t, "port", got[1].Label)
	assert.NotNil(t, got[1].Items)
	assert.Empty(t, got[1].Items)
}

func TestMergeJoinsSameName(t *testing.T) {
	base := []models.Category{{Name: "auction", Items: FromURLs("a", []string{"https://x.example.com/1.jpg"})}}
	extra := []models.Category{
		{Name: "auction", Items: FromURLs("a", []string{"https://x.example.com/2.jpg"})},
		{Name: "base", Items: []models.MediaItem{}},
	}
	got := Merge(base, extra)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Items, 2)
	assert.Equal(t, "base", got[1].Name)
}
