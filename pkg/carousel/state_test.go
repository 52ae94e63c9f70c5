package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"product-gallery/pkg/models"
)

func TestNextAndPreviousAreCyclic(t *testing.T) {
	for count := 1; count <= 6; count++ {
		for start := 0; start < count; start++ {
			s := State{Index: start}
			forward, backward := s, s
			for i := 0; i < count; i++ {
				forward = Next(forward, count)
				backward = Previous(backward, count)
			}
			assert.Equal(t, start, forward.Index, "next^%d from %d", count, start)
			assert.Equal(t, start, backward.Index, "previous^%d from %d", count, start)
		}
	}
}

func TestNextAndPreviousWrap(t *testing.T) {
	assert.Equal(t, 0, Next(State{Index: 2}, 3).Index)
	assert.Equal(t, 2, Previous(State{Index: 0}, 3).Index)
}

func TestSingleSlideIsIdentity(t *testing.T) {
	s := State{Index: 0}
	assert.Equal(t, s, Next(s, 1))
	assert.Equal(t, s, Previous(s, 1))
}

func TestEmptyCategoryNeverMoves(t *testing.T) {
	s := State{Index: 0}
	assert.Equal(t, s, Next(s, 0))
	assert.Equal(t, s, Previous(s, 0))
	_, ok := Jump(s, 0, 0)
	assert.False(t, ok)
}

func TestJump(t *testing.T) {
	s, ok := Jump(State{}, 2, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, s.Index)

	s, ok = Jump(s, 3, 3)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Index)

	_, ok = Jump(s, -1, 3)
	assert.False(t, ok)
}

func TestSelectCategoryClampsIndex(t *testing.T) {
	s := State{Category: 0, Index: 1}

	kept := SelectCategory(s, 1, 2)
	assert.Equal(t, 1, kept.Category)
	assert.Equal(t, 1, kept.Index)

	snapped := SelectCategory(s, 2, 1)
	assert.Equal(t, 2, snapped.Category)
	assert.Equal(t, 0, snapped.Index)

	empty := SelectCategory(s, 3, 0)
	assert.Equal(t, 0, empty.Index)
}

func TestInitial(t *testing.T) {
	categories := []models.Category{
		{Name: "port", Items: []models.MediaItem{}},
		{Name: "auction", Items: []models.MediaItem{{URL: "https://x.example.com/1.jpg"}, {URL: "https://x.example.com/2.jpg"}}},
	}

	s := Initial(categories, 1, true)
	assert.Equal(t, State{Category: 1, Index: 1, Autoplay: true}, s)

	s = Initial(categories, 5, false)
	assert.Equal(t, State{Category: 1, Index: 0, Autoplay: false}, s)

	s = Initial([]models.Category{{Name: "port"}}, 0, true)
	assert.Equal(t, 0, s.Category)

	s = Initial(nil, 3, true)
	assert.Equal(t, State{Autoplay: true}, s)
}
