package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/content"
)

func TestEstimateSlideCount(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty text floors at minimum", 0, 7},
		{"short text floors at minimum", 120, 7},
		{"medium text", 350, 8},
		{"long text", 450, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.want, EstimateSlideCount(text))
		})
	}
}

func TestBuildSlides(t *testing.T) {
	c := &Content{
		Subject: "Computer Science",
		Topic:   "Graph Traversal",
		Version: "v2.1",
		Sections: []Section{
			{Title: "Breadth-First Search", Body: "Visits neighbors level by level. Uses a queue."},
			{Title: "Depth-First Search", Body: "Explores as deep as possible first."},
		},
		Summary:    "Both traversals visit every vertex once.",
		References: []content.Reference{{Title: "Introduction to Algorithms", Author: "Cormen et al."}},
	}

	slides := BuildSlides(c)
	require.NotEmpty(t, slides)

	assert.Equal(t, "Graph Traversal", slides[0].Title)
	assert.Equal(t, "Overview", slides[1].Title)
	assert.Equal(t, []string{"Breadth-First Search", "Depth-First Search"}, slides[1].Bullets)

	last := slides[len(slides)-1]
	assert.Equal(t, "References", last.Title)
	require.Len(t, last.Bullets, 1)
	assert.Contains(t, last.Bullets[0], "Introduction to Algorithms")

	assert.Equal(t, "Summary", slides[len(slides)-2].Title)
}

func TestBuildSlidesSplitsLongSections(t *testing.T) {
	body := strings.TrimSuffix(strings.Repeat("A fact about sorting. ", 8), " ")
	c := &Content{
		Topic:    "Sorting",
		Sections: []Section{{Title: "Quicksort", Body: body}},
	}

	slides := BuildSlides(c)

	var quickSlides []Slide
	for _, s := range slides {
		if strings.HasPrefix(s.Title, "Quicksort") {
			quickSlides = append(quickSlides, s)
		}
	}
	require.Len(t, quickSlides, 2)
	assert.Equal(t, "Quicksort", quickSlides[0].Title)
	assert.Equal(t, "Quicksort (cont.)", quickSlides[1].Title)
	assert.Len(t, quickSlides[0].Bullets, 5)
	assert.Len(t, quickSlides[1].Bullets, 3)
}
