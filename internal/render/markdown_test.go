package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/content"
)

func TestNotesMarkdownRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary-search-trees.md")

	c := &Content{
		Subject:          "Computer Science",
		Topic:            "Binary Search Trees",
		Version:          "v2.1",
		UpdateHighlights: "Added deletion walkthrough",
		EducationalLevel: "Undergraduate",
		Introduction:     "A BST keeps keys in sorted order.",
		Sections: []Section{
			{
				Title: "Insertion",
				Body:  "New keys descend to a leaf position.",
				Subsections: []Section{
					{Title: "Duplicates", Body: "Equal keys go right."},
				},
				CodeBlocks: []CodeBlock{
					{Language: "go", Code: "func insert(n *Node, k int) *Node { return n }"},
				},
			},
			{
				Title: "Complexity",
				Tables: []Table{
					{
						Headers: []string{"Operation", "Average"},
						Rows:    [][]string{{"Search", "O(log n)"}, {"Insert", "O(log n)"}},
					},
				},
			},
		},
		Summary: "BSTs give ordered dictionaries.",
		References: []content.Reference{
			{Title: "Introduction to Algorithms", Author: "Cormen et al."},
		},
	}

	size, err := NewNotesMarkdownRenderer().Render(context.Background(), c, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), size)

	out := string(data)
	assert.Contains(t, out, "# Binary Search Trees")
	assert.Contains(t, out, "**Subject**: Computer Science")
	assert.Contains(t, out, "**Educational Level**: Undergraduate")
	assert.Contains(t, out, "**Version**: v2.1")
	assert.Contains(t, out, "## UPDATE HIGHLIGHTS - v2.1")
	assert.Contains(t, out, "Added deletion walkthrough")
	assert.Contains(t, out, "## Introduction")
	assert.Contains(t, out, "## Insertion")
	assert.Contains(t, out, "### Duplicates")
	assert.Contains(t, out, "```go")
	assert.Contains(t, out, "| Operation | Average |")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "1. Introduction to Algorithms, Cormen et al.")
}

func TestNotesMarkdownRenderDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")

	c := &Content{Subject: "Physics", Topic: "Waves"}
	_, err := NewNotesMarkdownRenderer().Render(context.Background(), c, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "**Version**: v1.0")
	assert.Contains(t, out, "**Educational Level**: Undergraduate")
	assert.NotContains(t, out, "UPDATE HIGHLIGHTS")
	assert.NotContains(t, out, "## References")
}

func TestNotesMarkdownRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNotesMarkdownRenderer().Render(ctx, &Content{Topic: "Waves"}, filepath.Join(t.TempDir(), "x.md"))
	assert.ErrorIs(t, err, context.Canceled)
}
