package render

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

func readZipPart(t *testing.T, path, name string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

func TestQuizDOCXRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary-search-trees-quiz.docx")

	c := &Content{
		Subject:      "Computer Science",
		Topic:        "Binary Search Trees",
		Version:      "v1.0",
		CLOs:         []string{"Explain BST properties", "Analyze BST operations"},
		TimeDuration: 45,
		TotalMarks:   40,
		Questions: []Question{
			{Number: 1, Prompt: "Describe the BST invariant.", Level: "Understand", CLONumber: 1, Marks: 10},
			{Number: 2, Prompt: "Compare average & worst-case search.", Level: "Analyze", CLONumber: 2, Marks: 10},
		},
	}

	size, err := NewQuizDOCXRenderer().Render(context.Background(), c, path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	doc := readZipPart(t, path, "word/document.xml")
	assert.Contains(t, doc, "Binary Search Trees - Quiz")
	assert.Contains(t, doc, "Time Allowed: 45 minutes")
	assert.Contains(t, doc, "CLO 1: Explain BST properties")
	assert.Contains(t, doc, "Q1. [Understand, CLO 1, 10 marks]")
	// Ampersand must be escaped in character data.
	assert.Contains(t, doc, "average &amp; worst-case")

	types := readZipPart(t, path, "[Content_Types].xml")
	assert.Contains(t, types, "wordprocessingml.document.main+xml")
}

func TestQuizDOCXRenderRequiresCLOs(t *testing.T) {
	c := &Content{Subject: "CS", Topic: "Stacks"}
	_, err := NewQuizDOCXRenderer().Render(context.Background(), c, filepath.Join(t.TempDir(), "q.docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLO")
}

func TestPresentationPPTXRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph-traversal.pptx")

	c := &Content{
		Subject: "Computer Science",
		Topic:   "Graph Traversal",
		Slides: []Slide{
			{Title: "Graph Traversal", Bullets: []string{"Computer Science"}},
			{Title: "BFS", Bullets: []string{"Queue-based", "Level order"}},
			{Title: "DFS", Bullets: []string{"Stack-based"}},
		},
	}

	size, err := NewPresentationPPTXRenderer().Render(context.Background(), c, path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var slideParts int
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slideParts++
		}
	}
	assert.Equal(t, 3, slideParts)

	pres := readZipPart(t, path, "ppt/presentation.xml")
	assert.Contains(t, pres, `<p:sldId id="256" r:id="rId2"/>`)

	slide2 := readZipPart(t, path, "ppt/slides/slide2.xml")
	assert.Contains(t, slide2, "<a:t>BFS</a:t>")
	assert.Contains(t, slide2, "<a:t>Queue-based</a:t>")
}

func TestPresentationPPTXRenderEmptyDeckGetsTitleSlide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")

	c := &Content{Subject: "Physics", Topic: "Optics"}
	_, err := NewPresentationPPTXRenderer().Render(context.Background(), c, path)
	require.NoError(t, err)

	slide1 := readZipPart(t, path, "ppt/slides/slide1.xml")
	assert.Contains(t, slide1, "<a:t>Optics</a:t>")
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		kind   models.MaterialKind
		format models.OutputFormat
	}{
		{models.KindNotes, models.FormatPDF},
		{models.KindNotes, models.FormatMD},
		{models.KindQuiz, models.FormatDOCX},
		{models.KindPresentation, models.FormatPPTX},
	}
	for _, tt := range tests {
		renderer, err := reg.Lookup(tt.kind, tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, renderer.Kind())
		assert.Equal(t, tt.format, renderer.Format())
	}

	_, err := reg.Lookup(models.KindQuiz, models.FormatPPTX)
	assert.Error(t, err)
}
