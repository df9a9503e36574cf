package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/internal/render"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *content.Layout) {
	t.Helper()
	layout, err := content.NewLayout(t.TempDir())
	require.NoError(t, err)
	return NewCoordinator(layout, render.NewRegistry(), zap.NewNop()), layout
}

func notesRequest() Request {
	return Request{
		Subject: "Computer Science",
		Topic:   "Binary Search Trees",
		Kind:    models.KindNotes,
		Format:  models.FormatMD,
		Content: &render.Content{
			Introduction: "A BST keeps keys in sorted order.",
			Sections:     []render.Section{{Title: "Insertion", Body: "Descend to a leaf."}},
		},
	}
}

func TestCreateOrUpdateCreatesAtInitialVersion(t *testing.T) {
	coord, layout := newTestCoordinator(t)

	res, err := coord.CreateOrUpdate(context.Background(), notesRequest())
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "v1.0", res.Version)
	assert.Equal(t, "computer-science", res.SubjectSlug)
	assert.Equal(t, "binary-search-trees", res.TopicSlug)
	assert.Equal(t, filepath.Join("computer-science", "notes", "binary-search-trees", "binary-search-trees.md"), res.RelPath)

	info, err := os.Stat(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.FileSize)

	metaPath, err := layout.MetadataPath("Computer Science", models.KindNotes, "Binary Search Trees")
	require.NoError(t, err)
	meta, err := content.LoadMetadata(metaPath)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "v1.0", meta.CurrentVersion)
	require.Len(t, meta.VersionHistory, 1)
	assert.Equal(t, "Initial creation", meta.VersionHistory[0].Changes)
}

func TestCreateOrUpdateBumpsExistingMaterial(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	_, err := coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)

	req := notesRequest()
	req.Changes = "Added deletion walkthrough"
	res, err := coord.CreateOrUpdate(ctx, req)
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, "v1.1", res.Version)
	require.Len(t, res.Metadata.VersionHistory, 2)
	assert.Equal(t, "Added deletion walkthrough", res.Metadata.VersionHistory[1].Changes)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UPDATE HIGHLIGHTS - v1.1")
}

func TestCreateOrUpdateCorruptSidecarRestartsHistory(t *testing.T) {
	coord, layout := newTestCoordinator(t)
	ctx := context.Background()

	_, err := coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)

	metaPath, err := layout.MetadataPath("Computer Science", models.KindNotes, "Binary Search Trees")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metaPath, []byte("{not json"), 0o644))

	res, err := coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "v1.0", res.Version)
	require.Len(t, res.Metadata.VersionHistory, 1)
}

func TestCreateOrUpdateRejectsFormatKindMismatch(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	req := notesRequest()
	req.Format = models.FormatPPTX
	_, err := coord.CreateOrUpdate(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateOrUpdateQuizRequiresCLOs(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	req := Request{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindQuiz,
		Format:  models.FormatDOCX,
		Content: &render.Content{},
	}
	_, err := coord.CreateOrUpdate(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateOrUpdateQuizFillsMetadata(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	req := Request{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindQuiz,
		Format:  models.FormatDOCX,
		Content: &render.Content{
			CLOs:             []string{"Explain stack operations"},
			TotalQuestions:   4,
			TimeDuration:     30,
			ComplexityLevels: []string{"Apply"},
		},
	}
	res, err := coord.CreateOrUpdate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Metadata.TotalQuestions)
	assert.Equal(t, 30, res.Metadata.TimeDuration)
	assert.Equal(t, []string{"Explain stack operations"}, res.Metadata.CLOs)
	assert.Contains(t, res.RelPath, "stacks-quiz.docx")
	assert.Contains(t, res.RelPath, filepath.Join("quizzes", "stacks"))
}

func TestCreateOrUpdatePresentationSelectsTheme(t *testing.T) {
	coord, layout := newTestCoordinator(t)

	req := Request{
		Subject: "Business Economics",
		Topic:   "Supply and Demand",
		Kind:    models.KindPresentation,
		Format:  models.FormatPPTX,
		Content: &render.Content{
			Sections: []render.Section{{Title: "Markets", Body: "Prices balance supply with demand."}},
		},
	}
	res, err := coord.CreateOrUpdate(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, res.Metadata.Theme)
	assert.Equal(t, "Corporate Blue", res.Metadata.Theme.Name)
	assert.Equal(t, "auto", res.Metadata.Theme.Selection)
	assert.Greater(t, res.Metadata.NumberOfSlides, 0)

	// Deck lives under Slides/, sidecar next to its parent.
	assert.Contains(t, res.RelPath, filepath.Join(content.SlidesDir, "supply-and-demand.pptx"))
	metaPath, err := layout.MetadataPath(req.Subject, req.Kind, req.Topic)
	require.NoError(t, err)
	assert.NotContains(t, metaPath, content.SlidesDir)
	_, err = os.Stat(metaPath)
	require.NoError(t, err)
}

func TestCreateOrUpdateExplicitTheme(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	req := Request{
		Subject:   "Business Economics",
		Topic:     "Supply and Demand",
		Kind:      models.KindPresentation,
		Format:    models.FormatPPTX,
		ThemeName: "dark",
		Content:   &render.Content{},
	}
	res, err := coord.CreateOrUpdate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Dark Mode", res.Metadata.Theme.Name)
	assert.Equal(t, "explicit", res.Metadata.Theme.Selection)
}

func TestCreateOrUpdateInvalidNames(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	req := notesRequest()
	req.Subject = "!!!"
	_, err := coord.CreateOrUpdate(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateOrUpdateSerialisesSameIdentity(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	const updates = 8
	var wg sync.WaitGroup
	errs := make(chan error, updates)
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := notesRequest()
			req.Changes = fmt.Sprintf("change %d", i)
			_, err := coord.CreateOrUpdate(ctx, req)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Exactly one create and seven sequential bumps.
	res, err := coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)
	assert.Equal(t, "v1.8", res.Version)
	assert.Len(t, res.Metadata.VersionHistory, updates+1)
}

func TestDeleteRemovesTopicDirectory(t *testing.T) {
	coord, layout := newTestCoordinator(t)
	ctx := context.Background()

	res, err := coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)

	require.NoError(t, coord.Delete(ctx, "Computer Science", models.KindNotes, "Binary Search Trees"))

	_, err = os.Stat(res.FilePath)
	assert.True(t, os.IsNotExist(err))

	exists, err := layout.Exists("Computer Science", models.KindNotes, "Binary Search Trees")
	require.NoError(t, err)
	assert.False(t, exists)

	// Recreation starts the history over.
	res, err = coord.CreateOrUpdate(ctx, notesRequest())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "v1.0", res.Version)
}
