package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

func TestMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "metadata.json")

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	meta := NewMetadata("Binary Search Trees", "Data Structures", models.KindNotes, models.FormatPDF, now)
	meta.EducationalLevel = "Graduate"

	require.NoError(t, SaveMetadata(path, meta))

	loaded, err := LoadMetadata(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "v1.0", loaded.CurrentVersion)
	assert.Equal(t, "2026-03-14", loaded.CreatedDate)
	assert.Equal(t, "Graduate", loaded.EducationalLevel)
	require.Len(t, loaded.VersionHistory, 1)
	assert.Equal(t, "Initial creation", loaded.VersionHistory[0].Changes)
}

func TestLoadMetadataMissing(t *testing.T) {
	meta, err := LoadMetadata(filepath.Join(t.TempDir(), "metadata.json"))
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestLoadMetadataCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	meta, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestBumpVersion(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	meta := NewMetadata("Hash Tables", "Data Structures", models.KindNotes, models.FormatMD, now)

	later := now.AddDate(0, 0, 7)
	next := meta.BumpVersion("Added open addressing section", later)

	assert.Equal(t, "v1.1", next)
	assert.Equal(t, "v1.1", meta.CurrentVersion)
	assert.Equal(t, "2026-03-21", meta.LastUpdated)
	assert.Equal(t, "2026-03-14", meta.CreatedDate)
	require.Len(t, meta.VersionHistory, 2)
	assert.Equal(t, "Added open addressing section", meta.VersionHistory[1].Changes)
}

func TestBumpVersionInvalidCurrent(t *testing.T) {
	meta := &Metadata{CurrentVersion: "garbage"}
	next := meta.BumpVersion("recovered", time.Now())
	assert.Equal(t, "v1.1", next)
}

func TestSaveMetadataOverwritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	now := time.Now()

	meta := NewMetadata("Graphs", "Algorithms", models.KindQuiz, models.FormatDOCX, now)
	require.NoError(t, SaveMetadata(path, meta))

	meta.BumpVersion("More questions", now)
	require.NoError(t, SaveMetadata(path, meta))

	loaded, err := LoadMetadata(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "v1.1", loaded.CurrentVersion)
	assert.Len(t, loaded.VersionHistory, 2)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
