package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

func TestMaterialRepositoryListByKind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	rows := sqlmock.NewRows([]string{"id", "topic_id", "material_kind", "output_format", "version", "file_path", "file_size", "metadata", "created_at", "updated_at"}).
		AddRow("m-1", "t-1", "notes", "md", "v1.2", "computer-science/notes/bst/bst.md", int64(2048), []byte(`{}`), time.Now(), time.Now())
	mock.ExpectQuery("SELECT m.id, m.topic_id").
		WithArgs("notes").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("notes").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	materials, total, err := repo.List(context.Background(), models.MaterialFilter{MaterialKind: "notes"})
	require.NoError(t, err)
	assert.Len(t, materials, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "v1.2", materials[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryFindByTopicAndKind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	rows := sqlmock.NewRows([]string{"id", "topic_id", "material_kind", "output_format", "version", "file_path", "file_size", "metadata", "created_at", "updated_at"}).
		AddRow("m-1", "t-1", "quiz", "docx", "v1.0", "cs/quizzes/bst/bst-quiz.docx", int64(1024), []byte(`{}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.topic_id = $1 AND m.material_kind = $2")).
		WithArgs("t-1", models.KindQuiz).
		WillReturnRows(rows)

	material, err := repo.FindByTopicAndKind(context.Background(), "t-1", models.KindQuiz)
	require.NoError(t, err)
	assert.Equal(t, "m-1", material.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryFindByTopicAndKindMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.topic_id = $1 AND m.material_kind = $2")).
		WithArgs("t-1", models.KindNotes).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByTopicAndKind(context.Background(), "t-1", models.KindNotes)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMaterialRepositoryUpsertInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	created := time.Now().UTC()
	mock.ExpectPrepare("INSERT INTO materials").
		ExpectQuery().
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-new", created))

	size := int64(2048)
	material := &models.Material{
		TopicID:      "t-1",
		MaterialKind: models.KindNotes,
		OutputFormat: models.FormatMD,
		Version:      "v1.0",
		FilePath:     "computer-science/notes/bst/bst.md",
		FileSize:     &size,
		Metadata:     []byte(`{"topic":"BST"}`),
	}
	require.NoError(t, repo.Upsert(context.Background(), material))
	assert.Equal(t, "m-new", material.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryUpsertKeepsSurvivingRowID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	// Conflict path: the (topic, kind) row already exists, so the
	// database returns its original id and created_at, not the
	// candidate's freshly generated ones.
	originalCreated := time.Now().UTC().Add(-24 * time.Hour)
	mock.ExpectPrepare("ON CONFLICT \\(topic_id, material_kind\\) DO UPDATE").
		ExpectQuery().
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-existing", originalCreated))

	size := int64(4096)
	material := &models.Material{
		TopicID:      "t-1",
		MaterialKind: models.KindQuiz,
		OutputFormat: models.FormatDOCX,
		Version:      "v1.1",
		FilePath:     "computer-science/quizzes/bst/bst-quiz.docx",
		FileSize:     &size,
		Metadata:     []byte(`{}`),
	}
	require.NoError(t, repo.Upsert(context.Background(), material))
	assert.Equal(t, "m-existing", material.ID)
	assert.Equal(t, originalCreated, material.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
