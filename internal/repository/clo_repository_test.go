package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

func TestCLORepositoryListByMaterial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCLORepository(db)

	level := "Analyze"
	rows := sqlmock.NewRows([]string{"id", "material_id", "number", "description", "bloom_level"}).
		AddRow("c-1", "m-1", 1, "Explain BST properties", nil).
		AddRow("c-2", "m-1", 2, "Analyze BST operations", level)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, material_id, number, description, bloom_level FROM clos WHERE material_id = $1 ORDER BY number ASC")).
		WithArgs("m-1").
		WillReturnRows(rows)

	clos, err := repo.ListByMaterial(context.Background(), "m-1")
	require.NoError(t, err)
	require.Len(t, clos, 2)
	assert.Equal(t, 1, clos[0].Number)
	require.NotNil(t, clos[1].BloomLevel)
	assert.Equal(t, "Analyze", *clos[1].BloomLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCLORepositoryReplace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCLORepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clos WHERE material_id = $1")).
		WithArgs("m-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO clos").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO clos").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	clos := []models.CLO{
		{Description: "Explain stack operations"},
		{Description: "Evaluate stack usage"},
	}
	require.NoError(t, repo.Replace(context.Background(), "m-1", clos))

	// Renumbered sequentially during the swap.
	assert.Equal(t, 1, clos[0].Number)
	assert.Equal(t, 2, clos[1].Number)
	assert.Equal(t, "m-1", clos[0].MaterialID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
