package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/lifecycle"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
)

type mockCoordinator struct {
	requests []lifecycle.Request
	result   *lifecycle.Result
	err      error
	deletes  []string
}

func (m *mockCoordinator) CreateOrUpdate(ctx context.Context, req lifecycle.Request) (*lifecycle.Result, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockCoordinator) Delete(ctx context.Context, subject string, kind models.MaterialKind, topic string) error {
	m.deletes = append(m.deletes, subject+"/"+string(kind)+"/"+topic)
	return nil
}

func notesResult() *lifecycle.Result {
	return &lifecycle.Result{
		SubjectSlug: "computer-science",
		TopicSlug:   "stacks",
		Version:     "1.0",
		Created:     true,
		FilePath:    "/data/computer-science/notes/stacks/stacks.md",
		RelPath:     "computer-science/notes/stacks/stacks.md",
		FileSize:    512,
		Metadata:    &content.Metadata{CurrentVersion: "1.0"},
	}
}

func TestGenerationServiceGenerateCreatesSubjectAndTopic(t *testing.T) {
	subjects := newMockSubjectRepo()
	topics := newMockTopicRepo()
	materials := newMockMaterialRepo()
	coord := &mockCoordinator{result: notesResult()}
	svc := NewGenerationService(subjects, topics, materials, newMockCLORepo(), coord, nil, nil, nil)

	res, err := svc.Generate(context.Background(), GenerateRequest{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindNotes,
		Format:  models.FormatMD,
	})
	require.NoError(t, err)

	require.NotNil(t, subjects.created)
	assert.Equal(t, "computer-science", subjects.created.Slug)
	require.NotNil(t, topics.created)
	assert.Equal(t, "stacks", topics.created.Slug)

	require.NotNil(t, materials.upserted)
	assert.Equal(t, topics.created.ID, materials.upserted.TopicID)
	assert.Equal(t, "1.0", materials.upserted.Version)
	assert.Equal(t, "computer-science/notes/stacks/stacks.md", materials.upserted.FilePath)
	require.NotNil(t, materials.upserted.FileSize)
	assert.Equal(t, int64(512), *materials.upserted.FileSize)

	assert.True(t, res.Created)
	assert.Equal(t, "1.0", res.Version)

	require.Len(t, coord.requests, 1)
	assert.Equal(t, "Computer Science", coord.requests[0].Subject)
}

func TestGenerationServiceGenerateReusesExistingRows(t *testing.T) {
	subjects := newMockSubjectRepo()
	subjects.add(models.Subject{ID: "sub-1", Name: "Computer Science", Slug: "computer-science"})
	topics := newMockTopicRepo()
	topics.add(models.Topic{ID: "top-1", SubjectID: "sub-1", Name: "Stacks", Slug: "stacks"})
	materials := newMockMaterialRepo()
	coord := &mockCoordinator{result: notesResult()}
	svc := NewGenerationService(subjects, topics, materials, newMockCLORepo(), coord, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Subject: "computer science",
		Topic:   "STACKS",
		Kind:    models.KindNotes,
		Format:  models.FormatMD,
	})
	require.NoError(t, err)

	assert.Nil(t, subjects.created)
	assert.Nil(t, topics.created)
	assert.Equal(t, "top-1", materials.upserted.TopicID)
}

func TestGenerationServiceRegenerateKeepsMaterialIdentity(t *testing.T) {
	subjects := newMockSubjectRepo()
	subjects.add(models.Subject{ID: "sub-1", Name: "Computer Science", Slug: "computer-science"})
	topics := newMockTopicRepo()
	topics.add(models.Topic{ID: "top-1", SubjectID: "sub-1", Name: "Stacks", Slug: "stacks"})
	materials := newMockMaterialRepo()
	materials.add(models.Material{ID: "mat-1", TopicID: "top-1", MaterialKind: models.KindQuiz, Version: "1.0"})
	clos := newMockCLORepo()
	coord := &mockCoordinator{result: &lifecycle.Result{
		Version: "1.1",
		Created: false,
		RelPath: "computer-science/quizzes/stacks/stacks-quiz.docx",
		Metadata: &content.Metadata{
			CurrentVersion: "1.1",
			CLOs:           []string{"Define the LIFO principle"},
		},
	}}
	svc := NewGenerationService(subjects, topics, materials, clos, coord, nil, nil, nil)

	res, err := svc.Generate(context.Background(), GenerateRequest{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindQuiz,
		Format:  models.FormatDOCX,
	})
	require.NoError(t, err)

	// The existing row survives the upsert; CLOs attach to it, not to a
	// fresh id the database never stored.
	assert.Equal(t, "mat-1", res.Material.ID)
	assert.Equal(t, "1.1", materials.upserted.Version)
	require.Contains(t, clos.replaced, "mat-1")
	require.Len(t, clos.replaced["mat-1"], 1)
	assert.False(t, res.Created)
}

func TestGenerationServiceGenerateQuizRecordsCLOs(t *testing.T) {
	subjects := newMockSubjectRepo()
	topics := newMockTopicRepo()
	materials := newMockMaterialRepo()
	clos := newMockCLORepo()
	coord := &mockCoordinator{result: &lifecycle.Result{
		Version: "1.0",
		Created: true,
		RelPath: "computer-science/quizzes/stacks/stacks-quiz.docx",
		Metadata: &content.Metadata{
			CurrentVersion: "1.0",
			CLOs:           []string{"Analyze time complexity of stack operations", "Define the LIFO principle"},
		},
	}}
	svc := NewGenerationService(subjects, topics, materials, clos, coord, nil, nil, nil)

	res, err := svc.Generate(context.Background(), GenerateRequest{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindQuiz,
		Format:  models.FormatDOCX,
	})
	require.NoError(t, err)

	rows := clos.replaced[res.Material.ID]
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].BloomLevel)
	assert.Equal(t, "Analyze", *rows[0].BloomLevel)
	require.NotNil(t, rows[1].BloomLevel)
	assert.Equal(t, "Remember", *rows[1].BloomLevel)
}

func TestGenerationServiceGenerateValidation(t *testing.T) {
	svc := NewGenerationService(newMockSubjectRepo(), newMockTopicRepo(), newMockMaterialRepo(), newMockCLORepo(), &mockCoordinator{}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{Topic: "Stacks", Kind: models.KindNotes, Format: models.FormatMD})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGenerationServiceGeneratePropagatesCoordinatorError(t *testing.T) {
	coord := &mockCoordinator{err: appErrors.Clone(appErrors.ErrValidation, "output format md is not allowed for quiz")}
	materials := newMockMaterialRepo()
	svc := NewGenerationService(newMockSubjectRepo(), newMockTopicRepo(), materials, newMockCLORepo(), coord, nil, nil, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Subject: "Computer Science",
		Topic:   "Stacks",
		Kind:    models.KindQuiz,
		Format:  models.FormatMD,
	})
	require.Error(t, err)
	assert.Nil(t, materials.upserted)
}
