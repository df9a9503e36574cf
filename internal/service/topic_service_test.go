package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
)

type mockTopicRepo struct {
	topics  map[string]models.Topic
	created *models.Topic
	deleted []string
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[string]models.Topic)}
}

func (m *mockTopicRepo) add(t models.Topic) { m.topics[t.ID] = t }

func (m *mockTopicRepo) List(ctx context.Context, filter models.TopicFilter) ([]models.TopicWithCounts, int, error) {
	out := make([]models.TopicWithCounts, 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, models.TopicWithCounts{Topic: t})
	}
	return out, len(out), nil
}

func (m *mockTopicRepo) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	if t, ok := m.topics[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTopicRepo) FindBySubjectAndSlug(ctx context.Context, subjectID, slug string) (*models.Topic, error) {
	for _, t := range m.topics {
		if t.SubjectID == subjectID && t.Slug == slug {
			out := t
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTopicRepo) ExistsBySlug(ctx context.Context, subjectID, slug string, excludeID string) (bool, error) {
	for _, t := range m.topics {
		if t.SubjectID == subjectID && t.Slug == slug && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = "top-new"
	}
	m.add(*topic)
	m.created = topic
	return nil
}

func (m *mockTopicRepo) Update(ctx context.Context, topic *models.Topic) error {
	m.add(*topic)
	return nil
}

func (m *mockTopicRepo) Delete(ctx context.Context, id string) error {
	delete(m.topics, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestTopicServiceCreate(t *testing.T) {
	subjects := newMockSubjectRepo()
	subjects.add(models.Subject{ID: "sub-1", Name: "Computer Science", Slug: "computer-science"})
	topics := newMockTopicRepo()
	svc := NewTopicService(topics, subjects, nil, nil)

	topic, err := svc.Create(context.Background(), CreateTopicRequest{
		SubjectID: "sub-1",
		Name:      "Binary Search Trees",
	})
	require.NoError(t, err)
	assert.Equal(t, "binary-search-trees", topic.Slug)
	assert.Equal(t, "sub-1", topic.SubjectID)
}

func TestTopicServiceCreateSubjectMissing(t *testing.T) {
	svc := NewTopicService(newMockTopicRepo(), newMockSubjectRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateTopicRequest{SubjectID: "nope", Name: "Stacks"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTopicServiceCreateConflictWithinSubject(t *testing.T) {
	subjects := newMockSubjectRepo()
	subjects.add(models.Subject{ID: "sub-1", Name: "Computer Science", Slug: "computer-science"})
	topics := newMockTopicRepo()
	topics.add(models.Topic{ID: "top-1", SubjectID: "sub-1", Name: "Stacks", Slug: "stacks"})
	svc := NewTopicService(topics, subjects, nil, nil)

	_, err := svc.Create(context.Background(), CreateTopicRequest{SubjectID: "sub-1", Name: "STACKS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTopicServiceCreateSameSlugDifferentSubject(t *testing.T) {
	subjects := newMockSubjectRepo()
	subjects.add(models.Subject{ID: "sub-1", Name: "Computer Science", Slug: "computer-science"})
	subjects.add(models.Subject{ID: "sub-2", Name: "Mathematics", Slug: "mathematics"})
	topics := newMockTopicRepo()
	topics.add(models.Topic{ID: "top-1", SubjectID: "sub-2", Name: "Stacks", Slug: "stacks"})
	svc := NewTopicService(topics, subjects, nil, nil)

	topic, err := svc.Create(context.Background(), CreateTopicRequest{SubjectID: "sub-1", Name: "Stacks"})
	require.NoError(t, err)
	assert.Equal(t, "stacks", topic.Slug)
}

func TestTopicServiceUpdateRenames(t *testing.T) {
	subjects := newMockSubjectRepo()
	topics := newMockTopicRepo()
	topics.add(models.Topic{ID: "top-1", SubjectID: "sub-1", Name: "Stacks", Slug: "stacks"})
	svc := NewTopicService(topics, subjects, nil, nil)

	topic, err := svc.Update(context.Background(), "top-1", UpdateTopicRequest{Name: "Stacks and Queues"})
	require.NoError(t, err)
	assert.Equal(t, "stacks-and-queues", topic.Slug)
}

func TestTopicServiceDeleteNotFound(t *testing.T) {
	svc := NewTopicService(newMockTopicRepo(), newMockSubjectRepo(), nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
