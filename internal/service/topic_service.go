package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/slug"
)

type topicRepository interface {
	List(ctx context.Context, filter models.TopicFilter) ([]models.TopicWithCounts, int, error)
	FindByID(ctx context.Context, id string) (*models.Topic, error)
	FindBySubjectAndSlug(ctx context.Context, subjectID, slug string) (*models.Topic, error)
	ExistsBySlug(ctx context.Context, subjectID, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id string) error
}

// CreateTopicRequest captures creation payload. The slug is derived from
// the name and unique within the subject.
type CreateTopicRequest struct {
	SubjectID   string  `json:"subject_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateTopicRequest modifies topic fields.
type UpdateTopicRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// TopicService coordinates topic operations.
type TopicService struct {
	repo        topicRepository
	subjectRepo subjectRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTopicService constructs TopicService.
func NewTopicService(repo topicRepository, subjectRepo subjectRepository, validate *validator.Validate, logger *zap.Logger) *TopicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopicService{repo: repo, subjectRepo: subjectRepo, validator: validate, logger: logger}
}

// List returns topics with pagination metadata.
func (s *TopicService) List(ctx context.Context, filter models.TopicFilter) ([]models.TopicWithCounts, *models.Pagination, error) {
	topics, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list topics")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return topics, pagination, nil
}

// Get returns a topic by ID.
func (s *TopicService) Get(ctx context.Context, id string) (*models.Topic, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}
	return topic, nil
}

// Create adds a new topic under a subject.
func (s *TopicService) Create(ctx context.Context, req CreateTopicRequest) (*models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload")
	}

	if _, err := s.subjectRepo.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	topicSlug, err := slug.Sanitize(req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidName.Code, appErrors.ErrInvalidName.Status, "topic name cannot be converted to a slug")
	}

	exists, err := s.repo.ExistsBySlug(ctx, req.SubjectID, topicSlug, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check topic slug")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "topic with this name already exists in the subject")
	}

	topic := &models.Topic{
		SubjectID:   req.SubjectID,
		Name:        req.Name,
		Slug:        topicSlug,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create topic")
	}
	return topic, nil
}

// Update modifies a topic. Renaming re-derives the slug within the
// subject.
func (s *TopicService) Update(ctx context.Context, id string, req UpdateTopicRequest) (*models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid topic payload")
	}

	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}

	topicSlug, err := slug.Sanitize(req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidName.Code, appErrors.ErrInvalidName.Status, "topic name cannot be converted to a slug")
	}

	exists, err := s.repo.ExistsBySlug(ctx, topic.SubjectID, topicSlug, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check topic slug")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "topic with this name already exists in the subject")
	}

	topic.Name = req.Name
	topic.Slug = topicSlug
	topic.Description = req.Description

	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update topic")
	}
	return topic, nil
}

// Delete removes a topic; its materials cascade in the database.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "topic not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete topic")
	}
	return nil
}
