package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
)

type materialRepository interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, int, error)
	FindByID(ctx context.Context, id string) (*models.Material, error)
	FindByTopicAndKind(ctx context.Context, topicID string, kind models.MaterialKind) (*models.Material, error)
	Upsert(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id string) error
}

type cloRepository interface {
	ListByMaterial(ctx context.Context, materialID string) ([]models.CLO, error)
	Replace(ctx context.Context, materialID string, clos []models.CLO) error
}

// materialRemover deletes a material's on-disk directory.
type materialRemover interface {
	Delete(ctx context.Context, subject string, kind models.MaterialKind, topic string) error
}

// MaterialDetail pairs a material row with its CLOs.
type MaterialDetail struct {
	models.Material
	CLOs []models.CLO `json:"clos,omitempty"`
}

// MaterialService exposes the read and delete side of materials. Creation
// happens through generation, never through a direct POST.
type MaterialService struct {
	repo        materialRepository
	topicRepo   topicRepository
	subjectRepo subjectRepository
	cloRepo     cloRepository
	remover     materialRemover
	logger      *zap.Logger
}

// NewMaterialService constructs MaterialService.
func NewMaterialService(repo materialRepository, topicRepo topicRepository, subjectRepo subjectRepository, cloRepo cloRepository, remover materialRemover, logger *zap.Logger) *MaterialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{
		repo:        repo,
		topicRepo:   topicRepo,
		subjectRepo: subjectRepo,
		cloRepo:     cloRepo,
		remover:     remover,
		logger:      logger,
	}
}

// List returns materials with pagination metadata.
func (s *MaterialService) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, *models.Pagination, error) {
	materials, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
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
	return materials, pagination, nil
}

// Get returns a material with its CLOs.
func (s *MaterialService) Get(ctx context.Context, id string) (*MaterialDetail, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}

	detail := &MaterialDetail{Material: *material}
	if material.MaterialKind == models.KindQuiz {
		clos, err := s.cloRepo.ListByMaterial(ctx, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material clos")
		}
		detail.CLOs = clos
	}
	return detail, nil
}

// CLOs returns the learning outcomes attached to a material. Non-quiz
// materials have none.
func (s *MaterialService) CLOs(ctx context.Context, id string) ([]models.CLO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	clos, err := s.cloRepo.ListByMaterial(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material clos")
	}
	if clos == nil {
		clos = []models.CLO{}
	}
	return clos, nil
}

// History returns the version history recorded in the material's metadata
// blob, oldest first.
func (s *MaterialService) History(ctx context.Context, id string) ([]models.VersionHistoryEntry, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}

	if len(material.Metadata) == 0 {
		return []models.VersionHistoryEntry{}, nil
	}
	var meta content.Metadata
	if err := json.Unmarshal(material.Metadata, &meta); err != nil {
		s.logger.Warn("material metadata blob unreadable", zap.String("material_id", id), zap.Error(err))
		return []models.VersionHistoryEntry{}, nil
	}
	if meta.VersionHistory == nil {
		return []models.VersionHistoryEntry{}, nil
	}
	return meta.VersionHistory, nil
}

// Delete removes the material row and its on-disk topic directory,
// sidecar included.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}

	topic, err := s.topicRepo.FindByID(ctx, material.TopicID)
	if err != nil && err != sql.ErrNoRows {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}

	if topic != nil {
		subject, err := s.subjectRepo.FindByID(ctx, topic.SubjectID)
		if err != nil && err != sql.ErrNoRows {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
		}
		if subject != nil {
			if err := s.remover.Delete(ctx, subject.Name, material.MaterialKind, topic.Name); err != nil {
				return err
			}
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete material")
	}
	return nil
}
