package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/bloom"
	"github.com/lumora-labs/coursecraft-api/internal/lifecycle"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/internal/render"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/slug"
)

// materialCoordinator abstracts the filesystem side of generation.
type materialCoordinator interface {
	CreateOrUpdate(ctx context.Context, req lifecycle.Request) (*lifecycle.Result, error)
	Delete(ctx context.Context, subject string, kind models.MaterialKind, topic string) error
}

// GenerationParams is the kind-agnostic generation payload. It doubles
// as the tasks.input_params JSON shape.
type GenerationParams struct {
	Format  models.OutputFormat `json:"format"`
	Changes string              `json:"changes,omitempty"`
	Theme   string              `json:"theme,omitempty"`
	Content *render.Content     `json:"content,omitempty"`
}

// GenerateRequest captures the synchronous generation payload.
type GenerateRequest struct {
	Subject string              `json:"subject" validate:"required"`
	Topic   string              `json:"topic" validate:"required"`
	Kind    models.MaterialKind `json:"material_kind" validate:"required"`
	Format  models.OutputFormat `json:"output_format" validate:"required"`
	Changes string              `json:"changes"`
	Theme   string              `json:"theme"`
	Content *render.Content     `json:"content"`
}

// GenerateResult reports a finished generation.
type GenerateResult struct {
	Material *models.Material `json:"material"`
	Version  string           `json:"version"`
	Created  bool             `json:"created"`
	FilePath string           `json:"file_path"`
}

// GenerationService runs the full generation pipeline: subject and topic
// resolution, rendering through the coordinator, then the materials
// index and CLO rows.
type GenerationService struct {
	subjectRepo  subjectRepository
	topicRepo    topicRepository
	materialRepo materialRepository
	cloRepo      cloRepository
	coordinator  materialCoordinator
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewGenerationService constructs GenerationService. metrics may be nil.
func NewGenerationService(subjectRepo subjectRepository, topicRepo topicRepository, materialRepo materialRepository, cloRepo cloRepository, coordinator materialCoordinator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GenerationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		subjectRepo:  subjectRepo,
		topicRepo:    topicRepo,
		materialRepo: materialRepo,
		cloRepo:      cloRepo,
		coordinator:  coordinator,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
	}
}

// Generate renders a material synchronously, creating the subject and
// topic rows when the names are new.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	subject, err := s.resolveSubject(ctx, req.Subject)
	if err != nil {
		return nil, err
	}
	topic, err := s.resolveTopic(ctx, subject.ID, req.Topic)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, subject, topic, req.Kind, GenerationParams{
		Format:  req.Format,
		Changes: req.Changes,
		Theme:   req.Theme,
		Content: req.Content,
	})
}

// run executes the coordinator then mirrors the outcome into the
// database. Metadata is written to disk before the index row so a crash
// between the two leaves disk ahead, never behind.
func (s *GenerationService) run(ctx context.Context, subject *models.Subject, topic *models.Topic, kind models.MaterialKind, params GenerationParams) (*GenerateResult, error) {
	start := time.Now()
	res, err := s.coordinator.CreateOrUpdate(ctx, lifecycle.Request{
		Subject:   subject.Name,
		Topic:     topic.Name,
		Kind:      kind,
		Format:    params.Format,
		Content:   params.Content,
		Changes:   params.Changes,
		ThemeName: params.Theme,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveGeneration(kind, params.Format, "error", time.Since(start))
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveGeneration(kind, params.Format, "success", time.Since(start))
	}

	metaBlob, err := json.Marshal(res.Metadata)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode material metadata")
	}

	size := res.FileSize
	material := &models.Material{
		TopicID:      topic.ID,
		MaterialKind: kind,
		OutputFormat: params.Format,
		Version:      res.Version,
		FilePath:     res.RelPath,
		FileSize:     &size,
		Metadata:     metaBlob,
	}
	if err := s.materialRepo.Upsert(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record material")
	}

	if kind == models.KindQuiz {
		if err := s.cloRepo.Replace(ctx, material.ID, cloRows(res.Metadata.CLOs)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record clos")
		}
	}

	return &GenerateResult{
		Material: material,
		Version:  res.Version,
		Created:  res.Created,
		FilePath: res.RelPath,
	}, nil
}

// cloRows converts CLO descriptions into rows, tagging each with the
// Bloom level its wording implies when one is identifiable.
func cloRows(descriptions []string) []models.CLO {
	rows := make([]models.CLO, 0, len(descriptions))
	for _, desc := range descriptions {
		row := models.CLO{Description: desc}
		if level, ok := bloom.Identify(desc); ok {
			s := string(level)
			row.BloomLevel = &s
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *GenerationService) resolveSubject(ctx context.Context, name string) (*models.Subject, error) {
	subjectSlug, err := slug.Sanitize(name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidName.Code, appErrors.ErrInvalidName.Status, "subject name cannot be converted to a slug")
	}

	subject, err := s.subjectRepo.FindBySlug(ctx, subjectSlug)
	if err == nil {
		return subject, nil
	}
	if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	subject = &models.Subject{Name: name, Slug: subjectSlug}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.logger.Info("subject created from generation request", zap.String("slug", subjectSlug))
	return subject, nil
}

func (s *GenerationService) resolveTopic(ctx context.Context, subjectID, name string) (*models.Topic, error) {
	topicSlug, err := slug.Sanitize(name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidName.Code, appErrors.ErrInvalidName.Status, "topic name cannot be converted to a slug")
	}

	topic, err := s.topicRepo.FindBySubjectAndSlug(ctx, subjectID, topicSlug)
	if err == nil {
		return topic, nil
	}
	if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
	}

	topic = &models.Topic{SubjectID: subjectID, Name: name, Slug: topicSlug}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create topic")
	}
	s.logger.Info("topic created from generation request", zap.String("slug", topicSlug))
	return topic, nil
}

// generateForTask runs the pipeline for a queued task whose subject and
// topic are already resolved.
func (s *GenerationService) generateForTask(ctx context.Context, task *models.Task, topic *models.Topic) (*GenerateResult, error) {
	subject, err := s.subjectRepo.FindByID(ctx, task.SubjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	var params GenerationParams
	if len(task.InputParams) > 0 {
		if err := json.Unmarshal(task.InputParams, &params); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "task input params unreadable")
		}
	}
	if params.Format == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("task %s has no output format", task.ID))
	}

	return s.run(ctx, subject, topic, task.MaterialKind, params)
}
