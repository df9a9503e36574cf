package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/jobs"
)

// JobGenerateMaterial is the queue job kind for generation tasks.
const JobGenerateMaterial = "generate_material"

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	SetTopic(ctx context.Context, id, topicID string) error
	MarkInProgress(ctx context.Context, id string) (bool, error)
	MarkCompleted(ctx context.Context, id, materialID string) (bool, error)
	MarkFailed(ctx context.Context, id, errorMessage string) (bool, error)
	Stats(ctx context.Context) (*models.TaskStats, error)
	Delete(ctx context.Context, id string) error
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// CreateTaskRequest captures the async generation payload. Either
// TopicID or TopicName must be set; a name the subject does not know yet
// creates the topic when the task runs.
type CreateTaskRequest struct {
	SubjectID string              `json:"subject_id" validate:"required"`
	TopicID   *string             `json:"topic_id"`
	TopicName *string             `json:"topic_name"`
	Kind      models.MaterialKind `json:"material_kind" validate:"required"`
	Params    GenerationParams    `json:"params"`
}

// UpdateTaskStatusRequest patches a task's lifecycle state.
type UpdateTaskStatusRequest struct {
	Status       models.TaskStatus `json:"status" validate:"required"`
	MaterialID   *string           `json:"material_id"`
	ErrorMessage *string           `json:"error_message"`
}

// TaskService owns the task lifecycle: creation, queueing, status moves
// and the worker that drives queued generations.
type TaskService struct {
	repo        taskRepository
	subjectRepo subjectRepository
	topicRepo   topicRepository
	generator   *GenerationService
	queue       jobQueue
	metrics     *MetricsService
	maxAttempts int
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTaskService constructs TaskService. maxAttempts bounds how many
// times a queued task is retried before it is marked failed; metrics may
// be nil.
func NewTaskService(repo taskRepository, subjectRepo subjectRepository, topicRepo topicRepository, generator *GenerationService, queue jobQueue, metrics *MetricsService, maxAttempts int, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:        repo,
		subjectRepo: subjectRepo,
		topicRepo:   topicRepo,
		generator:   generator,
		queue:       queue,
		metrics:     metrics,
		maxAttempts: maxAttempts,
		validator:   validate,
		logger:      logger,
	}
}

// List returns tasks with pagination metadata.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, *models.Pagination, error) {
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
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
	return tasks, pagination, nil
}

// Get returns a task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	return task, nil
}

// Create records a pending task and queues it for the worker pool.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	if !req.Kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown material kind")
	}
	if req.Params.Format == "" || !req.Params.Format.AllowedFor(req.Kind) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "output format not supported for this material kind")
	}
	hasTopicID := req.TopicID != nil && *req.TopicID != ""
	hasTopicName := req.TopicName != nil && strings.TrimSpace(*req.TopicName) != ""
	if !hasTopicID && !hasTopicName {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either topic_id or topic_name is required")
	}

	if _, err := s.subjectRepo.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if hasTopicID {
		topic, err := s.topicRepo.FindByID(ctx, *req.TopicID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "topic not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load topic")
		}
		if topic.SubjectID != req.SubjectID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "topic does not belong to the subject")
		}
	}

	params, err := json.Marshal(req.Params)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode task params")
	}

	task := &models.Task{
		SubjectID:    req.SubjectID,
		TopicID:      req.TopicID,
		TopicName:    req.TopicName,
		MaterialKind: req.Kind,
		Status:       models.TaskPending,
		InputParams:  params,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: task.ID, Kind: JobGenerateMaterial}); err != nil {
		// The row stays pending; a requeue sweep or manual retry can
		// pick it up.
		s.logger.Error("failed to enqueue task", zap.String("task_id", task.ID), zap.Error(err))
	}
	return task, nil
}

// UpdateStatus patches a task's state, enforcing the lifecycle: pending
// may only start, in_progress may only finish, terminal states are
// frozen.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, req UpdateTaskStatusRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown task status")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if !task.Status.CanTransitionTo(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "task status transition not allowed")
	}

	var moved bool
	switch req.Status {
	case models.TaskInProgress:
		moved, err = s.repo.MarkInProgress(ctx, id)
	case models.TaskCompleted:
		materialID := ""
		if req.MaterialID != nil {
			materialID = *req.MaterialID
		}
		moved, err = s.repo.MarkCompleted(ctx, id, materialID)
	case models.TaskFailed:
		message := ""
		if req.ErrorMessage != nil {
			message = *req.ErrorMessage
		}
		moved, err = s.repo.MarkFailed(ctx, id, message)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task status")
	}
	if !moved {
		// Someone else raced the transition.
		return nil, appErrors.Clone(appErrors.ErrConflict, "task status transition not allowed")
	}
	s.observe(req.Status)
	return s.Get(ctx, id)
}

// Stats aggregates task counts by status.
func (s *TaskService) Stats(ctx context.Context) (*models.TaskStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task stats")
	}
	return stats, nil
}

// Delete removes a task record. Finished tasks keep their material.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}

// Process is the queue handler. It claims the task, resolves its topic,
// runs the generation pipeline and records the terminal state. A non-nil
// return requeues the job until attempts are exhausted.
func (s *TaskService) Process(ctx context.Context, job jobs.Job) error {
	task, err := s.repo.FindByID(ctx, job.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			s.logger.Warn("queued task no longer exists", zap.String("task_id", job.ID))
			return nil
		}
		return err
	}

	claimed, err := s.repo.MarkInProgress(ctx, task.ID)
	if err != nil {
		return err
	}
	if claimed {
		s.observe(models.TaskInProgress)
	}
	if !claimed {
		if task.Status != models.TaskInProgress {
			// Terminal already; nothing to do.
			return nil
		}
		// Our own retry attempt; the claim happened on the first pass.
	}

	topic, err := s.resolveTaskTopic(ctx, task)
	if err != nil {
		return s.finishFailed(ctx, task.ID, job, err)
	}

	result, err := s.generator.generateForTask(ctx, task, topic)
	if err != nil {
		return s.finishFailed(ctx, task.ID, job, err)
	}

	if _, err := s.repo.MarkCompleted(ctx, task.ID, result.Material.ID); err != nil {
		return err
	}
	s.observe(models.TaskCompleted)
	s.logger.Info("task completed",
		zap.String("task_id", task.ID),
		zap.String("material_id", result.Material.ID),
		zap.String("version", result.Version),
	)
	return nil
}

// finishFailed retries transient failures and marks the task failed once
// attempts run out.
func (s *TaskService) finishFailed(ctx context.Context, taskID string, job jobs.Job, cause error) error {
	if job.Attempt+1 < s.maxAttempts {
		return cause
	}
	if _, err := s.repo.MarkFailed(ctx, taskID, cause.Error()); err != nil {
		s.logger.Error("failed to record task failure", zap.String("task_id", taskID), zap.Error(err))
	}
	s.observe(models.TaskFailed)
	s.logger.Warn("task failed", zap.String("task_id", taskID), zap.Error(cause))
	return nil
}

func (s *TaskService) observe(status models.TaskStatus) {
	if s.metrics != nil {
		s.metrics.ObserveTaskTransition(status)
	}
}

func (s *TaskService) resolveTaskTopic(ctx context.Context, task *models.Task) (*models.Topic, error) {
	if task.TopicID != nil && *task.TopicID != "" {
		topic, err := s.topicRepo.FindByID(ctx, *task.TopicID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "task topic not found")
			}
			return nil, err
		}
		return topic, nil
	}

	if task.TopicName == nil || strings.TrimSpace(*task.TopicName) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "task has neither topic_id nor topic_name")
	}

	topic, err := s.generator.resolveTopic(ctx, task.SubjectID, *task.TopicName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetTopic(ctx, task.ID, topic.ID); err != nil {
		s.logger.Warn("failed to backfill task topic", zap.String("task_id", task.ID), zap.Error(err))
	}
	return topic, nil
}
