package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// TaskRepository manages persistence for generation tasks. Status moves
// are conditional updates so concurrent workers cannot double-claim a
// task or resurrect a terminal one.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = "k.id, k.subject_id, k.topic_id, k.topic_name, k.material_kind, k.status, k.input_params, k.material_id, k.error_message, k.created_at, k.started_at, k.completed_at"

// List returns tasks matching the provided filters.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error) {
	base := "FROM tasks k"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("k.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("k.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.MaterialKind != "" {
		conditions = append(conditions, fmt.Sprintf("k.material_kind = $%d", len(args)+1))
		args = append(args, filter.MaterialKind)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"status":       "k.status",
		"created_at":   "k.created_at",
		"completed_at": "k.completed_at",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "k.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", taskColumns, base, column, order, size, offset)

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// FindByID fetches a task by ID.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks k WHERE k.id = $1", taskColumns)
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task in pending status.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO tasks (id, subject_id, topic_id, topic_name, material_kind, status, input_params, created_at)
        VALUES (:id, :subject_id, :topic_id, :topic_name, :material_kind, :status, :input_params, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// SetTopic records the topic a pending task resolved to.
func (r *TaskRepository) SetTopic(ctx context.Context, id, topicID string) error {
	const query = `UPDATE tasks SET topic_id = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, topicID); err != nil {
		return fmt.Errorf("set task topic: %w", err)
	}
	return nil
}

// MarkInProgress claims a pending task, stamping started_at. Returns
// false when the task was not in pending state.
func (r *TaskRepository) MarkInProgress(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE tasks SET status = $2, started_at = $3 WHERE id = $1 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, id, models.TaskInProgress, time.Now().UTC(), models.TaskPending)
	if err != nil {
		return false, fmt.Errorf("mark task in progress: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark task in progress: %w", err)
	}
	return affected == 1, nil
}

// MarkCompleted finishes an in-progress task with its produced material.
// Returns false when the task was not in progress.
func (r *TaskRepository) MarkCompleted(ctx context.Context, id, materialID string) (bool, error) {
	// Manual completions carry no material; the column is NULL then, never ''.
	material := sql.NullString{String: materialID, Valid: materialID != ""}
	const query = `UPDATE tasks SET status = $2, material_id = $3, completed_at = $4 WHERE id = $1 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, id, models.TaskCompleted, material, time.Now().UTC(), models.TaskInProgress)
	if err != nil {
		return false, fmt.Errorf("mark task completed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark task completed: %w", err)
	}
	return affected == 1, nil
}

// MarkFailed finishes an in-progress task with an error message. Returns
// false when the task was not in progress.
func (r *TaskRepository) MarkFailed(ctx context.Context, id, errorMessage string) (bool, error) {
	const query = `UPDATE tasks SET status = $2, error_message = $3, completed_at = $4 WHERE id = $1 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, id, models.TaskFailed, errorMessage, time.Now().UTC(), models.TaskInProgress)
	if err != nil {
		return false, fmt.Errorf("mark task failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark task failed: %w", err)
	}
	return affected == 1, nil
}

// Stats aggregates task counts by status.
func (r *TaskRepository) Stats(ctx context.Context) (*models.TaskStats, error) {
	const query = `SELECT
        COUNT(*) FILTER (WHERE status = 'pending') AS pending,
        COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
        COUNT(*) FILTER (WHERE status = 'completed') AS completed,
        COUNT(*) FILTER (WHERE status = 'failed') AS failed
        FROM tasks`
	var stats models.TaskStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	return &stats, nil
}

// Delete removes a task record.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
