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

// TopicRepository manages persistence for topics.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository constructs a TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// List returns topics matching the provided filters with per-kind
// material counts.
func (r *TopicRepository) List(ctx context.Context, filter models.TopicFilter) ([]models.TopicWithCounts, int, error) {
	base := "FROM topics t"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("t.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(t.name) LIKE $%d OR t.slug LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "t.name",
		"slug":       "t.slug",
		"created_at": "t.created_at",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "t.created_at"
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

	query := fmt.Sprintf(`SELECT t.id, t.subject_id, t.name, t.slug, t.description, t.created_at, t.updated_at,
        (SELECT COUNT(*) FROM materials m WHERE m.topic_id = t.id AND m.material_kind = 'notes') AS notes_count,
        (SELECT COUNT(*) FROM materials m WHERE m.topic_id = t.id AND m.material_kind = 'quiz') AS quiz_count,
        (SELECT COUNT(*) FROM materials m WHERE m.topic_id = t.id AND m.material_kind = 'presentation') AS presentation_count
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var topics []models.TopicWithCounts
	if err := r.db.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list topics: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count topics: %w", err)
	}
	return topics, total, nil
}

// FindByID fetches a topic by ID.
func (r *TopicRepository) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	const query = `SELECT id, subject_id, name, slug, description, created_at, updated_at FROM topics WHERE id = $1`
	var topic models.Topic
	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		return nil, err
	}
	return &topic, nil
}

// FindBySubjectAndSlug fetches a topic by its (subject_id, slug) identity.
func (r *TopicRepository) FindBySubjectAndSlug(ctx context.Context, subjectID, slug string) (*models.Topic, error) {
	const query = `SELECT id, subject_id, name, slug, description, created_at, updated_at FROM topics WHERE subject_id = $1 AND slug = $2`
	var topic models.Topic
	if err := r.db.GetContext(ctx, &topic, query, subjectID, slug); err != nil {
		return nil, err
	}
	return &topic, nil
}

// ExistsBySlug checks if a topic with the given slug exists within a
// subject, optionally excluding an ID.
func (r *TopicRepository) ExistsBySlug(ctx context.Context, subjectID, slug string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM topics WHERE subject_id = $1 AND slug = $2"
	args := []interface{}{subjectID, slug}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check topic slug: %w", err)
	}
	return true, nil
}

// Create inserts a new topic.
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = now
	}
	topic.UpdatedAt = now
	const query = `INSERT INTO topics (id, subject_id, name, slug, description, created_at, updated_at)
        VALUES (:id, :subject_id, :name, :slug, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// Update modifies an existing topic.
func (r *TopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	topic.UpdatedAt = time.Now().UTC()
	const query = `UPDATE topics SET name = :name, slug = :slug, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// Delete removes a topic; its materials cascade in the database.
func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM topics WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
