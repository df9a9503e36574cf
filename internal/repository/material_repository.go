package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// MaterialRepository manages persistence for the materials index. Rows
// mirror the metadata.json sidecars on disk; one row per (topic, kind).
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository constructs a MaterialRepository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = "m.id, m.topic_id, m.material_kind, m.output_format, m.version, m.file_path, m.file_size, m.metadata, m.created_at, m.updated_at"

// List returns materials matching the provided filters.
func (r *MaterialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, int, error) {
	base := "FROM materials m"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.SubjectID != "" {
		base += " JOIN topics t ON t.id = m.topic_id"
		conditions = append(conditions, fmt.Sprintf("t.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.TopicID != "" {
		conditions = append(conditions, fmt.Sprintf("m.topic_id = $%d", len(args)+1))
		args = append(args, filter.TopicID)
	}
	if filter.MaterialKind != "" {
		conditions = append(conditions, fmt.Sprintf("m.material_kind = $%d", len(args)+1))
		args = append(args, filter.MaterialKind)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"version":    "m.version",
		"created_at": "m.created_at",
		"updated_at": "m.updated_at",
	}
	if sortBy == "" {
		sortBy = "updated_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "m.updated_at"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", materialColumns, base, column, order, size, offset)

	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}
	return materials, total, nil
}

// FindByID fetches a material by ID.
func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*models.Material, error) {
	query := fmt.Sprintf("SELECT %s FROM materials m WHERE m.id = $1", materialColumns)
	var material models.Material
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		return nil, err
	}
	return &material, nil
}

// FindByTopicAndKind fetches the single material row for a (topic, kind)
// identity.
func (r *MaterialRepository) FindByTopicAndKind(ctx context.Context, topicID string, kind models.MaterialKind) (*models.Material, error) {
	query := fmt.Sprintf("SELECT %s FROM materials m WHERE m.topic_id = $1 AND m.material_kind = $2", materialColumns)
	var material models.Material
	if err := r.db.GetContext(ctx, &material, query, topicID, kind); err != nil {
		return nil, err
	}
	return &material, nil
}

// Upsert inserts the material row or, when the (topic_id, material_kind)
// identity already has one, refreshes it in place. The index row always
// reflects the latest rendered file; disk state stays the source of truth.
func (r *MaterialRepository) Upsert(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if material.CreatedAt.IsZero() {
		material.CreatedAt = now
	}
	material.UpdatedAt = now
	const query = `INSERT INTO materials (id, topic_id, material_kind, output_format, version, file_path, file_size, metadata, created_at, updated_at)
        VALUES (:id, :topic_id, :material_kind, :output_format, :version, :file_path, :file_size, :metadata, :created_at, :updated_at)
        ON CONFLICT (topic_id, material_kind) DO UPDATE SET
            output_format = EXCLUDED.output_format,
            version = EXCLUDED.version,
            file_path = EXCLUDED.file_path,
            file_size = EXCLUDED.file_size,
            metadata = EXCLUDED.metadata,
            updated_at = EXCLUDED.updated_at
        RETURNING id, created_at`
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert material: %w", err)
	}
	defer stmt.Close()

	// On the conflict path the row keeps its original id and created_at;
	// scan them back so callers reference the surviving row, not the
	// candidate insert.
	var surviving struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := stmt.GetContext(ctx, &surviving, material); err != nil {
		return fmt.Errorf("upsert material: %w", err)
	}
	material.ID = surviving.ID
	material.CreatedAt = surviving.CreatedAt
	return nil
}

// Delete removes a material row; attached CLOs cascade in the database.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM materials WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
