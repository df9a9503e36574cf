package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// CLORepository manages persistence for course learning outcomes.
type CLORepository struct {
	db *sqlx.DB
}

// NewCLORepository constructs a CLORepository.
func NewCLORepository(db *sqlx.DB) *CLORepository {
	return &CLORepository{db: db}
}

// ListByMaterial returns the CLOs for a material ordered by number.
func (r *CLORepository) ListByMaterial(ctx context.Context, materialID string) ([]models.CLO, error) {
	const query = `SELECT id, material_id, number, description, bloom_level FROM clos WHERE material_id = $1 ORDER BY number ASC`
	var clos []models.CLO
	if err := r.db.SelectContext(ctx, &clos, query, materialID); err != nil {
		return nil, fmt.Errorf("list clos: %w", err)
	}
	return clos, nil
}

// Replace swaps a material's CLO set in one transaction, renumbering
// from one in the given order.
func (r *CLORepository) Replace(ctx context.Context, materialID string, clos []models.CLO) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace clos: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clos WHERE material_id = $1`, materialID); err != nil {
		return fmt.Errorf("clear clos: %w", err)
	}

	const insert = `INSERT INTO clos (id, material_id, number, description, bloom_level)
        VALUES (:id, :material_id, :number, :description, :bloom_level)`
	for i := range clos {
		clos[i].MaterialID = materialID
		clos[i].Number = i + 1
		if clos[i].ID == "" {
			clos[i].ID = uuid.NewString()
		}
		if _, err := tx.NamedExecContext(ctx, insert, clos[i]); err != nil {
			return fmt.Errorf("insert clo %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace clos: %w", err)
	}
	return nil
}
