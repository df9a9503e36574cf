package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// StatsRepository computes aggregate counts for the stats endpoint.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview gathers entity and per-status counts in one round trip.
func (r *StatsRepository) Overview(ctx context.Context) (*models.StatsOverview, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM subjects) AS subjects,
        (SELECT COUNT(*) FROM topics) AS topics,
        (SELECT COUNT(*) FROM materials WHERE material_kind = 'notes') AS notes,
        (SELECT COUNT(*) FROM materials WHERE material_kind = 'quiz') AS quizzes,
        (SELECT COUNT(*) FROM materials WHERE material_kind = 'presentation') AS presentations,
        COUNT(*) FILTER (WHERE k.status = 'pending') AS pending,
        COUNT(*) FILTER (WHERE k.status = 'in_progress') AS in_progress,
        COUNT(*) FILTER (WHERE k.status = 'completed') AS completed,
        COUNT(*) FILTER (WHERE k.status = 'failed') AS failed
        FROM tasks k`

	var row struct {
		Subjects      int `db:"subjects"`
		Topics        int `db:"topics"`
		Notes         int `db:"notes"`
		Quizzes       int `db:"quizzes"`
		Presentations int `db:"presentations"`
		Pending       int `db:"pending"`
		InProgress    int `db:"in_progress"`
		Completed     int `db:"completed"`
		Failed        int `db:"failed"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("stats overview: %w", err)
	}

	return &models.StatsOverview{
		Subjects: row.Subjects,
		Topics:   row.Topics,
		Materials: models.MaterialKindCounts{
			Notes:         row.Notes,
			Quizzes:       row.Quizzes,
			Presentations: row.Presentations,
		},
		Tasks: models.TaskStats{
			Pending:    row.Pending,
			InProgress: row.InProgress,
			Completed:  row.Completed,
			Failed:     row.Failed,
		},
	}, nil
}
