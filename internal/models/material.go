package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Material is one generated artifact for a topic: lecture notes, a quiz or
// a slide deck. The version string increases strictly across updates of the
// same (topic, kind) identity; Metadata mirrors the on-disk metadata.json
// sidecar including the version history.
type Material struct {
	ID           string         `db:"id" json:"id"`
	TopicID      string         `db:"topic_id" json:"topic_id"`
	MaterialKind MaterialKind   `db:"material_kind" json:"material_kind"`
	OutputFormat OutputFormat   `db:"output_format" json:"output_format"`
	Version      string         `db:"version" json:"version"`
	FilePath     string         `db:"file_path" json:"file_path"`
	FileSize     *int64         `db:"file_size" json:"file_size,omitempty"`
	Metadata     types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// MaterialFilter captures supported filters for listing materials.
type MaterialFilter struct {
	TopicID      string
	SubjectID    string
	MaterialKind string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// VersionHistoryEntry is one row of a material's version history.
type VersionHistoryEntry struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Changes string `json:"changes"`
}
