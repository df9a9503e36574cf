package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/pkg/version"
)

// DateLayout is the day-resolution format used throughout metadata.json.
const DateLayout = "2006-01-02"

// Theme describes the color scheme recorded for presentations.
type Theme struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Selection string `json:"selection,omitempty"`
}

// Reference points at source material used during generation.
type Reference struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Metadata is the metadata.json document. Common fields always present;
// kind-specific fields are omitted when empty so a notes sidecar never
// carries quiz keys.
type Metadata struct {
	Topic          string                       `json:"topic"`
	Subject        string                       `json:"subject"`
	MaterialKind   models.MaterialKind          `json:"material_kind"`
	Format         models.OutputFormat          `json:"format"`
	CurrentVersion string                       `json:"current_version"`
	CreatedDate    string                       `json:"created_date"`
	LastUpdated    string                       `json:"last_updated"`
	VersionHistory []models.VersionHistoryEntry `json:"version_history"`

	// Notes.
	EducationalLevel string      `json:"educational_level,omitempty"`
	References       []Reference `json:"references,omitempty"`

	// Quiz.
	CLOs             []string   `json:"clos,omitempty"`
	TimeDuration     int        `json:"time_duration,omitempty"`
	TotalQuestions   int        `json:"total_questions,omitempty"`
	ComplexityLevels []string   `json:"complexity_levels,omitempty"`
	QuestionTypes    []string   `json:"question_types,omitempty"`
	Reference        *Reference `json:"reference,omitempty"`

	// Presentation.
	NumberOfSlides    int        `json:"number_of_slides,omitempty"`
	Theme             *Theme     `json:"theme,omitempty"`
	ReferenceMaterial *Reference `json:"reference_material,omitempty"`
	Features          []string   `json:"features,omitempty"`
}

// NewMetadata builds the initial document for a freshly created material,
// with a single "Initial creation" history entry at v1.0.
func NewMetadata(topic, subject string, kind models.MaterialKind, format models.OutputFormat, now time.Time) *Metadata {
	today := now.Format(DateLayout)
	initial := version.Initial()
	return &Metadata{
		Topic:          topic,
		Subject:        subject,
		MaterialKind:   kind,
		Format:         format,
		CurrentVersion: initial,
		CreatedDate:    today,
		LastUpdated:    today,
		VersionHistory: []models.VersionHistoryEntry{
			{Version: initial, Date: today, Changes: "Initial creation"},
		},
	}
}

// BumpVersion advances the document to the next minor version and appends a
// history entry carrying the caller-supplied changes description. A
// current_version that fails validation is treated as v1.0.
func (m *Metadata) BumpVersion(changes string, now time.Time) string {
	current := m.CurrentVersion
	if !version.IsValid(current) {
		current = version.Initial()
	}
	next := version.Increment(current, version.BumpMinor)
	today := now.Format(DateLayout)

	m.CurrentVersion = next
	m.LastUpdated = today
	m.VersionHistory = append(m.VersionHistory, models.VersionHistoryEntry{
		Version: next,
		Date:    today,
		Changes: changes,
	})
	return next
}

// LoadMetadata reads a sidecar document. Missing files and malformed JSON
// both return nil without error: corrupt history is treated as absent
// rather than failing the request.
func LoadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil
	}
	return &meta, nil
}

// SaveMetadata writes the sidecar, creating parent directories as needed.
// The document lands via a temp file and rename so readers never observe a
// partial write.
func SaveMetadata(path string, meta *Metadata) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare metadata dir: %w", err)
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".metadata-*.json")
	if err != nil {
		return fmt.Errorf("create metadata temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close metadata temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}
