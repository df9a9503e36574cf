// Package render turns structured content into material files. Each
// renderer covers one (kind, format) pair; none of them make versioning or
// metadata decisions, they only write bytes to the path they are given.
package render

import (
	"context"
	"fmt"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
)

// Section is one block of notes content. Subsections nest one level deeper.
type Section struct {
	Title       string      `json:"title"`
	Body        string      `json:"content"`
	Subsections []Section   `json:"subsections,omitempty"`
	Tables      []Table     `json:"tables,omitempty"`
	CodeBlocks  []CodeBlock `json:"code_blocks,omitempty"`
}

// Table is tabular notes content.
type Table struct {
	Caption string     `json:"caption,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CodeBlock is fenced code within notes.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Code     string `json:"code"`
}

// Question is one quiz item with its Bloom level and CLO alignment.
type Question struct {
	Number    int    `json:"number"`
	Prompt    string `json:"prompt"`
	Level     string `json:"level,omitempty"`
	CLONumber int    `json:"clo_number,omitempty"`
	Marks     int    `json:"marks,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Slide is one presentation slide.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// Content is the structured input renderers consume. Common fields are
// always meaningful; kind-specific fields are read only by the matching
// renderer.
type Content struct {
	Subject          string `json:"subject"`
	Topic            string `json:"topic"`
	Version          string `json:"version,omitempty"`
	UpdateHighlights string `json:"update_highlights,omitempty"`

	// Notes.
	EducationalLevel string              `json:"educational_level,omitempty"`
	Introduction     string              `json:"introduction,omitempty"`
	Sections         []Section           `json:"sections,omitempty"`
	Summary          string              `json:"summary,omitempty"`
	References       []content.Reference `json:"references,omitempty"`

	// Quiz.
	CLOs             []string   `json:"clos,omitempty"`
	Questions        []Question `json:"questions,omitempty"`
	TotalQuestions   int        `json:"total_questions,omitempty"`
	TimeDuration     int        `json:"time_duration,omitempty"`
	TotalMarks       int        `json:"total_marks,omitempty"`
	ComplexityLevels []string   `json:"complexity_levels,omitempty"`
	QuestionTypes    []string   `json:"question_types,omitempty"`

	// Presentation.
	Slides   []Slide        `json:"slides,omitempty"`
	Theme    *content.Theme `json:"theme,omitempty"`
	Features []string       `json:"features,omitempty"`
}

// Renderer produces one (kind, format) variant of material file.
type Renderer interface {
	Kind() models.MaterialKind
	Format() models.OutputFormat
	// Render writes the document to absPath and returns its size in bytes.
	Render(ctx context.Context, c *Content, absPath string) (int64, error)
}

// Registry holds the closed set of renderers keyed by (kind, format).
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry wires the default renderer set.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[string]Renderer)}
	r.Register(NewNotesPDFRenderer())
	r.Register(NewNotesMarkdownRenderer())
	r.Register(NewQuizDOCXRenderer())
	r.Register(NewPresentationPPTXRenderer())
	return r
}

// Register adds a renderer, replacing any previous (kind, format) entry.
func (r *Registry) Register(renderer Renderer) {
	r.renderers[registryKey(renderer.Kind(), renderer.Format())] = renderer
}

// Lookup returns the renderer for a (kind, format) pair.
func (r *Registry) Lookup(kind models.MaterialKind, format models.OutputFormat) (Renderer, error) {
	renderer, ok := r.renderers[registryKey(kind, format)]
	if !ok {
		return nil, fmt.Errorf("no renderer for %s/%s", kind, format)
	}
	return renderer, nil
}

func registryKey(kind models.MaterialKind, format models.OutputFormat) string {
	return string(kind) + "/" + string(format)
}
