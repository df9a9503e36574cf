// Package content owns the on-disk layout of generated materials and their
// metadata.json sidecars.
//
// The tree is bit-compatible with existing archives:
//
//	{root}/{subject_slug}/{notes|quizzes|presentations}/{topic_slug}/
//	    {topic_slug}.{pdf|md}          (notes)
//	    {topic_slug}-quiz.docx         (quizzes)
//	    Slides/{topic_slug}.pptx       (presentations)
//	    metadata.json                  (all kinds, never inside Slides/)
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/pkg/slug"
)

// SlidesDir is the extra folder holding rendered presentation decks.
const SlidesDir = "Slides"

// MetadataFile is the sidecar filename written next to each material.
const MetadataFile = "metadata.json"

// Layout resolves storage paths beneath a fixed root directory.
type Layout struct {
	root string
}

// NewLayout ensures the root directory exists and returns a resolver.
func NewLayout(root string) (*Layout, error) {
	if root == "" {
		root = "./subjects"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create content root: %w", err)
	}
	return &Layout{root: root}, nil
}

// Root returns the absolute base directory.
func (l *Layout) Root() string {
	return l.root
}

// MaterialDir returns the directory for a material. For presentations,
// includeSlides selects the Slides/ subfolder where the deck itself lives;
// metadata always goes to the parent directory, so existence checks and
// sidecar paths pass includeSlides=false.
func (l *Layout) MaterialDir(subject string, kind models.MaterialKind, topic string, includeSlides bool) (string, error) {
	subjectSlug, err := slug.Sanitize(subject)
	if err != nil {
		return "", fmt.Errorf("sanitize subject: %w", err)
	}
	topicSlug, err := slug.Sanitize(topic)
	if err != nil {
		return "", fmt.Errorf("sanitize topic: %w", err)
	}

	dir := filepath.Join(l.root, subjectSlug, kind.Plural(), topicSlug)
	if kind == models.KindPresentation && includeSlides {
		dir = filepath.Join(dir, SlidesDir)
	}
	return dir, nil
}

// FileName returns the material filename. Quizzes carry a "-quiz" suffix
// regardless of format; other kinds are just the topic slug.
func (l *Layout) FileName(topic string, kind models.MaterialKind, format models.OutputFormat) (string, error) {
	topicSlug, err := slug.Sanitize(topic)
	if err != nil {
		return "", fmt.Errorf("sanitize topic: %w", err)
	}
	if kind == models.KindQuiz {
		return fmt.Sprintf("%s-quiz.%s", topicSlug, format), nil
	}
	return fmt.Sprintf("%s.%s", topicSlug, format), nil
}

// FilePath returns the full path of the rendered material file.
func (l *Layout) FilePath(subject string, kind models.MaterialKind, topic string, format models.OutputFormat) (string, error) {
	dir, err := l.MaterialDir(subject, kind, topic, true)
	if err != nil {
		return "", err
	}
	name, err := l.FileName(topic, kind, format)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// MetadataPath returns the sidecar path for a material identity.
func (l *Layout) MetadataPath(subject string, kind models.MaterialKind, topic string) (string, error) {
	dir, err := l.MaterialDir(subject, kind, topic, false)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, MetadataFile), nil
}

// Exists reports whether the topic directory already exists. This is the
// create-vs-update signal: presentations are checked at the parent
// directory, not Slides/.
func (l *Layout) Exists(subject string, kind models.MaterialKind, topic string) (bool, error) {
	dir, err := l.MaterialDir(subject, kind, topic, false)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat material dir: %w", err)
	}
	return info.IsDir(), nil
}

// RemoveMaterial deletes the whole topic directory including the sidecar,
// so a later re-creation starts clean at v1.0.
func (l *Layout) RemoveMaterial(subject string, kind models.MaterialKind, topic string) error {
	dir, err := l.MaterialDir(subject, kind, topic, false)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove material dir: %w", err)
	}
	return nil
}

// Rel converts an absolute path under the root into the relative form
// stored on Material rows.
func (l *Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return path
	}
	return rel
}
