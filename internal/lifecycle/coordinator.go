// Package lifecycle coordinates material creation and updates: slug
// resolution, existence checks, version decisions, rendering and the
// metadata sidecar, all under a per-material lock.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/internal/render"
	"github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/slug"
)

// Request describes one create-or-update operation. Subject and Topic are
// display names; slugs are derived here. Content may be nil for kinds
// that can synthesize a template (quiz questions, presentation slides).
type Request struct {
	Subject string
	Topic   string
	Kind    models.MaterialKind
	Format  models.OutputFormat
	Content *render.Content
	// Changes describes the update; required semantics only on updates,
	// where it becomes the version-history entry.
	Changes string
	// ThemeName forces a presentation theme; empty selects by subject.
	ThemeName string
}

// Result reports what one operation did.
type Result struct {
	SubjectSlug string
	TopicSlug   string
	Version     string
	Created     bool
	FilePath    string
	RelPath     string
	FileSize    int64
	Metadata    *content.Metadata
}

// Coordinator serialises operations per material identity and owns the
// create-versus-update decision.
type Coordinator struct {
	layout   *content.Layout
	registry *render.Registry
	logger   *zap.Logger

	locks sync.Map // identity key -> *sync.Mutex
	now   func() time.Time
}

// NewCoordinator wires a coordinator over a content layout and renderer
// registry.
func NewCoordinator(layout *content.Layout, registry *render.Registry, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		layout:   layout,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *Coordinator) lock(key string) *sync.Mutex {
	mu, _ := c.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func identityKey(subjectSlug string, kind models.MaterialKind, topicSlug string) string {
	return subjectSlug + "|" + string(kind) + "|" + topicSlug
}

// CreateOrUpdate renders the material and writes its metadata sidecar.
// A material that does not exist on disk is created at v1.0; an existing
// one gets a minor version bump with Changes recorded in its history.
// Concurrent calls for the same (subject, kind, topic) are serialised.
func (c *Coordinator) CreateOrUpdate(ctx context.Context, req Request) (*Result, error) {
	if !req.Kind.Valid() {
		return nil, errors.Clone(errors.ErrValidation, "unknown material kind")
	}
	if !req.Format.Valid() || !req.Format.AllowedFor(req.Kind) {
		return nil, errors.Clone(errors.ErrValidation, "output format not supported for this material kind")
	}

	subjectSlug, err := slug.Sanitize(req.Subject)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "invalid subject name")
	}
	topicSlug, err := slug.Sanitize(req.Topic)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "invalid topic name")
	}

	mu := c.lock(identityKey(subjectSlug, req.Kind, topicSlug))
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exists, err := c.layout.Exists(req.Subject, req.Kind, req.Topic)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "check material directory")
	}

	metaPath, err := c.layout.MetadataPath(req.Subject, req.Kind, req.Topic)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "resolve metadata path")
	}

	now := c.now()
	var meta *content.Metadata
	created := true
	if exists {
		meta, err = content.LoadMetadata(metaPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "read metadata")
		}
	}

	var ver string
	if meta == nil {
		// Fresh material, or a directory whose sidecar is missing or
		// corrupt; either way history restarts at v1.0.
		meta = content.NewMetadata(req.Topic, req.Subject, req.Kind, req.Format, now)
		ver = meta.CurrentVersion
	} else {
		created = false
		changes := req.Changes
		if changes == "" {
			changes = "Content update"
		}
		meta.Format = req.Format
		ver = meta.BumpVersion(changes, now)
	}

	body := req.Content
	if body == nil {
		body = &render.Content{}
	}
	body.Subject = req.Subject
	body.Topic = req.Topic
	body.Version = ver
	if !created {
		body.UpdateHighlights = req.Changes
	}

	if err := c.prepare(req, body, meta); err != nil {
		return nil, err
	}

	renderer, err := c.registry.Lookup(req.Kind, req.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "no renderer for requested format")
	}

	filePath, err := c.layout.FilePath(req.Subject, req.Kind, req.Topic, req.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "resolve material path")
	}

	size, err := renderer.Render(ctx, body, filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRenderFailed.Code, errors.ErrRenderFailed.Status, "render material")
	}

	if err := content.SaveMetadata(metaPath, meta); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "write metadata")
	}

	c.logger.Info("material written",
		zap.String("subject", subjectSlug),
		zap.String("topic", topicSlug),
		zap.String("kind", string(req.Kind)),
		zap.String("format", string(req.Format)),
		zap.String("version", ver),
		zap.Bool("created", created),
		zap.Int64("size", size),
	)

	return &Result{
		SubjectSlug: subjectSlug,
		TopicSlug:   topicSlug,
		Version:     ver,
		Created:     created,
		FilePath:    filePath,
		RelPath:     c.layout.Rel(filePath),
		FileSize:    size,
		Metadata:    meta,
	}, nil
}

// prepare fills kind-specific content and mirrors it into the metadata
// document.
func (c *Coordinator) prepare(req Request, body *render.Content, meta *content.Metadata) error {
	switch req.Kind {
	case models.KindNotes:
		if body.EducationalLevel == "" {
			body.EducationalLevel = "Undergraduate"
		}
		meta.EducationalLevel = body.EducationalLevel
		meta.References = body.References

	case models.KindQuiz:
		if len(body.CLOs) == 0 {
			return errors.Clone(errors.ErrValidation, "quiz requires at least one CLO")
		}
		if err := render.BuildQuestions(body); err != nil {
			return errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "build quiz questions")
		}
		meta.CLOs = body.CLOs
		meta.TimeDuration = body.TimeDuration
		meta.TotalQuestions = len(body.Questions)
		meta.ComplexityLevels = body.ComplexityLevels
		meta.QuestionTypes = body.QuestionTypes
		if len(body.References) > 0 {
			ref := body.References[0]
			meta.Reference = &ref
		}

	case models.KindPresentation:
		theme, selection := c.resolveTheme(req, body)
		body.Theme = theme.Record(selection)

		if len(body.Slides) == 0 {
			body.Slides = render.BuildSlides(body)
		}
		meta.NumberOfSlides = len(body.Slides)
		meta.Theme = body.Theme
		meta.Features = body.Features
		if len(body.References) > 0 {
			ref := body.References[0]
			meta.ReferenceMaterial = &ref
		}
	}
	return nil
}

func (c *Coordinator) resolveTheme(req Request, body *render.Content) (render.ThemeDefinition, string) {
	if req.ThemeName != "" {
		if def, ok := render.LookupTheme(req.ThemeName); ok {
			return def, "explicit"
		}
		c.logger.Warn("unknown theme requested, selecting by subject",
			zap.String("theme", req.ThemeName))
	}
	return render.SelectThemeForSubject(body.Subject), "auto"
}

// Delete removes the material directory and everything under it,
// including the metadata sidecar. Deleting what does not exist is not an
// error.
func (c *Coordinator) Delete(ctx context.Context, subject string, kind models.MaterialKind, topic string) error {
	subjectSlug, err := slug.Sanitize(subject)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "invalid subject name")
	}
	topicSlug, err := slug.Sanitize(topic)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidName.Code, errors.ErrInvalidName.Status, "invalid topic name")
	}

	mu := c.lock(identityKey(subjectSlug, kind, topicSlug))
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.layout.RemoveMaterial(subject, kind, topic); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "remove material directory")
	}
	return nil
}
