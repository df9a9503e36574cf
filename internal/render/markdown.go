package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/pkg/version"
)

// NotesMarkdownRenderer writes lecture notes as structured Markdown.
type NotesMarkdownRenderer struct{}

// NewNotesMarkdownRenderer constructs the notes/md renderer.
func NewNotesMarkdownRenderer() *NotesMarkdownRenderer {
	return &NotesMarkdownRenderer{}
}

func (r *NotesMarkdownRenderer) Kind() models.MaterialKind   { return models.KindNotes }
func (r *NotesMarkdownRenderer) Format() models.OutputFormat { return models.FormatMD }

// Render emits header, optional update highlights, introduction, sections
// with nested subsections/tables/code, summary and references.
func (r *NotesMarkdownRenderer) Render(ctx context.Context, c *Content, absPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var b strings.Builder
	today := time.Now().Format(content.DateLayout)
	ver := c.Version
	if ver == "" {
		ver = version.Initial()
	}
	level := c.EducationalLevel
	if level == "" {
		level = "Undergraduate"
	}

	fmt.Fprintf(&b, "# %s\n\n---\n\n", c.Topic)
	fmt.Fprintf(&b, "**Subject**: %s\n", c.Subject)
	fmt.Fprintf(&b, "**Topic**: %s\n", c.Topic)
	fmt.Fprintf(&b, "**Educational Level**: %s\n", level)
	fmt.Fprintf(&b, "**Date**: %s\n", today)
	fmt.Fprintf(&b, "**Version**: %s (%s)\n\n", ver, today)

	if len(c.References) > 0 {
		refs := make([]string, 0, len(c.References))
		for _, ref := range c.References {
			refs = append(refs, formatReference(ref))
		}
		fmt.Fprintf(&b, "**Reference**: %s\n\n", strings.Join(refs, "; "))
	}
	b.WriteString("---\n\n")

	if c.UpdateHighlights != "" {
		fmt.Fprintf(&b, "---\n## UPDATE HIGHLIGHTS - %s (%s)\n\n%s\n\n---\n\n", ver, today, c.UpdateHighlights)
	}

	if c.Introduction != "" {
		fmt.Fprintf(&b, "## Introduction\n\n%s\n\n", c.Introduction)
	}

	for _, section := range c.Sections {
		writeMarkdownSection(&b, section, 2)
	}

	if c.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", c.Summary)
	}

	if len(c.References) > 0 {
		b.WriteString("## References\n\n")
		for i, ref := range c.References {
			fmt.Fprintf(&b, "%d. %s\n", i+1, formatReference(ref))
		}
		b.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return 0, fmt.Errorf("prepare notes dir: %w", err)
	}
	data := []byte(b.String())
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("write markdown notes: %w", err)
	}
	return int64(len(data)), nil
}

func writeMarkdownSection(b *strings.Builder, s Section, level int) {
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), s.Title)
	if s.Body != "" {
		fmt.Fprintf(b, "%s\n\n", s.Body)
	}

	for _, sub := range s.Subsections {
		writeMarkdownSection(b, sub, level+1)
	}

	for _, table := range s.Tables {
		writeMarkdownTable(b, table)
	}

	for _, code := range s.CodeBlocks {
		if code.Caption != "" {
			fmt.Fprintf(b, "*%s*\n", code.Caption)
		}
		fmt.Fprintf(b, "```%s\n%s\n```\n\n", code.Language, code.Code)
	}
}

func writeMarkdownTable(b *strings.Builder, t Table) {
	if len(t.Headers) == 0 || len(t.Rows) == 0 {
		return
	}
	if t.Caption != "" {
		fmt.Fprintf(b, "*%s*\n\n", t.Caption)
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(t.Headers, " | "))
	seps := make([]string, len(t.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range t.Rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}
	b.WriteString("\n")
}

func formatReference(ref content.Reference) string {
	parts := make([]string, 0, 3)
	if ref.Title != "" {
		parts = append(parts, ref.Title)
	}
	if ref.Author != "" {
		parts = append(parts, ref.Author)
	}
	if ref.URL != "" {
		parts = append(parts, ref.URL)
	}
	return strings.Join(parts, ", ")
}
