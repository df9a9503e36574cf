package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/pkg/version"
)

// NotesPDFRenderer writes lecture notes as an A4 PDF document.
type NotesPDFRenderer struct{}

// NewNotesPDFRenderer constructs the notes/pdf renderer.
func NewNotesPDFRenderer() *NotesPDFRenderer {
	return &NotesPDFRenderer{}
}

func (r *NotesPDFRenderer) Kind() models.MaterialKind   { return models.KindNotes }
func (r *NotesPDFRenderer) Format() models.OutputFormat { return models.FormatPDF }

func (r *NotesPDFRenderer) Render(ctx context.Context, c *Content, absPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	today := time.Now().Format(content.DateLayout)
	ver := c.Version
	if ver == "" {
		ver = version.Initial()
	}
	level := c.EducationalLevel
	if level == "" {
		level = "Undergraduate"
	}

	// Title and header block.
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, c.Topic, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	header := fmt.Sprintf("Subject: %s   |   Educational Level: %s   |   Version: %s (%s)",
		c.Subject, level, ver, today)
	pdf.MultiCell(0, 6, header, "", "C", false)
	pdf.Ln(4)
	pdf.SetDrawColor(120, 120, 120)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 195, y)
	pdf.Ln(6)

	if c.UpdateHighlights != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("UPDATE HIGHLIGHTS - %s (%s)", ver, today), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, c.UpdateHighlights, "", "", false)
		pdf.Ln(4)
	}

	if c.Introduction != "" {
		writePDFHeading(pdf, "Introduction", 14)
		writePDFBody(pdf, c.Introduction)
	}

	for _, section := range c.Sections {
		writePDFSection(pdf, section, 14)
	}

	if c.Summary != "" {
		writePDFHeading(pdf, "Summary", 14)
		writePDFBody(pdf, c.Summary)
	}

	if len(c.References) > 0 {
		writePDFHeading(pdf, "References", 14)
		pdf.SetFont("Arial", "", 10)
		for i, ref := range c.References {
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, formatReference(ref)), "", "", false)
		}
		pdf.Ln(3)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return 0, fmt.Errorf("prepare notes dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return 0, fmt.Errorf("render pdf: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return 0, fmt.Errorf("stat pdf: %w", err)
	}
	return info.Size(), nil
}

func writePDFSection(pdf *gofpdf.Fpdf, s Section, headingSize float64) {
	if headingSize < 10 {
		headingSize = 10
	}
	writePDFHeading(pdf, s.Title, headingSize)
	if s.Body != "" {
		writePDFBody(pdf, s.Body)
	}

	for _, sub := range s.Subsections {
		writePDFSection(pdf, sub, headingSize-2)
	}

	for _, table := range s.Tables {
		writePDFTable(pdf, table)
	}

	for _, code := range s.CodeBlocks {
		if code.Caption != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, code.Caption, "", "", false)
		}
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 4.5, code.Code, "", "", true)
		pdf.Ln(3)
	}
}

func writePDFHeading(pdf *gofpdf.Fpdf, title string, size float64) {
	pdf.SetFont("Arial", "B", size)
	pdf.CellFormat(0, 9, title, "", 1, "", false, 0, "")
	pdf.Ln(1)
}

func writePDFBody(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, text, "", "", false)
	pdf.Ln(3)
}

func writePDFTable(pdf *gofpdf.Fpdf, t Table) {
	if len(t.Headers) == 0 {
		return
	}
	if t.Caption != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, t.Caption, "", "", false)
	}

	colWidth := 180.0 / float64(len(t.Headers))
	pdf.SetFont("Arial", "B", 9)
	for _, header := range t.Headers {
		pdf.CellFormat(colWidth, 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}
