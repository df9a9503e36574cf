package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/pkg/version"
)

// QuizDOCXRenderer writes a quiz as a minimal WordprocessingML package:
// [Content_Types].xml, the package rels and word/document.xml.
type QuizDOCXRenderer struct{}

// NewQuizDOCXRenderer constructs the quiz/docx renderer.
func NewQuizDOCXRenderer() *QuizDOCXRenderer {
	return &QuizDOCXRenderer{}
}

func (r *QuizDOCXRenderer) Kind() models.MaterialKind   { return models.KindQuiz }
func (r *QuizDOCXRenderer) Format() models.OutputFormat { return models.FormatDOCX }

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func (r *QuizDOCXRenderer) Render(ctx context.Context, c *Content, absPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(c.CLOs) == 0 {
		return 0, fmt.Errorf("quiz requires at least one CLO")
	}

	var body strings.Builder
	today := time.Now().Format(content.DateLayout)
	ver := c.Version
	if ver == "" {
		ver = version.Initial()
	}

	writeDocxHeading(&body, fmt.Sprintf("%s - Quiz", c.Topic), 32)
	writeDocxPara(&body, fmt.Sprintf("Subject: %s", c.Subject), false)
	writeDocxPara(&body, fmt.Sprintf("Version: %s (%s)", ver, today), false)
	if c.TimeDuration > 0 {
		writeDocxPara(&body, fmt.Sprintf("Time Allowed: %d minutes", c.TimeDuration), false)
	}
	if c.TotalMarks > 0 {
		writeDocxPara(&body, fmt.Sprintf("Total Marks: %d", c.TotalMarks), false)
	}
	writeDocxPara(&body, "", false)

	if c.UpdateHighlights != "" {
		writeDocxHeading(&body, fmt.Sprintf("Update Highlights - %s", ver), 26)
		writeDocxPara(&body, c.UpdateHighlights, false)
		writeDocxPara(&body, "", false)
	}

	writeDocxHeading(&body, "Course Learning Outcomes", 26)
	for i, clo := range c.CLOs {
		writeDocxPara(&body, fmt.Sprintf("CLO %d: %s", i+1, clo), false)
	}
	writeDocxPara(&body, "", false)

	writeDocxHeading(&body, "Questions", 26)
	for _, q := range c.Questions {
		label := fmt.Sprintf("Q%d.", q.Number)
		meta := make([]string, 0, 3)
		if q.Level != "" {
			meta = append(meta, q.Level)
		}
		if q.CLONumber > 0 {
			meta = append(meta, fmt.Sprintf("CLO %d", q.CLONumber))
		}
		if q.Marks > 0 {
			meta = append(meta, fmt.Sprintf("%d marks", q.Marks))
		}
		if len(meta) > 0 {
			label = fmt.Sprintf("%s [%s]", label, strings.Join(meta, ", "))
		}
		writeDocxPara(&body, label, true)
		writeDocxPara(&body, q.Prompt, false)
		writeDocxPara(&body, "", false)
	}

	document := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
%s  </w:body>
</w:document>`, body.String())

	return writeOOXMLPackage(absPath, []ooxmlPart{
		{Name: "[Content_Types].xml", Data: docxContentTypes},
		{Name: "_rels/.rels", Data: docxRels},
		{Name: "word/document.xml", Data: document},
	})
}

func writeDocxHeading(b *strings.Builder, text string, halfPoints int) {
	fmt.Fprintf(b, `    <w:p><w:r><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>
`, halfPoints, xmlEscape(text))
}

func writeDocxPara(b *strings.Builder, text string, bold bool) {
	props := ""
	if bold {
		props = "<w:rPr><w:b/></w:rPr>"
	}
	fmt.Fprintf(b, `    <w:p><w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p>
`, props, xmlEscape(text))
}
