package models

// Pagination describes the page window returned alongside list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// MaterialKind enumerates the generated material categories.
type MaterialKind string

const (
	KindNotes        MaterialKind = "notes"
	KindQuiz         MaterialKind = "quiz"
	KindPresentation MaterialKind = "presentation"
)

// Valid reports whether the kind is one of the known categories.
func (k MaterialKind) Valid() bool {
	switch k {
	case KindNotes, KindQuiz, KindPresentation:
		return true
	}
	return false
}

// Plural returns the storage subfolder name for the kind.
func (k MaterialKind) Plural() string {
	switch k {
	case KindNotes:
		return "notes"
	case KindQuiz:
		return "quizzes"
	case KindPresentation:
		return "presentations"
	}
	return string(k)
}

// OutputFormat enumerates the supported file formats.
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatMD   OutputFormat = "md"
	FormatDOCX OutputFormat = "docx"
	FormatPPTX OutputFormat = "pptx"
)

// Valid reports whether the format is supported.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatMD, FormatDOCX, FormatPPTX:
		return true
	}
	return false
}

// AllowedFor reports whether the format is producible for the given kind.
func (f OutputFormat) AllowedFor(kind MaterialKind) bool {
	switch kind {
	case KindNotes:
		return f == FormatPDF || f == FormatMD
	case KindQuiz:
		return f == FormatDOCX
	case KindPresentation:
		return f == FormatPPTX
	}
	return false
}
