package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// ooxmlPart is one file inside an OOXML package.
type ooxmlPart struct {
	Name string
	Data string
}

// writeOOXMLPackage assembles the parts into a zip archive on disk and
// returns its size. DOCX and PPTX are both "Open Packaging Convention"
// zips; the renderers supply the XML parts.
func writeOOXMLPackage(absPath string, parts []ooxmlPart) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return 0, fmt.Errorf("prepare output dir: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.Name)
		if err != nil {
			return 0, fmt.Errorf("create package part %s: %w", part.Name, err)
		}
		if _, err := w.Write([]byte(part.Data)); err != nil {
			return 0, fmt.Errorf("write package part %s: %w", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalize package: %w", err)
	}

	if err := os.WriteFile(absPath, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write package: %w", err)
	}
	return int64(buf.Len()), nil
}

// xmlEscape escapes text for embedding in XML character data.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
