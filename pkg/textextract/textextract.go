package textextract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractedText is the narration-ready content of a document.
type ExtractedText struct {
	Content string
	Pages   int
	Type    string
}

// Extract reads the document in data and returns its plain text. fileType
// may be an extension (".pdf"), a bare type ("pdf") or a MIME type.
func Extract(data io.ReaderAt, size int64, fileType string) (*ExtractedText, error) {
	switch normalizeType(fileType) {
	case "pdf":
		return extractPDF(data, size)
	case "docx":
		return extractDOCX(data, size)
	case "txt":
		return extractTXT(data, size, "txt")
	case "md":
		return extractTXT(data, size, "md")
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func SupportedTypes() []string {
	return []string{".pdf", ".docx", ".txt", ".md"}
}

func normalizeType(fileType string) string {
	switch strings.ToLower(strings.TrimSpace(fileType)) {
	case ".pdf", "pdf", "application/pdf":
		return "pdf"
	case ".docx", "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case ".txt", "txt", "text/plain":
		return "txt"
	case ".md", "md", "markdown", "text/markdown":
		return "md"
	}
	return ""
}

func extractPDF(data io.ReaderAt, size int64) (*ExtractedText, error) {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	// A blank line between pages keeps paragraph-aware segmentation from
	// gluing the last sentence of one page to the first of the next.
	return &ExtractedText{
		Content: strings.Join(pages, "\n\n"),
		Pages:   numPages,
		Type:    "pdf",
	}, nil
}

func extractDOCX(data io.ReaderAt, size int64) (*ExtractedText, error) {
	reader, err := zip.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open DOCX: %w", err)
	}

	for _, f := range reader.File {
		if filepath.Base(f.Name) != "document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}

		return &ExtractedText{
			Content: stripXMLTags(string(content)),
			Pages:   1,
			Type:    "docx",
		}, nil
	}

	return nil, fmt.Errorf("no document.xml in DOCX archive")
}

func extractTXT(data io.ReaderAt, size int64, kind string) (*ExtractedText, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	return &ExtractedText{
		Content: string(bytes.TrimSpace(buf)),
		Pages:   1,
		Type:    kind,
	}, nil
}

func stripXMLTags(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
