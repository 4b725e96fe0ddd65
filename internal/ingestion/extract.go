// Package ingestion turns uploaded resume documents into clean plain text.
// PDF and DOCX are parsed structurally; TXT and MD pass through. All paths
// end in the same whitespace normalization.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxUploadSize is the largest resume document accepted, in bytes.
const MaxUploadSize = 5 << 20

// ErrUnsupportedType reports a file extension outside the accepted set.
type ErrUnsupportedType struct {
	Extension string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported file type %q: use .pdf, .docx, .txt or .md", e.Extension)
}

// Extraction is the result of pulling text out of an uploaded document.
type Extraction struct {
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
	CharCount int    `json:"charCount"`
}

// ExtractText extracts plain text from an uploaded resume document, keyed on
// the file extension.
func ExtractText(filename string, data []byte) (*Extraction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("file too large: %d bytes (limit %d)", len(data), MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return nil, &ErrUnsupportedType{Extension: ext}
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	if text == "" {
		return nil, fmt.Errorf("no text content found in %s", filename)
	}

	return &Extraction{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		CharCount: len(text),
	}, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return sb.String(), nil
}

// docx content is WordprocessingML; text lives in <w:t> runs and paragraphs
// end at </w:p>.
var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTextRun      = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

func extractDocx(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}
	defer func() { _ = reader.Close() }()

	content := reader.Editable().GetContent()

	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	var sb strings.Builder
	for _, line := range strings.Split(content, "\n") {
		runs := docxTextRun.FindAllStringSubmatch(line, -1)
		if len(runs) == 0 {
			// Keep any stray text outside runs after stripping tags
			if stripped := strings.TrimSpace(docxTag.ReplaceAllString(line, "")); stripped != "" {
				sb.WriteString(stripped)
				sb.WriteString("\n")
			}
			continue
		}
		for _, run := range runs {
			sb.WriteString(run[1])
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
