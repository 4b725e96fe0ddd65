package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainText(t *testing.T) {
	data := []byte("# Jane Doe\r\n\r\nBackend   engineer with    Go experience.\r\n")

	result, err := ExtractText("resume.txt", data)
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nBackend engineer with Go experience.", result.Text)
	assert.Equal(t, 8, result.WordCount)
	assert.Equal(t, len(result.Text), result.CharCount)
}

func TestExtractText_MarkdownExtension(t *testing.T) {
	result, err := ExtractText("resume.md", []byte("## Skills\n- Go\n- Kubernetes"))
	require.NoError(t, err)
	assert.Contains(t, result.Text, "## Skills")
	assert.Contains(t, result.Text, "- Go")
}

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText("resume.pages", []byte("content"))
	require.Error(t, err)

	var typeErr *ErrUnsupportedType
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ".pages", typeErr.Extension)
}

func TestExtractText_EmptyFile(t *testing.T) {
	_, err := ExtractText("resume.txt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestExtractText_TooLarge(t *testing.T) {
	_, err := ExtractText("resume.txt", make([]byte, MaxUploadSize+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestExtractText_WhitespaceOnly(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte("   \n\t\n  "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("definitely not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("definitely not a docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCX")
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"crlf normalized", "a\r\nb", "a\nb"},
		{"heading indentation removed", "   ## Experience", "## Experience"},
		{"bullet indentation kept", "  - shipped the thing", "  - shipped the thing"},
		{"inner spaces collapsed", "Go    and  Kubernetes", "Go and Kubernetes"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing whitespace trimmed", "line one   \nline two\t", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_PreservesResumeStructure(t *testing.T) {
	input := strings.Join([]string{
		"# Jane Doe",
		"",
		"## Skills",
		"- Go",
		"- Kubernetes",
		"",
		"## Experience",
		"Senior engineer at Acme.",
	}, "\n")

	out := CleanText(input)
	assert.Contains(t, out, "# Jane Doe")
	assert.Contains(t, out, "## Skills")
	assert.Contains(t, out, "- Go")
	assert.Contains(t, out, "## Experience")
}
