package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/atsfit/internal/scoring"
)

func TestPrintScoreResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreResult(&scoring.Result{
		Score:           70,
		TotalKeywords:   3,
		MatchedKeywords: []string{"React", "AWS Lambda"},
		MissingKeywords: []string{"Kubernetes"},
		Recommendations: []string{"Good keyword coverage, but room for improvement"},
	})

	out := buf.String()
	assert.Contains(t, out, "Score:    70/100")
	assert.Contains(t, out, "Matched (2):")
	assert.Contains(t, out, "Missing (1):")
	assert.Contains(t, out, "Kubernetes")
	assert.Contains(t, out, "Recommendations")
}

func TestPrintScoreResult_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreResult_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	missing := []string{"a", "b", "c", "d", "e", "f", "g"}
	p.PrintScoreResult(&scoring.Result{Score: 10, TotalKeywords: 7, MissingKeywords: missing})

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintKeywords([]string{"Go", "PostgreSQL"})

	out := buf.String()
	assert.Contains(t, out, "Extracted Keywords (2)")
	assert.Contains(t, out, "• Go")
	assert.Contains(t, out, "• PostgreSQL")
}
