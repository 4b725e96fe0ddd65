package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRewriteResponse(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"structured object", `{"optimized_resume": "# Better Resume"}`, "# Better Resume"},
		{"bare json string", `"just the text"`, "just the text"},
		{"raw text fallback", "not json at all", "not json at all"},
		{"object without field", `{"something_else": "x"}`, `{"something_else": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseRewriteResponse([]byte(tt.payload))
			assert.Equal(t, tt.want, result.Text())
		})
	}
}

func TestRewriteResult_StructuredFallsBackWhenEmpty(t *testing.T) {
	r := RewriteResult{structured: true, raw: "fallback"}
	assert.Equal(t, "fallback", r.Text())
}
