package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// keywordListSchema validates the extraction response shape before any
// keyword reaches the scorer.
const keywordListSchema = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1},
	"minItems": 1
}`

const keywordPrompt = `Extract 15-20 specific technical keywords and phrases from this job description that are most important for ATS (Applicant Tracking System) matching.

Focus on:
- Programming languages, frameworks, and tools
- Technical skills and methodologies
- Certifications and platforms
- Industry-specific terminology

Exclude:
- Generic soft skills (e.g. "team player", "communication")
- Company names and locations
- Benefits and compensation terms

Return only a JSON array of strings, nothing else.

Job description:
"""
%s
"""`

// Extractor pulls ATS-relevant keywords out of a job description.
type Extractor struct {
	client Client
}

// NewExtractor creates an Extractor over the given client.
func NewExtractor(client Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractKeywords asks the model for the keyword list and validates the
// response against the expected schema before returning it.
func (e *Extractor) ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	raw, err := e.client.GenerateJSON(ctx, fmt.Sprintf(keywordPrompt, jobDescription), TierLite)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	keywords, err := ParseKeywordList(raw)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction returned invalid response: %w", err)
	}
	return keywords, nil
}

// ParseKeywordList validates and decodes a JSON keyword array. Duplicate
// entries (case-insensitive) are collapsed, preserving first occurrence.
func ParseKeywordList(raw string) ([]string, error) {
	schema := gojsonschema.NewStringLoader(keywordListSchema)
	document := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return nil, fmt.Errorf("failed to validate keyword list: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("keyword list does not match schema: %s", formatSchemaErrors(result))
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keyword list: %w", err)
	}

	seen := make(map[string]bool, len(keywords))
	deduped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		deduped = append(deduped, kw)
	}
	if len(deduped) == 0 {
		return nil, fmt.Errorf("keyword list is empty after normalization")
	}
	return deduped, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	var parts []string
	for _, desc := range result.Errors() {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, "; ")
}
