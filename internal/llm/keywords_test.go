package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned responses without touching the network.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return CleanJSONBlock(f.response), nil
}

func (f *fakeClient) GetModel(tier ModelTier) string { return string(tier) }
func (f *fakeClient) Close() error                   { return nil }

func TestExtractKeywords_ValidResponse(t *testing.T) {
	client := &fakeClient{response: `["Go", "Kubernetes", "PostgreSQL"]`}
	extractor := NewExtractor(client)

	keywords, err := extractor.ExtractKeywords(context.Background(), "Backend role using Go and Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, keywords)
}

func TestExtractKeywords_EmptyJobDescription(t *testing.T) {
	extractor := NewExtractor(&fakeClient{})
	_, err := extractor.ExtractKeywords(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestExtractKeywords_ClientError(t *testing.T) {
	cause := fmt.Errorf("model unavailable")
	extractor := NewExtractor(&fakeClient{err: cause})

	_, err := extractor.ExtractKeywords(context.Background(), "some posting")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestExtractKeywords_RejectsWrongShape(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"object instead of array", `{"keywords": ["Go"]}`},
		{"array of numbers", `[1, 2, 3]`},
		{"empty array", `[]`},
		{"not json", `Go, Kubernetes, PostgreSQL`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(&fakeClient{response: tt.response})
			_, err := extractor.ExtractKeywords(context.Background(), "posting")
			assert.Error(t, err)
		})
	}
}

func TestParseKeywordList_Normalization(t *testing.T) {
	keywords, err := ParseKeywordList(`["Go", "go", "  Kubernetes  ", "", "AWS"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes", "AWS"}, keywords)
}

func TestParseKeywordList_EmptyAfterNormalization(t *testing.T) {
	_, err := ParseKeywordList(`["   "]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
