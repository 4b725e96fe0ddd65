package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResume = "# Jane Doe\n\n## Experience\nBackend engineer, 5 years."

func TestOptimizer_AnnotateStoresNotes(t *testing.T) {
	client := &fakeClient{response: "Section notes: mention Kubernetes under Experience."}
	opt := NewOptimizer(client, testResume)

	require.NoError(t, opt.Annotate(context.Background(), "Kubernetes-heavy platform role"))
	assert.Equal(t, "Section notes: mention Kubernetes under Experience.", opt.annotations)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], testResume)
	assert.Contains(t, client.prompts[0], "Kubernetes-heavy platform role")
}

func TestOptimizer_AnnotateRejectsEmptyJobDescription(t *testing.T) {
	opt := NewOptimizer(&fakeClient{}, testResume)
	assert.Error(t, opt.Annotate(context.Background(), "  \n"))
}

func TestOptimizer_AnnotateEmptyNotes(t *testing.T) {
	opt := NewOptimizer(&fakeClient{response: "   "}, testResume)
	err := opt.Annotate(context.Background(), "role")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notes")
}

func TestOptimizer_RewriteRequiresAnnotation(t *testing.T) {
	opt := NewOptimizer(&fakeClient{}, testResume)
	_, err := opt.Rewrite(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before annotation")
}

func TestOptimizer_RewriteStructuredResponse(t *testing.T) {
	client := &fakeClient{response: "notes"}
	opt := NewOptimizer(client, testResume)
	require.NoError(t, opt.Annotate(context.Background(), "role description"))

	client.response = `{"optimized_resume": "# Jane Doe\n\nOptimized."}`
	result, err := opt.Rewrite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nOptimized.", result.Text())
}

func TestOptimizer_RewriteErrorPropagates(t *testing.T) {
	client := &fakeClient{response: "notes"}
	opt := NewOptimizer(client, testResume)
	require.NoError(t, opt.Annotate(context.Background(), "role description"))

	client.err = fmt.Errorf("quota exceeded")
	_, err := opt.Rewrite(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.err)
}
