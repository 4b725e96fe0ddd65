package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/atsfit/internal/analysis"
)

const annotatePrompt = `You are an expert resume analyst. Compare this resume against the job description and produce annotation notes for a rewrite.

For each section of the resume, note:
- Which job requirements it already addresses
- Which important keywords from the job description are missing and where they could honestly fit
- Phrasing that should be aligned with the job description's terminology

Do NOT invent experience the candidate does not have.

Resume:
"""
%s
"""

Job description:
"""
%s
"""

Return the annotation notes as plain text.`

const rewritePrompt = `You are an expert resume writer. Rewrite this resume in Markdown to maximize its match against the job description, guided by the annotation notes.

Rules:
- Keep every claim truthful; reword and reorganize, never fabricate
- Weave missing keywords into sections where they honestly apply
- Keep a dedicated Skills section and clear work experience headings
- Preserve the candidate's name and contact details exactly

Resume:
"""
%s
"""

Job description:
"""
%s
"""

Annotation notes:
"""
%s
"""

Return a JSON object: {"optimized_resume": "<the full rewritten resume in Markdown>"}`

// Optimizer carries the per-run state shared between the annotate and
// rewrite stages. It implements the pipeline's Annotator and Rewriter roles.
type Optimizer struct {
	client   Client
	resumeMd string

	mu             sync.Mutex
	jobDescription string
	annotations    string
}

// NewOptimizer creates an Optimizer for one pipeline run over the cached
// resume.
func NewOptimizer(client Client, resumeMd string) *Optimizer {
	return &Optimizer{client: client, resumeMd: resumeMd}
}

// Annotate analyzes the resume against the job description and stores the
// resulting notes for the rewrite stage.
func (o *Optimizer) Annotate(ctx context.Context, jobDescription string) error {
	if strings.TrimSpace(jobDescription) == "" {
		return fmt.Errorf("job description is empty")
	}

	notes, err := o.client.GenerateContent(ctx, fmt.Sprintf(annotatePrompt, o.resumeMd, jobDescription), TierStandard)
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}
	if strings.TrimSpace(notes) == "" {
		return fmt.Errorf("annotation produced no notes")
	}

	o.mu.Lock()
	o.jobDescription = jobDescription
	o.annotations = notes
	o.mu.Unlock()
	return nil
}

// Rewrite produces the optimized resume from the annotated state. Annotate
// must have succeeded first.
func (o *Optimizer) Rewrite(ctx context.Context) (analysis.RewriteResult, error) {
	o.mu.Lock()
	jobDescription, annotations := o.jobDescription, o.annotations
	o.mu.Unlock()

	if annotations == "" {
		return analysis.RewriteResult{}, fmt.Errorf("rewrite requested before annotation")
	}

	raw, err := o.client.GenerateJSON(ctx, fmt.Sprintf(rewritePrompt, o.resumeMd, jobDescription, annotations), TierAdvanced)
	if err != nil {
		return analysis.RewriteResult{}, fmt.Errorf("rewrite failed: %w", err)
	}

	result := analysis.ParseRewriteResponse([]byte(raw))
	if strings.TrimSpace(result.Text()) == "" {
		return analysis.RewriteResult{}, fmt.Errorf("rewrite produced no resume text")
	}
	return result, nil
}
