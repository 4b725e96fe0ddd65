package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResearcher struct {
	calls  int
	result string
	err    error
}

func (f *fakeResearcher) ResolveJobDescription(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.result, f.err
}

type fakeAnnotator struct {
	calls   int
	gotDesc string
	err     error
}

func (f *fakeAnnotator) Annotate(_ context.Context, jobDescription string) error {
	f.calls++
	f.gotDesc = jobDescription
	return f.err
}

type fakeRewriter struct {
	calls  int
	result RewriteResult
	err    error
}

func (f *fakeRewriter) Rewrite(_ context.Context) (RewriteResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestOrchestrator(r *fakeResearcher, a *fakeAnnotator, w *fakeRewriter) *Orchestrator {
	o := NewOrchestrator(r, a, w)
	o.delay = time.Millisecond
	return o
}

type recorder struct {
	updates  []Update
	complete string
	done     bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnUpdate: func(u Update) { r.updates = append(r.updates, u) },
		OnComplete: func(text string) {
			r.complete = text
			r.done = true
		},
	}
}

func (r *recorder) states() []State {
	states := make([]State, 0, len(r.updates))
	for _, u := range r.updates {
		states = append(states, u.State)
	}
	return states
}

func TestRun_MissingResumeFailsWithoutCalls(t *testing.T) {
	research := &fakeResearcher{}
	annotate := &fakeAnnotator{}
	rewrite := &fakeRewriter{}
	o := newTestOrchestrator(research, annotate, rewrite)
	rec := &recorder{}

	o.Run(context.Background(), "", "https://example.com/job", rec.callbacks())

	require.Len(t, rec.updates, 1)
	assert.Equal(t, StateFailed, rec.updates[0].State)
	assert.Equal(t, ErrResumeMissing, rec.updates[0].Error)
	assert.Zero(t, research.calls)
	assert.Zero(t, annotate.calls)
	assert.Zero(t, rewrite.calls)
}

func TestRun_URLTriggersResearchFirst(t *testing.T) {
	research := &fakeResearcher{result: "resolved description"}
	annotate := &fakeAnnotator{}
	rewrite := &fakeRewriter{result: TextRewrite("better resume")}
	o := newTestOrchestrator(research, annotate, rewrite)
	rec := &recorder{}

	o.Run(context.Background(), "# My Resume", "https://example.com/job123", rec.callbacks())

	assert.Equal(t, []State{StateResolvingJob, StateAnnotating, StateRewriting, StateComplete}, rec.states())
	assert.Equal(t, 1, research.calls)
	assert.Equal(t, "resolved description", annotate.gotDesc)
	assert.True(t, rec.done)
	assert.Equal(t, "better resume", rec.complete)
}

func TestRun_PlainDescriptionSkipsResearch(t *testing.T) {
	research := &fakeResearcher{}
	annotate := &fakeAnnotator{}
	rewrite := &fakeRewriter{result: TextRewrite("out")}
	o := newTestOrchestrator(research, annotate, rewrite)
	rec := &recorder{}

	desc := "Senior Engineer role requiring Python"
	o.Run(context.Background(), "# My Resume", desc, rec.callbacks())

	assert.Equal(t, []State{StateAnnotating, StateRewriting, StateComplete}, rec.states())
	assert.Zero(t, research.calls)
	assert.Equal(t, desc, annotate.gotDesc)
}

func TestRun_ResearchFailureStopsPipeline(t *testing.T) {
	research := &fakeResearcher{err: errors.New("research backend down")}
	annotate := &fakeAnnotator{}
	rewrite := &fakeRewriter{}
	o := newTestOrchestrator(research, annotate, rewrite)
	rec := &recorder{}

	o.Run(context.Background(), "# Resume", "see http://jobs.example/1", rec.callbacks())

	last := rec.updates[len(rec.updates)-1]
	assert.Equal(t, StateFailed, last.State)
	assert.Equal(t, "research backend down", last.Error)
	assert.Zero(t, annotate.calls)
	assert.Zero(t, rewrite.calls)
	assert.False(t, rec.done)
}

func TestRun_AnnotateFailureStopsPipeline(t *testing.T) {
	annotate := &fakeAnnotator{err: errors.New("annotation failed")}
	rewrite := &fakeRewriter{}
	o := newTestOrchestrator(&fakeResearcher{}, annotate, rewrite)
	rec := &recorder{}

	o.Run(context.Background(), "# Resume", "plain description", rec.callbacks())

	last := rec.updates[len(rec.updates)-1]
	assert.Equal(t, StateFailed, last.State)
	assert.Zero(t, rewrite.calls)
}

func TestRun_EmptyErrorGetsGenericMessage(t *testing.T) {
	annotate := &fakeAnnotator{err: errors.New("")}
	o := newTestOrchestrator(&fakeResearcher{}, annotate, &fakeRewriter{})
	rec := &recorder{}

	o.Run(context.Background(), "# Resume", "plain description", rec.callbacks())

	last := rec.updates[len(rec.updates)-1]
	assert.Equal(t, StateFailed, last.State)
	assert.Equal(t, errGeneric, last.Error)
}

func TestRun_StructuredRewriteExtracted(t *testing.T) {
	rewrite := &fakeRewriter{result: StructuredRewrite("structured output")}
	o := newTestOrchestrator(&fakeResearcher{}, &fakeAnnotator{}, rewrite)
	rec := &recorder{}

	o.Run(context.Background(), "# Resume", "plain description", rec.callbacks())

	assert.Equal(t, "structured output", rec.complete)
}

func TestRun_CancelledContextSuppressesUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	annotate := &fakeAnnotator{}
	o := newTestOrchestrator(&fakeResearcher{}, annotate, &fakeRewriter{result: TextRewrite("x")})

	updates := 0
	cb := Callbacks{
		OnUpdate: func(Update) {
			updates++
			cancel() // consumer torn down after the first transition
		},
		OnComplete: func(string) { t.Fatal("completion must not fire after cancellation") },
	}

	o.Run(ctx, "# Resume", "plain description", cb)

	assert.Equal(t, 1, updates)
}

func TestRun_StatusMessagesInOrder(t *testing.T) {
	o := newTestOrchestrator(&fakeResearcher{result: "desc"}, &fakeAnnotator{}, &fakeRewriter{result: TextRewrite("x")})
	rec := &recorder{}

	o.Run(context.Background(), "# Resume", "https://example.com/j", rec.callbacks())

	require.Len(t, rec.updates, 4)
	assert.Equal(t, statusResearch, rec.updates[0].Status)
	assert.Equal(t, statusAnnotate, rec.updates[1].Status)
	assert.Equal(t, statusRewrite, rec.updates[2].Status)
	assert.Equal(t, statusFinalizing, rec.updates[3].Status)
}
