// Package analysis orchestrates the resume optimization pipeline: resolve
// the job description (research), annotate the cached resume, then rewrite
// it. Stages run strictly in order, one attempt each; any failure terminates
// the pipeline with a user-facing message.
package analysis

import (
	"context"
	"strings"
	"time"
)

// State identifies where the pipeline currently is.
type State string

// Pipeline states. Failed is terminal and reachable from any non-terminal
// state.
const (
	StateIdle          State = "idle"
	StateResolvingJob  State = "resolving_job_description"
	StateAnnotating    State = "annotating"
	StateRewriting     State = "rewriting"
	StateComplete      State = "complete"
	StateFailed        State = "failed"
)

// Status messages shown while each stage runs. Order and count are part of
// the UX contract.
const (
	statusResearch   = "Analyzing job description from URL..."
	statusAnnotate   = "Matching keywords and skills..."
	statusRewrite    = "Optimizing resume structure..."
	statusFinalizing = "Finalizing optimized resume..."

	// finalizeDelay smooths the transition into the results view.
	finalizeDelay = 500 * time.Millisecond

	// ErrResumeMissing is the user-facing message when no resume is cached.
	ErrResumeMissing = "Resume not found. Please upload your resume first."

	// errGeneric is the fallback when a stage error carries no message.
	errGeneric = "An error occurred during processing"
)

// Researcher resolves a job description URL into description text.
type Researcher interface {
	ResolveJobDescription(ctx context.Context, jobDescriptionOrURL, resumeMd string) (string, error)
}

// Annotator annotates the cached resume against the working job description.
type Annotator interface {
	Annotate(ctx context.Context, jobDescription string) error
}

// Rewriter produces the optimized resume from ambient annotated state.
type Rewriter interface {
	Rewrite(ctx context.Context) (RewriteResult, error)
}

// Update is delivered to the consumer on every state transition.
type Update struct {
	State   State
	Status  string // human-readable progress text
	Error   string // set only when State is StateFailed
}

// Callbacks connect the orchestrator to its consumer.
type Callbacks struct {
	// OnUpdate receives every state transition. May be nil.
	OnUpdate func(Update)
	// OnComplete receives the extracted optimized resume text.
	OnComplete func(optimizedResume string)
}

// Orchestrator drives one pipeline run. Collaborators own the network calls;
// the orchestrator owns control flow, status sequencing, and error
// surfacing.
type Orchestrator struct {
	researcher Researcher
	annotator  Annotator
	rewriter   Rewriter

	// delay is the finalize pause, injectable for tests.
	delay time.Duration
}

// NewOrchestrator wires the three collaborators.
func NewOrchestrator(researcher Researcher, annotator Annotator, rewriter Rewriter) *Orchestrator {
	return &Orchestrator{
		researcher: researcher,
		annotator:  annotator,
		rewriter:   rewriter,
		delay:      finalizeDelay,
	}
}

// Run executes the pipeline once. resumeMd is the cached resume;
// jobDescription is either literal text or a URL-bearing string. Updates
// stop as soon as ctx is done (the stale-update guard), and no stage starts
// after a failure.
func (o *Orchestrator) Run(ctx context.Context, resumeMd, jobDescription string, cb Callbacks) {
	if strings.TrimSpace(resumeMd) == "" {
		o.fail(ctx, cb, ErrResumeMissing)
		return
	}

	// Stage 1 (conditional): resolve a URL into description text. A plain
	// description skips research entirely.
	finalJobDescription := jobDescription
	if strings.Contains(jobDescription, "http") {
		o.update(ctx, cb, Update{State: StateResolvingJob, Status: statusResearch})
		resolved, err := o.researcher.ResolveJobDescription(ctx, jobDescription, resumeMd)
		if err != nil {
			o.fail(ctx, cb, errMessage(err))
			return
		}
		finalJobDescription = resolved
	}

	// Stage 2: annotate.
	o.update(ctx, cb, Update{State: StateAnnotating, Status: statusAnnotate})
	if err := o.annotator.Annotate(ctx, finalJobDescription); err != nil {
		o.fail(ctx, cb, errMessage(err))
		return
	}

	// Stage 3: rewrite.
	o.update(ctx, cb, Update{State: StateRewriting, Status: statusRewrite})
	result, err := o.rewriter.Rewrite(ctx)
	if err != nil {
		o.fail(ctx, cb, errMessage(err))
		return
	}

	o.update(ctx, cb, Update{State: StateComplete, Status: statusFinalizing})

	select {
	case <-time.After(o.delay):
	case <-ctx.Done():
		return
	}

	if ctx.Err() != nil {
		return
	}
	if cb.OnComplete != nil {
		cb.OnComplete(result.Text())
	}
}

// update delivers a transition unless the consumer context is gone.
func (o *Orchestrator) update(ctx context.Context, cb Callbacks, u Update) {
	if ctx.Err() != nil {
		return
	}
	if cb.OnUpdate != nil {
		cb.OnUpdate(u)
	}
}

func (o *Orchestrator) fail(ctx context.Context, cb Callbacks, message string) {
	o.update(ctx, cb, Update{State: StateFailed, Error: message})
}

// errMessage extracts a user-facing message from a stage error.
func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return errGeneric
	}
	return err.Error()
}
