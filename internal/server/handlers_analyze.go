package server

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/atsfit/internal/analysis"
	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/llm"
	"github.com/jonathan/atsfit/internal/results"
	"github.com/jonathan/atsfit/internal/scoring"
)

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

// capturingResearcher records the resolved job description so keyword
// extraction can reuse it after the pipeline runs.
type capturingResearcher struct {
	inner    analysis.Researcher
	resolved string
}

func (c *capturingResearcher) ResolveJobDescription(ctx context.Context, jobDescriptionOrURL, resumeMd string) (string, error) {
	resolved, err := c.inner.ResolveJobDescription(ctx, jobDescriptionOrURL, resumeMd)
	if err != nil {
		return "", err
	}
	c.resolved = resolved
	return resolved, nil
}

// handleAnalyzeStream runs the full optimization pipeline and streams
// progress as Server-Sent Events. The final event carries the validated
// results reference.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "jobDescription is required")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	scope := s.clientID(r)

	// Load the resume and record usage concurrently before the pipeline
	// starts.
	var resumeMd string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stored, err := s.resumes.Get(gctx, scope)
		if err != nil {
			return err
		}
		if stored != nil {
			resumeMd = stored.ResumeMd
		}
		return nil
	})
	g.Go(func() error {
		s.recordUsage(gctx, scope, db.ActionAnalyze)
		return nil
	})
	if err := g.Wait(); err != nil {
		sse.WriteError(err.Error())
		return
	}

	capture := &capturingResearcher{inner: s.researcher, resolved: req.JobDescription}
	optimizer := llm.NewOptimizer(s.llmClient, resumeMd)
	orch := analysis.NewOrchestrator(capture, optimizer, optimizer)

	var optimized string
	failed := false
	orch.Run(ctx, resumeMd, req.JobDescription, analysis.Callbacks{
		OnUpdate: func(u analysis.Update) {
			if u.State == analysis.StateFailed {
				failed = true
				sse.WriteError(u.Error)
				return
			}
			sse.WriteStatus(string(u.State), u.Status)
		},
		OnComplete: func(optimizedResume string) {
			optimized = optimizedResume
		},
	})
	if failed || ctx.Err() != nil {
		return
	}

	keywords, err := s.extractor.ExtractKeywords(ctx, capture.resolved)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	initial := scoring.ScoreWithWeights(resumeMd, keywords, s.weights)
	final := scoring.ScoreWithWeights(optimized, keywords, s.weights)

	ref, err := s.results.Prepare(results.Data{
		Resume:          optimized,
		InitialScore:    float64(initial.Score),
		FinalScore:      float64(final.Score),
		MissingKeywords: len(final.MissingKeywords),
	}, func(step string) {
		sse.WriteStatus("finalizing", step)
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteEvent("results", map[string]any{ //nolint:errcheck
		"redirect":     "/results?" + ref.Encoded,
		"resumeKey":    ref.ResumeKey,
		"initialScore": initial.Score,
		"finalScore":   final.Score,
		"missing":      len(final.MissingKeywords),
	})
}
