// Package results validates and encodes a finished optimization run for the
// hand-off between processing and display. The full resume text is parked in
// a transient store; the encoded reference carries only the storage key and
// numeric metadata, bounded so it stays safely below URL length limits.
package results

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxReferenceLength bounds the encoded reference (path + query).
const maxReferenceLength = 2000

// resultsPath is the display route the reference is built for.
const resultsPath = "/results"

// Data is the transient hand-off record produced by the orchestrator and
// consumed exactly once by Prepare.
type Data struct {
	Resume          string  `validate:"required"`
	InitialScore    float64 `validate:"gte=0,lte=100"`
	FinalScore      float64 `validate:"gte=0,lte=100"`
	MissingKeywords int     `validate:"gte=0"`
	Summary         string
}

// Reference is the validated, encoded form handed to the display consumer.
type Reference struct {
	// ResumeKey locates the full resume text in the transient store.
	ResumeKey string
	// Encoded is the query-string form of the reference.
	Encoded string
}

// ProgressFunc receives ordered status updates during preparation.
type ProgressFunc func(step string)

// Pipeline runs validation and encoding against a transient store.
type Pipeline struct {
	store    *Store
	validate *validator.Validate
}

// NewPipeline creates a Pipeline over the given transient store.
func NewPipeline(store *Store) *Pipeline {
	return &Pipeline{
		store:    store,
		validate: validator.New(),
	}
}

// Validate checks the integrity of a hand-off record. Failures are explicit
// errors; nothing is mutated or stored.
func (p *Pipeline) Validate(data Data) error {
	trimmed := strings.TrimSpace(data.Resume)
	if trimmed == "" {
		return fmt.Errorf("resume content is empty")
	}
	if len(trimmed) < 10 {
		return fmt.Errorf("resume content too short")
	}

	if err := p.validate.Struct(data); err != nil {
		var errs validator.ValidationErrors
		if ok := errors.As(err, &errs); ok && len(errs) > 0 {
			return fmt.Errorf("invalid %s", fieldLabel(errs[0].Field()))
		}
		return fmt.Errorf("results validation failed: %w", err)
	}

	// A lower final score is suspicious but not a rejection.
	if data.FinalScore < data.InitialScore-5 {
		log.Printf("[results] Warning: final score %.0f significantly below initial %.0f", data.FinalScore, data.InitialScore)
	}

	return nil
}

// Encode stores the resume text and builds the compact reference.
func (p *Pipeline) Encode(data Data) (*Reference, error) {
	key := p.store.Put(data.Resume)

	params := url.Values{}
	params.Set("resumeKey", key)
	params.Set("initial", strconv.FormatFloat(data.InitialScore, 'f', -1, 64))
	params.Set("final", strconv.FormatFloat(data.FinalScore, 'f', -1, 64))
	params.Set("missing", strconv.Itoa(data.MissingKeywords))
	params.Set("validated", "true")

	return &Reference{ResumeKey: key, Encoded: params.Encode()}, nil
}

// PreValidate confirms the encoded reference is usable before any hand-off:
// length bound, all required parameters present, the stored resume
// retrievable and non-empty, and numeric fields parseable.
func (p *Pipeline) PreValidate(ref *Reference) error {
	full := resultsPath + "?" + ref.Encoded
	if len(full) > maxReferenceLength {
		return fmt.Errorf("results reference too large (%d chars, limit %d)", len(full), maxReferenceLength)
	}

	params, err := url.ParseQuery(ref.Encoded)
	if err != nil {
		return fmt.Errorf("failed to parse encoded reference: %w", err)
	}

	for _, field := range []string{"resumeKey", "initial", "final", "missing"} {
		if params.Get(field) == "" {
			return fmt.Errorf("missing required parameter %q after encoding", field)
		}
	}

	resume, ok := p.store.Get(params.Get("resumeKey"))
	if !ok || strings.TrimSpace(resume) == "" {
		return fmt.Errorf("resume content not found in storage or empty")
	}

	if _, err := strconv.ParseFloat(params.Get("initial"), 64); err != nil {
		return fmt.Errorf("initial score invalid after encoding: %w", err)
	}
	if _, err := strconv.ParseFloat(params.Get("final"), 64); err != nil {
		return fmt.Errorf("final score invalid after encoding: %w", err)
	}
	if _, err := strconv.Atoi(params.Get("missing")); err != nil {
		return fmt.Errorf("missing keyword count invalid after encoding: %w", err)
	}

	return nil
}

// Prepare runs the complete pre-validation flow: validate, encode, then
// pre-validate. On any failure nothing is handed off and the error carries a
// descriptive message. The original record is considered consumed.
func (p *Pipeline) Prepare(data Data, onProgress ProgressFunc) (*Reference, error) {
	progress := func(step string) {
		if onProgress != nil {
			onProgress(step)
		}
	}

	progress("Validating optimization results...")
	if err := p.Validate(data); err != nil {
		return nil, fmt.Errorf("pre-validation failed: %w", err)
	}

	progress("Preparing results display...")
	ref, err := p.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("pre-validation failed: %w", err)
	}

	progress("Finalizing...")
	if err := p.PreValidate(ref); err != nil {
		// Do not leave an orphaned resume behind a rejected reference.
		p.store.Remove(ref.ResumeKey)
		return nil, fmt.Errorf("pre-validation failed: %w", err)
	}

	progress("Ready! Taking you to results...")
	return ref, nil
}

// fieldLabel maps struct field names to user-facing labels.
func fieldLabel(field string) string {
	switch field {
	case "InitialScore":
		return "initial score"
	case "FinalScore":
		return "final score"
	case "MissingKeywords":
		return "missing keywords count"
	default:
		return strings.ToLower(field)
	}
}
