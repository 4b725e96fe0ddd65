// Package resume manages the stored resume: content validation, persistence
// with retry, and the starter template used before a first upload.
package resume

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/retry"
)

// MinContentLength is the shortest resume accepted, in characters.
const MinContentLength = 10

// DefaultResumeMd is the starter resume shown before any upload.
const DefaultResumeMd = `# Your Name

email@example.com | (555) 555-5555 | City, ST

## Summary

Experienced professional seeking new opportunities.

## Skills

- Add your technical skills here

## Experience

### Company Name - Job Title
*Start date - End date*

- Describe what you accomplished
`

// Store is the persistence surface the service needs. *db.DB satisfies it.
type Store interface {
	GetResume(ctx context.Context, userID string) (*db.Resume, error)
	SaveResume(ctx context.Context, userID, resumeMd string) (*db.Resume, error)
	DeleteResume(ctx context.Context, userID string) error
}

// Service wraps resume persistence with validation and retry. Transient
// storage failures are retried with backoff before surfacing.
type Service struct {
	store     Store
	retryOpts retry.Options
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		retryOpts: retry.Options{
			Delays: retry.DefaultDelays,
			OnRetry: func(attempt int, err error) {
				log.Printf("[resume] Storage attempt %d failed, retrying: %v", attempt, err)
			},
		},
	}
}

// ValidateContent checks that content is usable as a resume.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("resume content is empty")
	}
	if len(trimmed) < MinContentLength {
		return fmt.Errorf("resume content too short: %d characters (minimum %d)", len(trimmed), MinContentLength)
	}
	if !strings.Contains(trimmed, "#") {
		return fmt.Errorf("resume content has no section headings")
	}
	return nil
}

// Get returns the stored resume, or nil when the user has none.
func (s *Service) Get(ctx context.Context, userID string) (*db.Resume, error) {
	var resume *db.Resume
	err := retry.Do(ctx, s.retryOpts, func(ctx context.Context) error {
		var err error
		resume, err = s.store.GetResume(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	return resume, nil
}

// GetContent returns the stored resume text, falling back to the starter
// template when nothing is stored.
func (s *Service) GetContent(ctx context.Context, userID string) (string, error) {
	resume, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if resume == nil {
		return DefaultResumeMd, nil
	}
	return resume.ResumeMd, nil
}

// Save validates and persists the resume.
func (s *Service) Save(ctx context.Context, userID, content string) (*db.Resume, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	var resume *db.Resume
	err := retry.Do(ctx, s.retryOpts, func(ctx context.Context) error {
		var err error
		resume, err = s.store.SaveResume(ctx, userID, content)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return resume, nil
}

// Delete removes the stored resume. Deleting when nothing is stored returns
// db.ErrResumeNotFound without retrying.
func (s *Service) Delete(ctx context.Context, userID string) error {
	err := retry.Do(ctx, s.retryOpts, func(ctx context.Context) error {
		err := s.store.DeleteResume(ctx, userID)
		if errors.Is(err, db.ErrResumeNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, db.ErrResumeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
