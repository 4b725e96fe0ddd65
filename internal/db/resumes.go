package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrResumeNotFound is returned when an operation targets a user with no
// stored resume.
var ErrResumeNotFound = errors.New("resume not found")

// Resume is the stored resume record. One resume per user.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	ResumeMd  string    `json:"resume_md"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetResume retrieves a user's resume. Returns nil without error when the
// user has no resume yet.
func (db *DB) GetResume(ctx context.Context, userID string) (*Resume, error) {
	var resume Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, resume_md, created_at, updated_at
		 FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&resume.ID, &resume.UserID, &resume.ResumeMd, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &resume, nil
}

// SaveResume creates or replaces a user's resume and returns the stored
// record.
func (db *DB) SaveResume(ctx context.Context, userID, resumeMd string) (*Resume, error) {
	var resume Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, resume_md)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET resume_md = $2, updated_at = NOW()
		 RETURNING id, user_id, resume_md, created_at, updated_at`,
		userID, resumeMd,
	).Scan(&resume.ID, &resume.UserID, &resume.ResumeMd, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &resume, nil
}

// DeleteResume removes a user's resume.
func (db *DB) DeleteResume(ctx context.Context, userID string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w for user %s", ErrResumeNotFound, userID)
	}
	return nil
}
