package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Usage actions recorded per optimization feature.
const (
	ActionScore    = "ats_score"
	ActionKeywords = "extract_keywords"
	ActionAnalyze  = "analyze"
)

// UsageRecord is one recorded feature invocation.
type UsageRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordUsage stores one feature invocation for a user.
func (db *DB) RecordUsage(ctx context.Context, userID, action string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_records (user_id, action) VALUES ($1, $2)`,
		userID, action,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// CountUsage returns how many times a user invoked an action since the given
// time. An empty action counts all actions.
func (db *DB) CountUsage(ctx context.Context, userID, action string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM usage_records WHERE user_id = $1 AND created_at >= $2`
	args := []any{userID, since}
	if action != "" {
		query += ` AND action = $3`
		args = append(args, action)
	}

	var count int
	if err := db.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}

// ListUsage returns a user's most recent usage records.
func (db *DB) ListUsage(ctx context.Context, userID string, limit int) ([]UsageRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, action, created_at
		 FROM usage_records WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	defer rows.Close()

	var records []UsageRecord
	for rows.Next() {
		var r UsageRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Action, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage records: %w", err)
	}
	return records, nil
}
