// Package trial implements the free-usage gate: a small persisted session
// that counts optimization attempts per client and expires after 24 hours.
package trial

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxAttempts is the number of free optimization runs per session.
	DefaultMaxAttempts = 3
	// DefaultExpiry is how long a session lives before it is recreated with
	// a fresh attempt counter. Expiry is the only time-based reset.
	DefaultExpiry = 24 * time.Hour
)

// Session is the persisted trial record for one client scope.
type Session struct {
	SessionID   string    `json:"session_id"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	CreatedAt   time.Time `json:"created_at"`
	LastAttempt time.Time `json:"last_attempt"`
}

// valid reports whether a loaded session is structurally usable.
func (s *Session) valid() bool {
	return s != nil && s.SessionID != "" && s.Attempts >= 0 && !s.CreatedAt.IsZero()
}

// Manager drives the trial state machine over a Store. It assumes a single
// logical writer per storage scope; the mutex in the bundled stores guards
// same-process callers only. Stores backed by shared infrastructure should
// add compare-and-swap if genuinely concurrent writers appear.
type Manager struct {
	store       Store
	maxAttempts int
	expiry      time.Duration
	now         func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithMaxAttempts overrides the attempt cap.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) { m.maxAttempts = n }
}

// WithExpiry overrides the session lifetime.
func WithExpiry(d time.Duration) Option {
	return func(m *Manager) { m.expiry = d }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		expiry:      DefaultExpiry,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetSession loads the current session for the scope, lazily replacing it
// with a fresh one when missing, structurally invalid, or expired. The
// replacement is persisted before it is returned.
func (m *Manager) GetSession(ctx context.Context, scope string) (*Session, error) {
	session, err := m.store.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial session: %w", err)
	}

	if session.valid() && !m.expired(session) {
		return session, nil
	}

	return m.createSession(ctx, scope)
}

// IncrementAttempt consumes one attempt. It returns false without mutating
// anything when the cap is reached.
func (m *Manager) IncrementAttempt(ctx context.Context, scope string) (bool, error) {
	session, err := m.GetSession(ctx, scope)
	if err != nil {
		return false, err
	}

	if session.Attempts >= session.MaxAttempts {
		return false, nil
	}

	session.Attempts++
	session.LastAttempt = m.now()
	if err := m.store.Save(ctx, scope, session); err != nil {
		return false, fmt.Errorf("failed to save trial session: %w", err)
	}
	return true, nil
}

// ResetSession deletes the persisted record outright; the next GetSession
// recreates it.
func (m *Manager) ResetSession(ctx context.Context, scope string) error {
	if err := m.store.Delete(ctx, scope); err != nil {
		return fmt.Errorf("failed to reset trial session: %w", err)
	}
	return nil
}

// CanMakeAttempt is a side-effect-free pre-check: attempts below the cap and
// the session not expired. Unlike IncrementAttempt it never mutates state,
// though GetSession may lazily recreate an expired record.
func (m *Manager) CanMakeAttempt(ctx context.Context, scope string) (bool, error) {
	session, err := m.GetSession(ctx, scope)
	if err != nil {
		return false, err
	}
	return session.Attempts < session.MaxAttempts && !m.expired(session), nil
}

// RemainingAttempts returns max(0, cap - attempts) for the current session.
func (m *Manager) RemainingAttempts(ctx context.Context, scope string) (int, error) {
	session, err := m.GetSession(ctx, scope)
	if err != nil {
		return 0, err
	}
	remaining := session.MaxAttempts - session.Attempts
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// DisplayText formats the attempt counter for presentation.
func (m *Manager) DisplayText(ctx context.Context, scope string) (string, error) {
	session, err := m.GetSession(ctx, scope)
	if err != nil {
		return "", err
	}
	remaining := session.MaxAttempts - session.Attempts
	if remaining <= 0 {
		return "Trial limit reached", nil
	}
	return fmt.Sprintf("%d/%d attempts remaining", remaining, session.MaxAttempts), nil
}

// Watch forwards the store's change notifications so live contexts can
// refresh their in-memory mirror when another context writes the session.
func (m *Manager) Watch(ctx context.Context, scope string) (<-chan struct{}, error) {
	return m.store.Watch(ctx, scope)
}

func (m *Manager) expired(session *Session) bool {
	return m.now().Sub(session.CreatedAt) > m.expiry
}

func (m *Manager) createSession(ctx context.Context, scope string) (*Session, error) {
	now := m.now()
	session := &Session{
		SessionID:   fmt.Sprintf("trial_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Attempts:    0,
		MaxAttempts: m.maxAttempts,
		CreatedAt:   now,
		LastAttempt: now,
	}
	if err := m.store.Save(ctx, scope, session); err != nil {
		return nil, fmt.Errorf("failed to persist new trial session: %w", err)
	}
	return session, nil
}
