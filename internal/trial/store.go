package trial

import (
	"context"
	"sync"
)

// StorageKey is the logical record name for trial sessions. Store
// implementations namespace it per client scope.
const StorageKey = "trial_session"

// Store abstracts the storage medium behind the trial session so the same
// state machine works against memory, Redis, or anything else key-value
// shaped.
type Store interface {
	// Load returns the session for the scope, or nil when absent.
	Load(ctx context.Context, scope string) (*Session, error)
	// Save persists the session for the scope, replacing any prior record.
	Save(ctx context.Context, scope string, session *Session) error
	// Delete removes the record for the scope. Deleting a missing record is
	// not an error.
	Delete(ctx context.Context, scope string) error
	// Watch returns a channel that receives a signal whenever the scope's
	// record changes in another context. The channel closes when ctx ends.
	Watch(ctx context.Context, scope string) (<-chan struct{}, error)
}

// MemoryStore is an in-process Store for tests and single-instance use.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	watchers map[string][]chan struct{}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		watchers: make(map[string][]chan struct{}),
	}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, scope string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[scope]
	if !ok {
		return nil, nil
	}
	copied := session
	return &copied, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, scope string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[scope] = *session
	s.notifyLocked(scope)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, scope)
	s.notifyLocked(scope)
	return nil
}

// Watch implements Store.
func (s *MemoryStore) Watch(ctx context.Context, scope string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[scope] = append(s.watchers[scope], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		watchers := s.watchers[scope]
		for i, w := range watchers {
			if w == ch {
				s.watchers[scope] = append(watchers[:i], watchers[i+1:]...)
				break
			}
		}
		// Closing under the mutex guarantees no in-flight notify sends on
		// this channel.
		close(ch)
	}()

	return ch, nil
}

// notifyLocked delivers a non-blocking signal to each watcher of the scope.
// Callers must hold mu.
func (s *MemoryStore) notifyLocked(scope string) {
	for _, ch := range s.watchers[scope] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
