package results

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// entryTTL is how long a parked resume survives without being consumed;
// long enough for any realistic view transition.
const entryTTL = 10 * time.Minute

type entry struct {
	text    string
	expires time.Time
}

// Store holds full resume texts between encoding and display so the encoded
// reference stays small. Entries expire after a short TTL; the display
// consumer reads by key and removes what it consumed.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore creates an empty transient store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put parks the text and returns its generated key.
func (s *Store) Put(text string) string {
	key := fmt.Sprintf("optimized_resume_%s", uuid.NewString())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.entries[key] = entry{text: text, expires: s.now().Add(entryTTL)}
	return key
}

// Get returns the text for a key if present and unexpired.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expires) {
		return "", false
	}
	return e.text, true
}

// Remove deletes a parked entry.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// evictExpired drops stale entries; callers hold the lock.
func (s *Store) evictExpired() {
	now := s.now()
	for key, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, key)
		}
	}
}
