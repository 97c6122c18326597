package session

import (
	"database/sql"
	"fmt"
	"sync"
)

// TokenKey is the key the session token lives under in the shared store.
const TokenKey = "authToken"

// Store is the process-wide shared session store: a keyed token slot plus a
// change notification channel any context can subscribe to.
//
// At most one authoritative token value exists at a time. Writers notify every
// subscriber after a change; subscribers reconcile by re-reading the store.
type Store interface {
	// Token returns the current token and whether one is set.
	Token() (string, bool, error)

	// SetToken replaces the authoritative token and notifies subscribers.
	SetToken(token string) error

	// ClearToken removes the token and notifies subscribers.
	ClearToken() error

	// Subscribe registers a change listener. The returned cancel func must be
	// called when the subscriber goes away.
	Subscribe() (<-chan struct{}, func())
}

// broadcaster fans change notifications out to subscribers.
//
// Channels are buffered with capacity one and sends never block: a subscriber
// that already has a pending notification re-reads the latest value anyway, so
// coalescing is safe.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func (b *broadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]chan struct{})
	}

	id := b.nextID
	b.nextID++

	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

func (b *broadcaster) notify() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// MemoryStore is an in-process [Store]. It backs tests and ephemeral sessions
// that should not outlive the process.
type MemoryStore struct {
	broadcaster

	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set, nil
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.set = true
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	s.token = ""
	s.set = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// DBStore is a SQLite-backed [Store]. The token survives process restarts the
// way the browser original survived page loads; in-process contexts still
// converge through the broadcaster.
type DBStore struct {
	broadcaster

	db *sql.DB
}

// NewDBStore creates a DBStore over an open database that has had migrations applied.
func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Token() (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", TokenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return value, true, nil
}

func (s *DBStore) SetToken(token string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, TokenKey, token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.notify()
	return nil
}

func (s *DBStore) ClearToken() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", TokenKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.notify()
	return nil
}
