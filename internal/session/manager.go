package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/shared"
)

// Generic fallbacks for rejections whose payload carries no message.
const (
	GenericLoginMessage    = "unable to log in"
	GenericRegisterMessage = "unable to register user"
)

// Manager owns the session token lifecycle for one context.
//
// Local state is a cache of the shared [Store] value: it is seeded at
// construction, replaced on Login/Logout, and reconciled whenever another
// context writes the store. Presence of a token is sufficient for
// "authenticated"; validity is the identity service's concern.
type Manager struct {
	store  Store
	svc    services.Service
	logger *log.Logger

	mu    sync.RWMutex
	token string
	set   bool

	cancel func()
	done   chan struct{}
}

// NewManager creates a Manager seeded from store and subscribed to its changes.
func NewManager(store Store, svc services.Service, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	token, set, err := store.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to seed session state: %w", err)
	}

	notify, cancel := store.Subscribe()

	m := &Manager{
		store:  store,
		svc:    svc,
		logger: logger,
		token:  token,
		set:    set,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go m.watch(notify)

	return m, nil
}

// watch reconciles local state with the shared store on every notification.
func (m *Manager) watch(notify <-chan struct{}) {
	defer close(m.done)

	for range notify {
		m.refresh()
	}
}

// refresh re-reads the authoritative store value. On a read failure the prior
// consistent state is kept rather than half-applied.
func (m *Manager) refresh() {
	token, set, err := m.store.Token()
	if err != nil {
		m.logger.Warn("failed to re-read session store", "error", err)
		return
	}

	m.mu.Lock()
	m.token = token
	m.set = set
	m.mu.Unlock()
}

// Login authenticates against the identity service and publishes the returned
// token to the shared store. On failure the manager stays Anonymous and the
// returned error carries the server's rejection; surface it with
// [services.RejectionMessage] and [GenericLoginMessage].
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.svc == nil {
		return fmt.Errorf("%w: identity service not initialized", shared.ErrServiceUnavailable)
	}

	token, err := m.svc.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.store.SetToken(token); err != nil {
		return err
	}

	// The store notification also lands here eventually; updating the cache
	// synchronously keeps this context consistent without waiting a cycle.
	m.mu.Lock()
	m.token = token
	m.set = true
	m.mu.Unlock()

	m.logger.Info("session established")
	return nil
}

// Logout clears the shared token store, transitioning every open context to
// Anonymous within one notification cycle.
func (m *Manager) Logout() error {
	if err := m.store.ClearToken(); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = ""
	m.set = false
	m.mu.Unlock()

	m.logger.Info("session cleared")
	return nil
}

// Authenticated reports whether this context holds a session token.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set
}

// Token returns the cached session token, empty when Anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Close unsubscribes from the shared store and waits for the watcher to exit.
func (m *Manager) Close() {
	m.cancel()
	<-m.done
}
