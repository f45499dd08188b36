package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// StorageFactory builds the Storage backing one session's cart.
type StorageFactory func(sessionKey string) (Storage, error)

// Manager hands out one hydrated Store per session key. A store is
// created and loaded on first touch and reused for the rest of the
// session.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	factory StorageFactory
	log     *logrus.Logger
}

func NewManager(factory StorageFactory, logger *logrus.Logger) *Manager {
	if factory == nil {
		panic("cart: NewManager called with nil storage factory")
	}
	return &Manager{
		stores:  make(map[string]*Store),
		factory: factory,
		log:     logger,
	}
}

// Get returns the store for sessionKey, hydrating it from storage the
// first time the session is seen.
func (m *Manager) Get(ctx context.Context, sessionKey string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionKey]; ok {
		return s, nil
	}

	storage, err := m.factory(sessionKey)
	if err != nil {
		return nil, err
	}

	s := NewStore(storage, m.log)
	s.Load(ctx)
	m.stores[sessionKey] = s
	return s, nil
}

// Drop forgets the in-memory store for sessionKey. Persisted state is
// untouched.
func (m *Manager) Drop(sessionKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionKey)
}
