// Package credential holds the secondary geocoding provider's API key.
package credential

import (
	"sync"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

// Store is a process-local, concurrency-safe holder for one API key.
// It implements domain.CredentialSource.
type Store struct {
	mu  sync.RWMutex
	key string
}

// NewStore creates a store seeded with key, which may be empty.
func NewStore(key string) *Store {
	return &Store{key: key}
}

// Get returns the stored key as-is.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Set replaces the stored key.
func (s *Store) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// Clear removes the stored key.
func (s *Store) Clear() {
	s.Set("")
}

// Credential returns the key and whether it is usable.
func (s *Store) Credential() (string, bool) {
	key := s.Get()
	return key, domain.ValidCredential(key)
}
