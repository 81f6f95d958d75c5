package session

import (
	"context"
	"sync"
	"time"

	"greenverify/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is the standalone fallback when no Redis is configured. It is
// safe for concurrent handlers and expires entries after the TTL, so it does
// not grow without bound.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	stop    chan struct{}
	stopped sync.Once
	now     func() time.Time
}

type memoryEntry struct {
	rec       *models.SessionRecord
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Put(_ context.Context, rec *models.SessionRecord) (string, error) {
	id := uuid.NewString()
	rec.ID = id
	rec.CreatedAt = s.now().UTC()

	s.mu.Lock()
	s.entries[id] = memoryEntry{rec: rec, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.SessionRecord, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.rec, nil
}

func (s *MemoryStore) Close() error {
	s.stopped.Do(func() { close(s.stop) })
	return nil
}

// janitor sweeps expired entries so abandoned sessions do not accumulate.
func (s *MemoryStore) janitor() {
	interval := s.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
