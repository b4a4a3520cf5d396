package resultcache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	value     *CachedResult
	expiresAt time.Time
}

// memoryStore is the in-process ephemeral tier. Expired entries are dropped
// lazily on read and by Scan.
type memoryStore struct {
	entries *xsync.MapOf[string, memoryEntry]
	keys    *xsync.MapOf[string, Key]
	now     func() time.Time
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{
		entries: xsync.NewMapOf[memoryEntry](),
		keys:    xsync.NewMapOf[Key](),
		now:     time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, key Key) (*CachedResult, error) {
	entry, ok := s.entries.Load(key.String())
	if !ok {
		return nil, ErrNotFound
	}

	if s.now().After(entry.expiresAt) {
		s.entries.Delete(key.String())
		s.keys.Delete(key.String())
		return nil, ErrNotFound
	}

	return entry.value, nil
}

func (s *memoryStore) Set(
	ctx context.Context, key Key, entry *CachedResult, ttl time.Duration,
) error {
	s.entries.Store(key.String(), memoryEntry{value: entry, expiresAt: s.now().Add(ttl)})
	s.keys.Store(key.String(), key)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key Key) error {
	s.entries.Delete(key.String())
	s.keys.Delete(key.String())
	return nil
}

func (s *memoryStore) Scan(ctx context.Context) ([]Key, error) {
	var keys []Key
	s.keys.Range(func(raw string, key Key) bool {
		if entry, ok := s.entries.Load(raw); ok && !s.now().After(entry.expiresAt) {
			keys = append(keys, key)
		}
		return true
	})

	return keys, nil
}
