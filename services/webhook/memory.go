package webhook

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	url       string
	expiresAt time.Time
}

const memorySweepInterval = time.Minute

// MemoryBackend is the single-process backend used when no Redis is
// configured. Entries expire together with the session cookie; writes sweep
// expired entries at most once per memorySweepInterval.
type MemoryBackend struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryBackend) Get(_ context.Context, sessionID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sessionID]
	if !ok {
		return "", false, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expiresAt) {
		delete(m.entries, sessionID)
		return "", false, nil
	}
	return e.url, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, sessionID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= memorySweepInterval {
		m.sweep(now)
	}
	m.entries[sessionID] = memoryEntry{url: url, expiresAt: now.Add(m.ttl)}
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryBackend) sweep(now time.Time) {
	m.lastSweep = now
	if m.ttl <= 0 {
		return
	}
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryBackend) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)
	return nil
}

func (m *MemoryBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
