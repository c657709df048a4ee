// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Sessions only live as long as the process; nothing here touches disk.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each entry has its own mutex so a
//     session only ever sees one writer at a time.
//   - Idle entries are dropped by Prune (driven by the janitor).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds a session, replacing any with the same ID.
	Save(ctx context.Context, s *game.Session) error

	// View runs fn with the session locked for reading.
	View(ctx context.Context, id string, fn func(*game.Session) error) error

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Prune drops sessions untouched for longer than idle and returns how many went.
	Prune(ctx context.Context, idle time.Duration) int

	// Len is the number of sessions held.
	Len() int
}

type entry struct {
	mu      sync.Mutex
	s       *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games
	games map[string]*entry // keyed by Session.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("store: session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[s.ID] = &entry{s: s, touched: m.now()}
	return nil
}

func (m *memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) View(ctx context.Context, id string, fn func(*game.Session) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = m.now()
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
