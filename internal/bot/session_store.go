package bot

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soyeahso/parley/internal/domain"
)

// SessionStore is the pluggable persistence boundary for dialogue sessions.
// GetOrCreate returns the session for id, creating it when absent. Save is
// called after every turn; memory stores may treat it as a no-op.
type SessionStore interface {
	GetOrCreate(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Session, error)
	// Expire removes sessions idle since before the cutoff and returns
	// their IDs.
	Expire(ctx context.Context, cutoff time.Time) ([]string, error)
}

// MemorySessionStore keeps sessions in a map. It is the default store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MemorySessionStore) GetOrCreate(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s := domain.NewSession(id)
	m.sessions[id] = s
	return s, nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// List returns deep copies: callers read them without the per-session turn
// lock, so handing out the live pointers would race with turns in flight.
func (m *MemorySessionStore) List(_ context.Context) ([]*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemorySessionStore) Expire(_ context.Context, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for id, s := range m.sessions {
		if s.LastActiveAt.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	return expired, nil
}
