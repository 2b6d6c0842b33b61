package leaderboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned by operations on a store that has no backend.
var ErrNotConfigured = errors.New("leaderboard not configured")

// Entry is one player's standing.
type Entry struct {
	SessionID uuid.UUID `json:"session_id"`
	Player    string    `json:"player"`
	Points    int       `json:"points"`
	Level     int       `json:"level"`
	Completed []string  `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store records standings. Implementations must be safe for concurrent use;
// the console calls them from background commands.
type Store interface {
	Ping(ctx context.Context) error
	Record(ctx context.Context, e Entry) error
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// MemoryStore keeps standings in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[uuid.UUID]Entry)}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.Completed = append([]string(nil), e.Completed...)
	m.mu.Lock()
	m.entries[e.SessionID] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	m.mu.RUnlock()

	sortEntries(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// sortEntries orders by points descending, then by session id for stability.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].SessionID.String() > entries[j].SessionID.String()
	})
}
