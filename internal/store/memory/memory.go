package memory

import (
	"context"
	"sync"

	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/google/uuid"
)

// Table is an in-memory collection suitable for tests and dry runs.
type Table struct {
	mu      sync.RWMutex
	name    string
	entries []types.JournalEntry
}

// NewTable creates an empty table, optionally seeded with entries.
func NewTable(name string, seed ...types.JournalEntry) *Table {
	t := &Table{name: name}
	for _, e := range seed {
		_ = t.Insert(context.Background(), e)
	}
	return t
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) FetchAll(_ context.Context) ([]types.JournalEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]types.JournalEntry, len(t.entries))
	copy(out, t.entries)
	return out, nil
}

func (t *Table) Insert(_ context.Context, entry types.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	return nil
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
