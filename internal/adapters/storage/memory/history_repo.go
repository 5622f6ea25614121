package memory

import (
	"context"
	"sync"

	"evolvagotchi/internal/domain/history"
)

type historyRepo struct {
	mu    sync.RWMutex
	byPet map[string][]history.Entry
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{
		byPet: make(map[string][]history.Entry),
	}
}

func (r *historyRepo) Append(ctx context.Context, e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append(r.byPet[e.PetID], e)
	// cap del timeline: descartamos lo más viejo
	if len(entries) > history.MaxEntriesPerPet {
		entries = entries[len(entries)-history.MaxEntriesPerPet:]
	}
	r.byPet[e.PetID] = entries
	return nil
}

func (r *historyRepo) ListByPet(ctx context.Context, petID string) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.byPet[petID]
	out := make([]history.Entry, len(entries))
	copy(out, entries)
	return out, nil
}
