package memory

import (
	"context"
	"sync"

	"evolvagotchi/internal/domain/ledger"
)

// ledgerRepo guarda cada entry completa bajo su pet id: un slot por
// mascota, sin updates parciales.
type ledgerRepo struct {
	mu    sync.RWMutex
	byPet map[string]ledger.Entry
}

func NewLedgerRepo() ledger.Repository {
	return &ledgerRepo{
		byPet: make(map[string]ledger.Entry),
	}
}

func (r *ledgerRepo) Get(ctx context.Context, petID string) (ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byPet[petID]
	if !ok {
		return ledger.Entry{}, ledger.ErrEntryNotFound
	}

	// copia defensiva del slice: el service muta su copia antes del Put
	cp := e
	cp.Events = make([]ledger.Event, len(e.Events))
	copy(cp.Events, e.Events)
	return cp, nil
}

func (r *ledgerRepo) Put(ctx context.Context, e ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := e
	cp.Events = make([]ledger.Event, len(e.Events))
	copy(cp.Events, e.Events)
	r.byPet[e.PetID] = cp
	return nil
}

func (r *ledgerRepo) Delete(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPet, petID)
	return nil
}
