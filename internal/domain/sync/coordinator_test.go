package sync

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/platform/logger"
)

// -------------------------
// Fakes
// -------------------------

type testLedgerRepo struct {
	mu   gosync.Mutex
	byID map[string]ledger.Entry
}

func newTestLedgerRepo() *testLedgerRepo {
	return &testLedgerRepo{byID: map[string]ledger.Entry{}}
}

func (r *testLedgerRepo) Get(ctx context.Context, petID string) (ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[petID]
	if !ok {
		return ledger.Entry{}, ledger.ErrEntryNotFound
	}
	return e, nil
}

func (r *testLedgerRepo) Put(ctx context.Context, e ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[e.PetID] = e
	return nil
}

func (r *testLedgerRepo) Delete(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, petID)
	return nil
}

type fakeGateway struct {
	mu gosync.Mutex

	applyCalls   int
	refreshCalls int

	lastHappiness int
	lastHunger    int
	lastHealth    int

	err error

	// si no es nil, ApplyEffects espera acá (para mantener un sync en vuelo)
	block chan struct{}
}

func (g *fakeGateway) ApplyEffects(ctx context.Context, petID string, dHappiness, dHunger, dHealth int) error {
	g.mu.Lock()
	g.applyCalls++
	g.lastHappiness, g.lastHunger, g.lastHealth = dHappiness, dHunger, dHealth
	block := g.block
	err := g.err
	g.mu.Unlock()

	if block != nil {
		<-block
	}
	return err
}

func (g *fakeGateway) Refresh(ctx context.Context, petID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshCalls++
	return g.err
}

func testCoordinator(gw Gateway) (*Coordinator, *ledger.Service) {
	ldg := ledger.NewService(newTestLedgerRepo())
	return NewCoordinator(gw, ldg, logger.New(logger.Options{})), ldg
}

func seedEvents(t *testing.T, ldg *ledger.Service, petID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := ldg.Append(context.Background(), petID, ledger.AppendInput{
			Kind:   ledger.KindTreasure,
			Title:  "Treasure!",
			Effect: ledger.Effect{Happiness: 10, Hunger: 2, Health: -1},
		}); err != nil {
			t.Fatalf("seed append error: %v", err)
		}
	}
}

// -------------------------
// Tests
// -------------------------

func TestCoordinator_Sync_AppliesTotals_ThenClears(t *testing.T) {
	gw := &fakeGateway{}
	c, ldg := testCoordinator(gw)

	seedEvents(t, ldg, "pet-1", 3)

	res, err := c.Sync(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	if !res.Applied || res.Events != 3 {
		t.Fatalf("expected applied sync of 3 events, got %+v", res)
	}
	if gw.applyCalls != 1 || gw.refreshCalls != 0 {
		t.Fatalf("expected one ApplyEffects call, got apply=%d refresh=%d", gw.applyCalls, gw.refreshCalls)
	}
	if gw.lastHappiness != 30 || gw.lastHunger != 6 || gw.lastHealth != -3 {
		t.Fatalf("wrong totals sent: %d/%d/%d", gw.lastHappiness, gw.lastHunger, gw.lastHealth)
	}

	// confirmación => entry completa fuera
	empty, err := ldg.IsEmpty(context.Background(), "pet-1")
	if err != nil || !empty {
		t.Fatalf("expected ledger cleared after confirmation, empty=%v err=%v", empty, err)
	}
}

func TestCoordinator_Sync_EmptyLedger_IsRefresh(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := testCoordinator(gw)

	res, err := c.Sync(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if res.Applied {
		t.Fatalf("expected refresh-only sync, got applied")
	}
	if gw.refreshCalls != 1 || gw.applyCalls != 0 {
		t.Fatalf("expected one Refresh call, got apply=%d refresh=%d", gw.applyCalls, gw.refreshCalls)
	}
}

func TestCoordinator_Sync_FailureLeavesLedgerIntact(t *testing.T) {
	gw := &fakeGateway{err: errors.New("node down")}
	c, ldg := testCoordinator(gw)

	seedEvents(t, ldg, "pet-1", 2)

	_, err := c.Sync(context.Background(), "pet-1")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}

	count, _ := ldg.Count(context.Background(), "pet-1")
	if count != 2 {
		t.Fatalf("failed sync must not touch the ledger, got %d events", count)
	}

	// el estado vuelve a idle: el reintento manual es posible
	if c.State("pet-1") != StateIdle {
		t.Fatalf("expected idle after failure, got %s", c.State("pet-1"))
	}
}

func TestCoordinator_Sync_RejectsSecondInFlight(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{block: block}
	c, ldg := testCoordinator(gw)

	seedEvents(t, ldg, "pet-1", 1)

	done := make(chan error, 1)
	go func() {
		_, err := c.Sync(context.Background(), "pet-1")
		done <- err
	}()

	// esperar a que el primer sync tome el slot
	for c.State("pet-1") != StateSyncing {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Sync(context.Background(), "pet-1"); !errors.Is(err, ErrSyncInFlight) {
		t.Fatalf("expected ErrSyncInFlight, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first sync error: %v", err)
	}
	if c.State("pet-1") != StateIdle {
		t.Fatalf("expected idle after completion")
	}
}

func TestCoordinator_Sync_DifferentPetsRunIndependently(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{block: block}
	c, ldg := testCoordinator(gw)

	seedEvents(t, ldg, "pet-1", 1)

	done := make(chan error, 1)
	go func() {
		_, err := c.Sync(context.Background(), "pet-1")
		done <- err
	}()
	for c.State("pet-1") != StateSyncing {
		time.Sleep(time.Millisecond)
	}

	// otra mascota no está bloqueada por el sync en vuelo de pet-1
	if _, err := c.Sync(context.Background(), "pet-2"); err != nil {
		t.Fatalf("pet-2 sync error: %v", err)
	}

	close(block)
	<-done
}
