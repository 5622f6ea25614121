package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"evolvagotchi/internal/platform/blockclock"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, startBlock uint64) (*Service, *testRepo, *blockclock.Manual) {
	t.Helper()

	repo := newTestRepo()
	clock := blockclock.NewManual(startBlock)
	svc := NewService(repo, clock, DefaultTuning())
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc, repo, clock
}

func mintTestPet(t *testing.T, svc *Service, owner string) Pet {
	t.Helper()

	p, err := svc.Mint(context.Background(), owner, MintInput{
		Name:        "Milo",
		PaymentGwei: DefaultTuning().MintCostGwei,
	})
	if err != nil {
		t.Fatalf("Mint error: %v", err)
	}
	return p
}

// -------------------------
// Tests
// -------------------------

func TestService_Mint_FreshStats(t *testing.T) {
	svc, _, _ := newTestService(t, 1000)

	p := mintTestPet(t, svc, "owner-1")

	if p.Happiness != 100 || p.Hunger != 0 || p.Health != 100 {
		t.Fatalf("expected fresh stats 100/0/100, got %d/%d/%d", p.Happiness, p.Hunger, p.Health)
	}
	if p.Stage != StageEgg {
		t.Fatalf("expected egg, got %s", p.Stage)
	}
	if p.BirthBlock != 1000 || p.LastUpdateBlock != 1000 {
		t.Fatalf("expected birth/update at block 1000, got %d/%d", p.BirthBlock, p.LastUpdateBlock)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestService_Mint_Validation(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	cost := DefaultTuning().MintCostGwei

	cases := []struct {
		name    string
		owner   string
		in      MintInput
		wantErr error
	}{
		{"empty name", "owner-1", MintInput{Name: "   ", PaymentGwei: cost}, ErrInvalidName},
		{"name too long", "owner-1", MintInput{Name: "abcdefghijklmnopqrstu", PaymentGwei: cost}, ErrInvalidName},
		{"underpaid", "owner-1", MintInput{Name: "Milo", PaymentGwei: cost - 1}, ErrInsufficientPayment},
		{"no owner", "", MintInput{Name: "Milo", PaymentGwei: cost}, ErrUnauthorized},
	}

	for _, tc := range cases {
		if _, err := svc.Mint(context.Background(), tc.owner, tc.in); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestService_GetInfo_NoDecayOnRead(t *testing.T) {
	svc, repo, clock := newTestService(t, 0)
	p := mintTestPet(t, svc, "owner-1")

	clock.Advance(5000)

	info, err := svc.GetInfo(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetInfo error: %v", err)
	}

	// leer no actualiza: stats intactos, solo reporta la distancia
	if info.Hunger != 0 || info.Happiness != 100 {
		t.Fatalf("read applied decay: %d/%d", info.Hunger, info.Happiness)
	}
	if info.BlocksSinceUpdate != 5000 {
		t.Fatalf("expected 5000 blocks since update, got %d", info.BlocksSinceUpdate)
	}
	if stored := repo.byID[p.ID]; stored.LastUpdateBlock != 0 {
		t.Fatalf("read persisted an update")
	}
}

func TestService_UpdateState_PersistsDecay(t *testing.T) {
	svc, repo, clock := newTestService(t, 0)
	p := mintTestPet(t, svc, "owner-1")

	clock.Advance(5000)

	got, err := svc.UpdateState(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("UpdateState error: %v", err)
	}
	if got.Hunger != 10 || got.Happiness != 95 {
		t.Fatalf("expected 10/95 after decay, got %d/%d", got.Hunger, got.Happiness)
	}
	if stored := repo.byID[p.ID]; stored.LastUpdateBlock != 5000 {
		t.Fatalf("decay not persisted")
	}
}

func TestService_Feed_DecaysThenApplies(t *testing.T) {
	svc, _, clock := newTestService(t, 0)
	tn := DefaultTuning()
	p := mintTestPet(t, svc, "owner-1")

	// 25000 bloques: hunger 50, happiness 75
	clock.Advance(25000)

	got, err := svc.Feed(context.Background(), "owner-1", p.ID, tn.FeedCostGwei)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}

	// decay primero, después el efecto: hunger 50-40=10, happiness 75+15=90
	if got.Hunger != 10 {
		t.Fatalf("expected hunger 10, got %d", got.Hunger)
	}
	if got.Happiness != 90 {
		t.Fatalf("expected happiness 90, got %d", got.Happiness)
	}
}

func TestService_Feed_Preconditions(t *testing.T) {
	svc, repo, _ := newTestService(t, 0)
	tn := DefaultTuning()
	p := mintTestPet(t, svc, "owner-1")

	if _, err := svc.Feed(context.Background(), "stranger", p.ID, tn.FeedCostGwei); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Feed(context.Background(), "owner-1", p.ID, tn.FeedCostGwei-1); !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if _, err := svc.Feed(context.Background(), "owner-1", "nope", tn.FeedCostGwei); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// mascota muerta: el error no persiste ni el decay
	dead := repo.byID[p.ID]
	dead.IsDead = true
	dead.Hunger = 33
	repo.byID[p.ID] = dead

	if _, err := svc.Feed(context.Background(), "owner-1", p.ID, tn.FeedCostGwei); !errors.Is(err, ErrAlreadyDead) {
		t.Fatalf("expected ErrAlreadyDead, got %v", err)
	}
	if repo.byID[p.ID].Hunger != 33 {
		t.Fatalf("failed feed mutated state")
	}
}

func TestService_Play_RaisesHappiness(t *testing.T) {
	svc, repo, _ := newTestService(t, 0)
	p := mintTestPet(t, svc, "owner-1")

	cur := repo.byID[p.ID]
	cur.Happiness = 40
	repo.byID[p.ID] = cur

	got, err := svc.Play(context.Background(), "owner-1", p.ID)
	if err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if got.Happiness != 65 {
		t.Fatalf("expected happiness 65, got %d", got.Happiness)
	}
}

func TestService_Revive_PartialRestore(t *testing.T) {
	svc, repo, clock := newTestService(t, 0)
	tn := DefaultTuning()
	p := mintTestPet(t, svc, "owner-1")

	// viva => ErrNotDead
	if _, err := svc.Revive(context.Background(), "owner-1", p.ID, tn.ReviveCostGwei); !errors.Is(err, ErrNotDead) {
		t.Fatalf("expected ErrNotDead, got %v", err)
	}

	dead := repo.byID[p.ID]
	dead.IsDead = true
	dead.DeathBlock = 700
	dead.Health = 0
	dead.Hunger = 100
	dead.Happiness = 5
	repo.byID[p.ID] = dead

	clock.Set(9000)

	got, err := svc.Revive(context.Background(), "owner-1", p.ID, tn.ReviveCostGwei)
	if err != nil {
		t.Fatalf("Revive error: %v", err)
	}

	if got.IsDead || got.DeathBlock != 0 {
		t.Fatalf("expected alive pet, got %+v", got)
	}
	if got.Health != tn.ReviveHealth {
		t.Fatalf("expected health %d, got %d", tn.ReviveHealth, got.Health)
	}
	// hambre y ánimo quedan como al morir; el decay arranca de cero
	if got.Hunger != 100 || got.Happiness != 5 {
		t.Fatalf("revive touched hunger/happiness: %d/%d", got.Hunger, got.Happiness)
	}
	if got.LastUpdateBlock != 9000 {
		t.Fatalf("expected update mark reset to 9000, got %d", got.LastUpdateBlock)
	}
}

func TestService_ApplyEventEffects_ClampsAndKills(t *testing.T) {
	svc, repo, _ := newTestService(t, 0)
	p := mintTestPet(t, svc, "owner-1")

	got, err := svc.ApplyEventEffects(context.Background(), "owner-1", p.ID, 30, 10, 0)
	if err != nil {
		t.Fatalf("ApplyEventEffects error: %v", err)
	}
	if got.Happiness != 100 {
		t.Fatalf("expected happiness clamped at 100, got %d", got.Happiness)
	}
	if got.Hunger != 10 {
		t.Fatalf("expected hunger 10, got %d", got.Hunger)
	}

	// efectos negativos pueden matar
	cur := repo.byID[p.ID]
	cur.Health = 3
	cur.Hunger = 50
	repo.byID[p.ID] = cur

	got, err = svc.ApplyEventEffects(context.Background(), "owner-1", p.ID, 0, 0, -10)
	if err != nil {
		t.Fatalf("ApplyEventEffects error: %v", err)
	}
	if !got.IsDead || got.Health != 0 {
		t.Fatalf("expected death at zero health, got %+v", got)
	}
}

func TestService_BatchUpdateState_StopsOnFirstError(t *testing.T) {
	svc, _, clock := newTestService(t, 0)
	p1 := mintTestPet(t, svc, "owner-1")
	p2 := mintTestPet(t, svc, "owner-1")

	clock.Advance(1000)

	out, err := svc.BatchUpdateState(context.Background(), []string{p1.ID, "missing", p2.ID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 updated pet before the error, got %d", len(out))
	}
}
