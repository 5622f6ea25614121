package groq

import (
	"math/rand"
	"testing"
	"time"

	"evolvagotchi/internal/ports/eventgen"
)

func TestFallbackGenerator_EventMatchesTemplates(t *testing.T) {
	f := newFallbackGenerator()

	pc := eventgen.PetContext{Name: "Milo", Happiness: 80, Hunger: 20}

	for i := 0; i < 20; i++ {
		kind := f.pickKind(pc)
		in := f.generate(pc, kind)

		if in.Kind != kind {
			t.Fatalf("kind mismatch: %s vs %s", in.Kind, kind)
		}
		if in.Title == "" || in.Description == "" {
			t.Fatalf("empty event text: %+v", in)
		}
		if want := templateEffects[kind]; in.Effect != want {
			t.Fatalf("effect does not match template for %s: %+v", kind, in.Effect)
		}
	}
}

func TestThrottle_EnforcesMinimumGap(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	th := NewThrottle()
	th.now = func() time.Time { return now }
	// rand fijo en 0: la chance siempre pasa
	th.rand = rand.New(zeroSource{})

	if !th.Allow("pet-1", 10) {
		t.Fatalf("expected first event allowed")
	}

	// dentro del gap: rechazado aunque la chance pase
	now = now.Add(MinEventGap - time.Second)
	if th.Allow("pet-1", 10) {
		t.Fatalf("expected event inside gap rejected")
	}

	// pasado el gap: permitido de nuevo
	now = now.Add(2 * time.Second)
	if !th.Allow("pet-1", 10) {
		t.Fatalf("expected event after gap allowed")
	}

	// el gap es por mascota
	if !th.Allow("pet-2", 10) {
		t.Fatalf("expected other pet unaffected by the gap")
	}
}

// zeroSource hace que Float64 devuelva siempre 0 (chance mínima siempre gana).
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}
