package advisor

import (
	"strings"
	"testing"

	"evolvagotchi/internal/domain/pets"
	"evolvagotchi/internal/domain/view"
)

func healthyStats() view.DisplayStats {
	return view.DisplayStats{
		PetID:     "pet-1",
		Name:      "Milo",
		Stage:     pets.StageBaby,
		AgeBlocks: 30000,
		Happiness: 90,
		Hunger:    10,
		Health:    95,
	}
}

func hasUrgency(preds []Prediction, u Urgency) bool {
	for _, p := range preds {
		if p.Urgency == u {
			return true
		}
	}
	return false
}

func TestPredict_Dead_SingleCriticalPrediction(t *testing.T) {
	a := New(pets.DefaultTuning())

	s := healthyStats()
	s.IsDead = true

	preds := a.Predict(s)
	if len(preds) != 1 {
		t.Fatalf("expected single prediction for dead pet, got %d", len(preds))
	}
	if preds[0].Urgency != UrgencyCritical {
		t.Fatalf("expected critical, got %s", preds[0].Urgency)
	}
}

func TestPredict_Starving_IsCritical(t *testing.T) {
	a := New(pets.DefaultTuning())

	s := healthyStats()
	s.Hunger = 85

	preds := a.Predict(s)
	if !hasUrgency(preds, UrgencyCritical) {
		t.Fatalf("expected critical prediction at hunger 85: %+v", preds)
	}
}

func TestPredict_GettingHungry_WarnsWithTimeframe(t *testing.T) {
	a := New(pets.DefaultTuning())

	s := healthyStats()
	s.Hunger = 70

	preds := a.Predict(s)

	var warn *Prediction
	for i := range preds {
		if preds[i].Urgency == UrgencyWarning {
			warn = &preds[i]
			break
		}
	}
	if warn == nil {
		t.Fatalf("expected warning at hunger 70: %+v", preds)
	}
	// (81-70)*500 bloques = 5500 => ~15m a 6 bloques/s
	if warn.Timeframe == "" {
		t.Fatalf("expected a timeframe on the hunger warning")
	}
}

func TestPredict_Healthy_ReportsGood(t *testing.T) {
	a := New(pets.DefaultTuning())

	preds := a.Predict(healthyStats())
	if !hasUrgency(preds, UrgencyGood) {
		t.Fatalf("expected a good-state prediction: %+v", preds)
	}
	if hasUrgency(preds, UrgencyCritical) || hasUrgency(preds, UrgencyWarning) {
		t.Fatalf("healthy pet got alarms: %+v", preds)
	}
}

func TestPredict_Evolution_ReadyAndBlocked(t *testing.T) {
	tn := pets.DefaultTuning()
	a := New(tn)

	// lista para evolucionar
	s := healthyStats()
	s.Stage = pets.StageBaby
	s.AgeBlocks = tn.BabyToTeenAge

	preds := a.Predict(s)
	found := false
	for _, p := range preds {
		if strings.Contains(p.Message, "Ready to evolve") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ready-to-evolve prediction: %+v", preds)
	}

	// bloqueada por felicidad: el aviso dice qué falta
	s.Happiness = 50
	preds = a.Predict(s)
	found = false
	for _, p := range preds {
		if strings.Contains(p.Message, "happiness") && p.Urgency == UrgencyInfo {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected happiness-blocked evolution info: %+v", preds)
	}
}

func TestFormatBlocks_HumanUnits(t *testing.T) {
	cases := []struct {
		blocks uint64
		want   string
	}{
		{60, "10s"},
		{3600, "10m"},
		{5500, "15m 16s"},
		{6 * 3600, "1h"},
		{6*3600 + 6*120, "1h 2m"},
	}
	for _, tc := range cases {
		if got := formatBlocks(tc.blocks); got != tc.want {
			t.Fatalf("formatBlocks(%d) = %q, want %q", tc.blocks, got, tc.want)
		}
	}
}
