package pets

import "testing"

func basePet() Pet {
	return Pet{
		ID:        "pet-1",
		OwnerID:   "owner-1",
		Name:      "Milo",
		Stage:     StageBaby,
		Happiness: 100,
		Hunger:    0,
		Health:    100,
	}
}

func TestDecay_HungerAndHappiness_FloorDivision(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()

	// 5000 bloques: +10 hunger (5000/500), -5 happiness (5000/1000)
	got := tn.Decay(p, 5000)

	if got.Hunger != 10 {
		t.Fatalf("expected hunger 10, got %d", got.Hunger)
	}
	if got.Happiness != 95 {
		t.Fatalf("expected happiness 95, got %d", got.Happiness)
	}
	if got.AgeBlocks != 5000 {
		t.Fatalf("expected age 5000, got %d", got.AgeBlocks)
	}
	if got.LastUpdateBlock != 5000 {
		t.Fatalf("expected last update 5000, got %d", got.LastUpdateBlock)
	}

	// resto sub-período se descarta, no se acumula
	got2 := tn.Decay(p, 499)
	if got2.Hunger != 0 {
		t.Fatalf("expected hunger 0 for sub-period delta, got %d", got2.Hunger)
	}
}

func TestDecay_Purity_InputUntouched(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()

	_ = tn.Decay(p, 100000)

	if p.Hunger != 0 || p.Happiness != 100 || p.AgeBlocks != 0 {
		t.Fatalf("Decay mutated its input: %+v", p)
	}
}

func TestDecay_SplitEqualsWhole_OnPeriodBoundaries(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()

	whole := tn.Decay(p, 10000)

	half := tn.Decay(p, 5000)
	split := tn.Decay(half, 10000)

	if whole.Hunger != split.Hunger || whole.Happiness != split.Happiness {
		t.Fatalf("split decay diverged: whole=%+v split=%+v", whole, split)
	}
	if whole.AgeBlocks != split.AgeBlocks {
		t.Fatalf("age diverged: %d vs %d", whole.AgeBlocks, split.AgeBlocks)
	}
}

func TestDecay_StatsClampAtBounds(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()

	// delta enorme: hunger y happiness saturan, no desbordan
	got := tn.Decay(p, 1_000_000)

	if got.Hunger != MaxStat {
		t.Fatalf("expected hunger clamped at %d, got %d", MaxStat, got.Hunger)
	}
	if got.Happiness != MinStat {
		t.Fatalf("expected happiness clamped at %d, got %d", MinStat, got.Happiness)
	}
}

func TestDecay_HealthPenalty_WhenStarving(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Hunger = 90
	p.Health = 50

	// delta sub-período: hunger queda en 90, penalidad (90-80)/5 = 2
	got := tn.Decay(p, 100)

	if got.Health != 48 {
		t.Fatalf("expected health 48, got %d", got.Health)
	}
}

func TestDecay_HealthRecovery_WellFedAndHappy(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Hunger = 10
	p.Happiness = 90
	p.Health = 60

	got := tn.Decay(p, 100)

	// +1 por aplicación, independiente del delta
	if got.Health != 61 {
		t.Fatalf("expected health 61, got %d", got.Health)
	}

	p.Health = 100
	got = tn.Decay(p, 100)
	if got.Health != 100 {
		t.Fatalf("expected health capped at 100, got %d", got.Health)
	}
}

func TestDecay_NoHealthChange_InNeutralBand(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Hunger = 50
	p.Happiness = 50
	p.Health = 70

	got := tn.Decay(p, 100)

	if got.Health != 70 {
		t.Fatalf("expected health unchanged at 70, got %d", got.Health)
	}
}

func TestDecay_ZeroBlocksElapsed_IsIdentity(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.LastUpdateBlock = 12345
	p.AgeBlocks = 900
	p.Hunger = 50
	p.Happiness = 50
	p.Health = 70

	got := tn.Decay(p, p.LastUpdateBlock)

	if got != p {
		t.Fatalf("expected decay over zero blocks to be a no-op, got %+v", got)
	}
}

func TestDecay_DeathAtZeroHealth_FreezesState(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Hunger = 100
	p.Health = 4

	got := tn.Decay(p, 100)

	if !got.IsDead {
		t.Fatalf("expected pet dead at zero health")
	}
	if got.DeathBlock != 100 {
		t.Fatalf("expected death block 100, got %d", got.DeathBlock)
	}

	// decay posterior: solo avanza la marca de update
	after := tn.Decay(got, 50000)
	if after.Hunger != got.Hunger || after.Happiness != got.Happiness || after.Health != got.Health {
		t.Fatalf("dead pet stats changed: %+v vs %+v", after, got)
	}
	if after.AgeBlocks != got.AgeBlocks {
		t.Fatalf("dead pet aged: %d vs %d", after.AgeBlocks, got.AgeBlocks)
	}
	if after.LastUpdateBlock != 50000 {
		t.Fatalf("expected update mark to advance, got %d", after.LastUpdateBlock)
	}
}

func TestDecay_ClockRegression_NoNegativeDecay(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.LastUpdateBlock = 1000
	p.AgeBlocks = 1000

	got := tn.Decay(p, 500)

	if got != p {
		t.Fatalf("expected pet unchanged on clock regression, got %+v", got)
	}
}

func TestDecay_Evolution_SingleStepPerCall(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Stage = StageEgg
	// edad suficiente para egg->baby Y baby->teen, pero promueve UNA etapa
	p.AgeBlocks = tn.BabyToTeenAge

	got := tn.Decay(p, 0)
	if got.Stage != StageBaby {
		t.Fatalf("expected single-step evolution to baby, got %s", got.Stage)
	}

	// la siguiente llamada (delta cero) promueve la segunda etapa
	got2 := tn.Decay(got, 0)
	if got2.Stage != StageTeen {
		t.Fatalf("expected teen on second call, got %s", got2.Stage)
	}
}

func TestDecay_Evolution_BlockedByHappiness(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Stage = StageBaby
	p.AgeBlocks = tn.BabyToTeenAge
	p.Happiness = tn.EvolveHappinessMin - 1

	got := tn.Decay(p, 0)

	if got.Stage != StageBaby {
		t.Fatalf("expected evolution blocked by happiness, got %s", got.Stage)
	}
}

func TestDecay_AdultRequiresHealth(t *testing.T) {
	tn := DefaultTuning()
	p := basePet()
	p.Stage = StageTeen
	p.AgeBlocks = tn.TeenToAdultAge
	p.Happiness = 90
	p.Health = tn.AdultHealthMin - 1
	p.Hunger = 50 // banda neutra: health no cambia en la llamada

	got := tn.Decay(p, 0)
	if got.Stage != StageTeen {
		t.Fatalf("expected adult evolution blocked by health, got %s", got.Stage)
	}

	p.Health = tn.AdultHealthMin
	got = tn.Decay(p, 0)
	if got.Stage != StageAdult {
		t.Fatalf("expected evolution to adult, got %s", got.Stage)
	}
}

func TestCanEvolve_ReportsBlocker(t *testing.T) {
	tn := DefaultTuning()

	p := basePet()
	p.Stage = StageBaby
	p.AgeBlocks = 10

	ok, blocker := tn.CanEvolve(p)
	if ok || blocker != "age" {
		t.Fatalf("expected blocker age, got ok=%v blocker=%q", ok, blocker)
	}

	p.AgeBlocks = tn.BabyToTeenAge
	p.Happiness = 10
	ok, blocker = tn.CanEvolve(p)
	if ok || blocker != "happiness" {
		t.Fatalf("expected blocker happiness, got ok=%v blocker=%q", ok, blocker)
	}

	p.Happiness = 100
	ok, blocker = tn.CanEvolve(p)
	if !ok || blocker != "" {
		t.Fatalf("expected evolvable, got ok=%v blocker=%q", ok, blocker)
	}

	p.Stage = StageAdult
	ok, blocker = tn.CanEvolve(p)
	if ok || blocker != "max stage" {
		t.Fatalf("expected max stage, got ok=%v blocker=%q", ok, blocker)
	}
}
