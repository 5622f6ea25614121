package pets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning concentra todas las constantes del engine. Los defaults replican
// el contrato desplegado; un archivo YAML opcional permite ajustarlas en
// entornos de prueba sin recompilar.
type Tuning struct {
	// Bloques necesarios para +1 hunger / -1 happiness.
	HungerPeriod    uint64 `yaml:"hunger_period"`
	HappinessPeriod uint64 `yaml:"happiness_period"`

	// Umbrales de evolución (edad en bloques).
	EggToBabyAge   uint64 `yaml:"egg_to_baby_age"`
	BabyToTeenAge  uint64 `yaml:"baby_to_teen_age"`
	TeenToAdultAge uint64 `yaml:"teen_to_adult_age"`

	EvolveHappinessMin int `yaml:"evolve_happiness_min"`
	AdultHealthMin     int `yaml:"adult_health_min"`

	// Efectos de las acciones.
	FeedHungerDelta    int `yaml:"feed_hunger_delta"`
	FeedHappinessDelta int `yaml:"feed_happiness_delta"`
	PlayHappinessDelta int `yaml:"play_happiness_delta"`

	// Salud tras revivir (restauración parcial, política del store).
	ReviveHealth int `yaml:"revive_health"`

	// Costos en gwei.
	MintCostGwei   uint64 `yaml:"mint_cost_gwei"`
	FeedCostGwei   uint64 `yaml:"feed_cost_gwei"`
	ReviveCostGwei uint64 `yaml:"revive_cost_gwei"`
}

func DefaultTuning() Tuning {
	return Tuning{
		HungerPeriod:    500,
		HappinessPeriod: 1000,

		EggToBabyAge:   25000,
		BabyToTeenAge:  100000,
		TeenToAdultAge: 300000,

		EvolveHappinessMin: 60,
		AdultHealthMin:     80,

		FeedHungerDelta:    -40,
		FeedHappinessDelta: 15,
		PlayHappinessDelta: 25,

		ReviveHealth: 50,

		MintCostGwei:   10_000_000, // 0.01
		FeedCostGwei:   1_000_000,  // 0.001
		ReviveCostGwei: 5_000_000,  // 0.005
	}
}

// LoadTuning lee el YAML y completa con defaults los campos en cero.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.HungerPeriod == 0 || t.HappinessPeriod == 0 {
		return fmt.Errorf("hunger_period y happiness_period deben ser > 0")
	}
	if t.EggToBabyAge >= t.BabyToTeenAge || t.BabyToTeenAge >= t.TeenToAdultAge {
		return fmt.Errorf("umbrales de evolución fuera de orden")
	}
	if t.ReviveHealth < MinStat || t.ReviveHealth > MaxStat {
		return fmt.Errorf("revive_health fuera de [0,100]")
	}
	return nil
}
