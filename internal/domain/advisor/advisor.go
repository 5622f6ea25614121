package advisor

import (
	"fmt"

	"evolvagotchi/internal/domain/pets"
	"evolvagotchi/internal/domain/view"
	"evolvagotchi/internal/platform/blockclock"
)

// Urgency ordena las predicciones de mayor a menor gravedad.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyInfo     Urgency = "info"
	UrgencyGood     Urgency = "good"
)

// Prediction es un aviso proactivo sobre la salud/evolución, calculado
// sobre los stats que el usuario está viendo (post-ledger u overrides).
type Prediction struct {
	Urgency   Urgency
	Message   string
	Icon      string
	Timeframe string // "~4m 10s", vacío si no aplica
	Action    string // sugerencia concreta, vacío si no aplica
}

// Advisor es puro: mismas stats, mismas predicciones.
type Advisor struct {
	tuning pets.Tuning
}

func New(tuning pets.Tuning) *Advisor {
	return &Advisor{tuning: tuning}
}

// Predict evalúa reglas en orden de gravedad. Devuelve al menos una
// predicción (el estado "todo bien" también se informa).
func (a *Advisor) Predict(s view.DisplayStats) []Prediction {
	if s.IsDead {
		return []Prediction{{
			Urgency: UrgencyCritical,
			Message: s.Name + " has passed away",
			Icon:    "👻",
			Action:  "Revive your pet to continue",
		}}
	}

	var out []Prediction

	// Hambre: cuánto falta para que empiece a dañar la salud (>80).
	switch {
	case s.Hunger > 80:
		out = append(out, Prediction{
			Urgency: UrgencyCritical,
			Message: fmt.Sprintf("%s is starving! Health is dropping", s.Name),
			Icon:    "🍖",
			Action:  "Feed now",
		})
	case s.Hunger > 60:
		blocks := uint64(81-s.Hunger) * a.tuning.HungerPeriod
		out = append(out, Prediction{
			Urgency:   UrgencyWarning,
			Message:   fmt.Sprintf("%s is getting hungry", s.Name),
			Icon:      "🍖",
			Timeframe: "~" + formatBlocks(blocks),
			Action:    "Feed soon to avoid health loss",
		})
	}

	if s.Health <= 20 {
		out = append(out, Prediction{
			Urgency: UrgencyCritical,
			Message: fmt.Sprintf("Health critical (%d/100)", s.Health),
			Icon:    "❤️",
			Action:  "Feed and keep happiness above 70 to recover",
		})
	} else if s.Health < 50 {
		out = append(out, Prediction{
			Urgency: UrgencyWarning,
			Message: fmt.Sprintf("Health is low (%d/100)", s.Health),
			Icon:    "❤️",
			Action:  "Keep hunger under 30 and happiness over 70",
		})
	}

	if s.Happiness < 40 {
		out = append(out, Prediction{
			Urgency: UrgencyWarning,
			Message: fmt.Sprintf("%s is feeling sad", s.Name),
			Icon:    "😢",
			Action:  "Play together",
		})
	}

	out = append(out, a.evolution(s))

	if len(out) == 1 && out[0].Urgency == UrgencyInfo {
		out = append([]Prediction{{
			Urgency: UrgencyGood,
			Message: s.Name + " is doing great!",
			Icon:    "🌟",
		}}, out...)
	}

	return out
}

func (a *Advisor) evolution(s view.DisplayStats) Prediction {
	p := pets.Pet{
		Stage:     s.Stage,
		AgeBlocks: s.AgeBlocks,
		Happiness: s.Happiness,
		Health:    s.Health,
	}

	ok, blocker := a.tuning.CanEvolve(p)
	if ok {
		return Prediction{
			Urgency: UrgencyInfo,
			Message: "Ready to evolve on the next update!",
			Icon:    "✨",
			Action:  "Sync or update stats to trigger evolution",
		}
	}

	switch blocker {
	case "age":
		var target uint64
		switch s.Stage {
		case pets.StageEgg:
			target = a.tuning.EggToBabyAge
		case pets.StageBaby:
			target = a.tuning.BabyToTeenAge
		default:
			target = a.tuning.TeenToAdultAge
		}
		return Prediction{
			Urgency:   UrgencyInfo,
			Message:   "Needs more time to evolve",
			Icon:      "⏳",
			Timeframe: "~" + formatBlocks(target-s.AgeBlocks),
		}
	case "happiness":
		return Prediction{
			Urgency: UrgencyInfo,
			Message: fmt.Sprintf("Needs happiness ≥ %d to evolve (currently %d)", a.tuning.EvolveHappinessMin, s.Happiness),
			Icon:    "✨",
			Action:  "Play to raise happiness",
		}
	case "health":
		return Prediction{
			Urgency: UrgencyInfo,
			Message: fmt.Sprintf("Needs health ≥ %d to evolve (currently %d)", a.tuning.AdultHealthMin, s.Health),
			Icon:    "✨",
			Action:  "Recover health before the next update",
		}
	default:
		return Prediction{
			Urgency: UrgencyInfo,
			Message: "Fully evolved",
			Icon:    "🐲",
		}
	}
}

// formatBlocks convierte bloques a tiempo humano a la cadencia de la
// cadena (6 bloques/s).
func formatBlocks(blocks uint64) string {
	seconds := blocks / blockclock.BlocksPerSecond

	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		m, s := seconds/60, seconds%60
		if s > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h, m := seconds/3600, (seconds%3600)/60
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}
