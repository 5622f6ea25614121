package groq

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/ports/eventgen"
)

// MinEventGap: gap mínimo real entre eventos por mascota. Política del
// generador, no del core (el ledger acepta lo que le den).
const MinEventGap = 2 * time.Minute

var templates = map[ledger.Kind][]string{
	ledger.KindTreasure: {
		"found a shiny crystal",
		"discovered a hidden treasure",
		"stumbled upon a rare gem",
		"uncovered an ancient artifact",
	},
	ledger.KindEncounter: {
		"met a friendly creature",
		"spotted a mysterious shadow",
		"heard strange noises",
		"found interesting tracks",
	},
	ledger.KindWeather: {
		"a rainbow appeared",
		"gentle rain started falling",
		"stars are extra bright tonight",
		"warm sunshine fills the area",
	},
	ledger.KindMood: {
		"feels extra energetic today",
		"is feeling contemplative",
		"wants to explore",
		"is feeling playful",
	},
	ledger.KindMilestone: {
		"learned a new trick",
		"grew stronger",
		"made a new discovery",
		"reached a new understanding",
	},
}

var templateEffects = map[ledger.Kind]ledger.Effect{
	ledger.KindTreasure:  {Happiness: 15, Hunger: 5},
	ledger.KindEncounter: {Happiness: 10},
	ledger.KindWeather:   {Happiness: 8},
	ledger.KindMood:      {Happiness: 12},
	ledger.KindMilestone: {Happiness: 20, Health: 5},
}

var allKinds = []ledger.Kind{
	ledger.KindTreasure,
	ledger.KindEncounter,
	ledger.KindWeather,
	ledger.KindMood,
	ledger.KindMilestone,
}

type fallbackGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func newFallbackGenerator() *fallbackGenerator {
	return &fallbackGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pickKind sesga el tipo de evento según el estado: mascota triste recibe
// tesoros/ánimos, hambrienta recibe encuentros.
func (f *fallbackGenerator) pickKind(pc eventgen.PetContext) ledger.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case pc.Happiness < 50:
		if f.rand.Intn(2) == 0 {
			return ledger.KindTreasure
		}
		return ledger.KindMood
	case pc.Hunger > 70:
		return ledger.KindEncounter
	default:
		return allKinds[f.rand.Intn(len(allKinds))]
	}
}

func (f *fallbackGenerator) generate(pc eventgen.PetContext, kind ledger.Kind) ledger.AppendInput {
	f.mu.Lock()
	tpl := templates[kind][f.rand.Intn(len(templates[kind]))]
	f.mu.Unlock()

	return ledger.AppendInput{
		Kind:        kind,
		Title:       capitalize(string(kind)) + "!",
		Description: pc.Name + " " + tpl + "!",
		Effect:      templateEffects[kind],
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Throttle aplica la política de gap mínimo y probabilidad creciente con
// la actividad del usuario.
type Throttle struct {
	mu        sync.Mutex
	lastEvent map[string]time.Time
	rand      *rand.Rand
	now       func() time.Time
}

func NewThrottle() *Throttle {
	return &Throttle{
		lastEvent: make(map[string]time.Time),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// Allow decide si corresponde solicitar un evento ahora. interactions es
// el contador de acciones del usuario en la sesión (más actividad, más
// chance, 30%..80%).
func (t *Throttle) Allow(petID string, interactions int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.lastEvent[petID]; ok && t.now().Sub(last) < MinEventGap {
		return false
	}

	chance := 0.3 + float64(interactions)*0.05
	if chance > 0.8 {
		chance = 0.8
	}
	if t.rand.Float64() > chance {
		return false
	}

	t.lastEvent[petID] = t.now()
	return true
}
