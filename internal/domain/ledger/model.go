package ledger

import "time"

// Kind clasifica el evento especulativo (viene del generador).
type Kind string

const (
	KindTreasure  Kind = "treasure"
	KindEncounter Kind = "encounter"
	KindWeather   Kind = "weather"
	KindMood      Kind = "mood"
	KindMilestone Kind = "milestone"
)

// Effect son los deltas de stats de un evento. Campo ausente == 0.
type Effect struct {
	Happiness int
	Hunger    int
	Health    int
}

// Event es un evento sin sincronizar. El orden de inserción se preserva;
// nunca se reordena.
type Event struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Effect      Effect
	Timestamp   time.Time
}

// Entry acumula los efectos pendientes de una mascota. Invariante: los
// tres totales son siempre la suma de los efectos de Events.
type Entry struct {
	PetID string

	TotalHappiness int
	TotalHunger    int
	TotalHealth    int

	Events []Event

	// Informativo: cuándo se creó/limpió por última vez.
	LastSync time.Time
}

// IsEmpty: una entry sin eventos equivale a "no hay entry".
func (e Entry) IsEmpty() bool { return len(e.Events) == 0 }
