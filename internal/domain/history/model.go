package history

import "time"

// Kind clasifica los hitos de la vida de la mascota.
type Kind string

const (
	KindBirth           Kind = "birth"
	KindEvolution       Kind = "evolution"
	KindFeed            Kind = "feed"
	KindPlay            Kind = "play"
	KindRandomEvent     Kind = "random-event"
	KindDeath           Kind = "death"
	KindRevival         Kind = "revival"
	KindHealthMilestone Kind = "health-milestone"
)

// StatsSnapshot es la foto de stats que acompaña al hito (opcional).
type StatsSnapshot struct {
	Happiness *int
	Hunger    *int
	Health    *int
	Stage     *int
}

// Entry es un hito del timeline. Solo display: no participa de la
// corrección del ledger ni del sync.
type Entry struct {
	ID    string
	PetID string

	Kind        Kind
	Title       string
	Description string
	Icon        string

	Stats StatsSnapshot

	RecordedAt time.Time
}

// Milestones agrega el timeline para la vista de logros.
type Milestones struct {
	TotalFeeds      int
	TotalPlays      int
	TotalEvolutions int
	TotalEvents     int
	// Días distintos con al menos una interacción (feed o play).
	CareStreakDays int
}
