package pets

import "time"

// Stage define las etapas de evolución, en orden. Nunca retrocede.
// @Enum egg, baby, teen, adult
type Stage uint8

const (
	StageEgg Stage = iota
	StageBaby
	StageTeen
	StageAdult
)

func (s Stage) String() string {
	switch s {
	case StageEgg:
		return "egg"
	case StageBaby:
		return "baby"
	case StageTeen:
		return "teen"
	case StageAdult:
		return "adult"
	default:
		return "unknown"
	}
}

// Pet es el estado autoritativo de una mascota. El resto del sistema
// (ledger, compositor) trabaja sobre copias de solo lectura.
type Pet struct {
	ID      string
	OwnerID string // wallet address del dueño

	Name string // inmutable tras el mint, 1..20 chars

	BirthBlock uint64
	AgeBlocks  uint64 // bloques vividos; solo crece
	Stage      Stage

	// Stats siempre en [0,100].
	Happiness int
	Hunger    int
	Health    int

	IsDead     bool
	DeathBlock uint64 // 0 mientras viva

	// Bloque en el que se aplicó decay por última vez.
	LastUpdateBlock uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Info es la vista que devuelve el store: el estado almacenado más cuántos
// bloques pasaron desde el último decay (el decay NO se aplica al leer).
type Info struct {
	Pet
	BlocksSinceUpdate uint64
}

const (
	MinStat = 0
	MaxStat = 100

	MaxNameLen = 20
)

func clampStat(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
