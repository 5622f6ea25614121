package view

import (
	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"
)

// DisplayStats es lo que ve el usuario: snapshot autoritativo + deltas del
// ledger, o los overrides de demo si hay una sesión activa.
type DisplayStats struct {
	PetID string
	Name  string

	AgeBlocks uint64
	Stage     pets.Stage

	Happiness int
	Hunger    int
	Health    int

	IsDead     bool
	DeathBlock uint64

	BlocksSinceUpdate uint64

	// Eventos pendientes de sincronizar (0 si hay demo activa: la demo no
	// toca el ledger, solo deja de mostrarlo).
	PendingEvents int
	DemoActive    bool
}

// Compose mezcla las tres capas en orden estricto: snapshot, luego ledger
// O overrides — nunca ambos. Una sesión de demo activa desactiva la capa
// de ledger por completo (los deltas siguen guardados, solo no se ven),
// y cada campo con override reemplaza al del snapshot.
func Compose(info pets.Info, entry ledger.Entry, ov *Overrides) DisplayStats {
	out := DisplayStats{
		PetID: info.ID,
		Name:  info.Name,

		AgeBlocks: info.AgeBlocks,
		Stage:     info.Stage,

		Happiness: info.Happiness,
		Hunger:    info.Hunger,
		Health:    info.Health,

		IsDead:     info.IsDead,
		DeathBlock: info.DeathBlock,

		BlocksSinceUpdate: info.BlocksSinceUpdate,
	}

	if ov == nil || ov.Empty() {
		out.Happiness = clamp(info.Happiness + entry.TotalHappiness)
		out.Hunger = clamp(info.Hunger + entry.TotalHunger)
		out.Health = clamp(info.Health + entry.TotalHealth)
		out.PendingEvents = len(entry.Events)
		return out
	}

	out.DemoActive = true
	if ov.Age != nil {
		out.AgeBlocks = *ov.Age
	}
	if ov.Stage != nil {
		out.Stage = *ov.Stage
	}
	if ov.Happiness != nil {
		out.Happiness = clamp(*ov.Happiness)
	}
	if ov.Hunger != nil {
		out.Hunger = clamp(*ov.Hunger)
	}
	if ov.Health != nil {
		out.Health = clamp(*ov.Health)
	}
	return out
}

func clamp(v int) int {
	if v < pets.MinStat {
		return pets.MinStat
	}
	if v > pets.MaxStat {
		return pets.MaxStat
	}
	return v
}
