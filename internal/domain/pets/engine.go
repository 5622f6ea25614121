package pets

// Decay computa la transición de estado para los bloques transcurridos
// desde el último update. Función pura: no toca p, devuelve la copia nueva.
//
// Orden fijo: hunger -> happiness -> ajuste de health -> edad -> muerte ->
// evolución (un solo paso por llamada) -> marca de update. El ajuste de
// health depende solo de los stats resultantes, así que una llamada con
// delta cero reproduce la entrada salvo en los bordes (hunger > 80, o la
// condición de recuperación activa).
func (t Tuning) Decay(p Pet, now uint64) Pet {
	if now < p.LastUpdateBlock {
		// Reloj retrocedido: no inventamos decay negativo.
		return p
	}

	if p.IsDead {
		// La muerte congela el decay; solo avanza la marca.
		p.LastUpdateBlock = now
		return p
	}

	delta := now - p.LastUpdateBlock

	p.Hunger = clampStat(p.Hunger + int(delta/t.HungerPeriod))
	p.Happiness = clampStat(p.Happiness - int(delta/t.HappinessPeriod))

	switch {
	case p.Hunger > 80:
		p.Health = clampStat(p.Health - (p.Hunger-80)/5)
	case p.Hunger < 30 && p.Happiness > 70:
		// Recuperación amortiguada: +1 por aplicación, sin importar delta.
		p.Health = clampStat(p.Health + 1)
	}

	p.AgeBlocks += delta

	if p.Health == 0 {
		p.IsDead = true
		p.DeathBlock = now
	}

	if !p.IsDead {
		p.Stage = t.nextStage(p)
	}

	p.LastUpdateBlock = now
	return p
}

// nextStage promueve como mucho una etapa por llamada; nunca regresa.
func (t Tuning) nextStage(p Pet) Stage {
	switch p.Stage {
	case StageEgg:
		if p.AgeBlocks >= t.EggToBabyAge {
			return StageBaby
		}
	case StageBaby:
		if p.AgeBlocks >= t.BabyToTeenAge && p.Happiness >= t.EvolveHappinessMin {
			return StageTeen
		}
	case StageTeen:
		if p.AgeBlocks >= t.TeenToAdultAge && p.Happiness >= t.EvolveHappinessMin && p.Health >= t.AdultHealthMin {
			return StageAdult
		}
	}
	return p.Stage
}

// CanEvolve indica si la mascota evolucionaría en el próximo decay y, si
// no, qué le falta. Lo usa el advisor.
func (t Tuning) CanEvolve(p Pet) (bool, string) {
	if p.IsDead {
		return false, "dead"
	}
	switch p.Stage {
	case StageEgg:
		if p.AgeBlocks >= t.EggToBabyAge {
			return true, ""
		}
		return false, "age"
	case StageBaby:
		if p.AgeBlocks < t.BabyToTeenAge {
			return false, "age"
		}
		if p.Happiness < t.EvolveHappinessMin {
			return false, "happiness"
		}
		return true, ""
	case StageTeen:
		if p.AgeBlocks < t.TeenToAdultAge {
			return false, "age"
		}
		if p.Happiness < t.EvolveHappinessMin {
			return false, "happiness"
		}
		if p.Health < t.AdultHealthMin {
			return false, "health"
		}
		return true, ""
	default:
		return false, "max stage"
	}
}
