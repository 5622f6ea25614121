package events

import (
	"context"
	"errors"

	"evolvagotchi/internal/domain/history"
	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"
	"evolvagotchi/internal/domain/view"
	"evolvagotchi/internal/ports/eventgen"
)

// ErrThrottled: el gap mínimo o el dado dijeron que no. No es un fallo,
// solo "esta vez no hubo evento".
var ErrThrottled = errors.New("event throttled")

// Throttle decide si corresponde pedir un evento ahora (gap mínimo por
// mascota + probabilidad según actividad del usuario).
type Throttle interface {
	Allow(petID string, interactions int) bool
}

// Service orquesta la solicitud de eventos especulativos: arma el contexto
// con las stats que el usuario ESTÁ viendo (post-ledger/overrides), pide
// al generador y registra el resultado en el ledger.
type Service struct {
	pets       *pets.Service
	ledger     *ledger.Service
	historySvc *history.Service
	overrides  *view.OverrideStore
	gen        eventgen.Generator
	throttle   Throttle
}

func NewService(
	petsSvc *pets.Service,
	ledgerSvc *ledger.Service,
	historySvc *history.Service,
	overrides *view.OverrideStore,
	gen eventgen.Generator,
	throttle Throttle,
) *Service {
	return &Service{
		pets:       petsSvc,
		ledger:     ledgerSvc,
		historySvc: historySvc,
		overrides:  overrides,
		gen:        gen,
		throttle:   throttle,
	}
}

type SolicitInput struct {
	// Acciones del usuario en la sesión; sube la chance de evento.
	Interactions int
	// Force saltea el throttle (para la demo).
	Force bool
}

// Solicit pide un evento para la mascota. Devuelve la entry resultante del
// ledger, o ErrThrottled si esta vez no tocaba.
func (s *Service) Solicit(ctx context.Context, petID string, in SolicitInput) (ledger.Entry, error) {
	info, err := s.pets.GetInfo(ctx, petID)
	if err != nil {
		return ledger.Entry{}, err
	}
	if info.IsDead {
		return ledger.Entry{}, pets.ErrAlreadyDead
	}

	if !in.Force && !s.throttle.Allow(petID, in.Interactions) {
		return ledger.Entry{}, ErrThrottled
	}

	entry, err := s.ledger.Get(ctx, petID)
	if err != nil {
		return ledger.Entry{}, err
	}

	// El generador ve lo que ve el usuario, no el snapshot crudo.
	stats := view.Compose(info, entry, s.overrides.Get(petID))

	appendIn, err := s.gen.Generate(ctx, eventgen.PetContext{
		Name:      stats.Name,
		Stage:     int(stats.Stage),
		StageName: stats.Stage.String(),
		Happiness: stats.Happiness,
		Hunger:    stats.Hunger,
		Health:    stats.Health,
		AgeBlocks: stats.AgeBlocks,
	})
	if err != nil {
		// El generador con fallback no debería fallar, pero si falla no
		// inventamos nada.
		return ledger.Entry{}, err
	}

	out, err := s.ledger.Append(ctx, petID, appendIn)
	if err != nil {
		return ledger.Entry{}, err
	}

	// El hito guarda lo que muestra la pantalla con el evento ya aplicado.
	after := view.Compose(info, out, s.overrides.Get(petID))
	hp, hg, hl, st := after.Happiness, after.Hunger, after.Health, int(after.Stage)
	s.historySvc.RecordRandomEvent(ctx, petID, appendIn.Title, appendIn.Description, history.StatsSnapshot{
		Happiness: &hp,
		Hunger:    &hg,
		Health:    &hl,
		Stage:     &st,
	})
	return out, nil
}

// Pending devuelve la entry cruda del ledger (vacía si no hay nada).
func (s *Service) Pending(ctx context.Context, petID string) (ledger.Entry, error) {
	return s.ledger.Get(ctx, petID)
}
