package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("pet does not exist")
	ErrUnauthorized        = errors.New("not your pet")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidName         = errors.New("invalid name length")
	ErrAlreadyDead         = errors.New("pet is dead")
	ErrNotDead             = errors.New("pet is not dead")
)

// Service es el store autoritativo: la única pieza que muta Pets. Replica
// la semántica del contrato (revert total en error: un precondición fallida
// no persiste nada, ni siquiera el decay calculado en el camino).
type Service struct {
	repo   Repository
	clock  BlockClock
	tuning Tuning
	now    func() time.Time
}

func NewService(repo Repository, clock BlockClock, tuning Tuning) *Service {
	return &Service{
		repo:   repo,
		clock:  clock,
		tuning: tuning,
		now:    time.Now,
	}
}

func (s *Service) Tuning() Tuning { return s.tuning }

type MintInput struct {
	Name        string
	PaymentGwei uint64
}

func (s *Service) Mint(ctx context.Context, ownerID string, in MintInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrUnauthorized
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > MaxNameLen {
		return Pet{}, ErrInvalidName
	}
	if in.PaymentGwei < s.tuning.MintCostGwei {
		return Pet{}, ErrInsufficientPayment
	}

	now := s.now()
	block := s.clock.Current()

	p := Pet{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,

		BirthBlock: block,
		Stage:      StageEgg,

		Happiness: 100,
		Hunger:    0,
		Health:    100,

		LastUpdateBlock: block,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetInfo devuelve el snapshot almacenado sin aplicar decay; el caller ve
// además cuántos bloques lleva sin actualizar.
func (s *Service) GetInfo(ctx context.Context, id string) (Info, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Info{}, err
	}

	block := s.clock.Current()
	var since uint64
	if block > p.LastUpdateBlock {
		since = block - p.LastUpdateBlock
	}
	return Info{Pet: p, BlocksSinceUpdate: since}, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateState aplica el decay pendiente. Cualquiera puede llamarlo (igual
// que en el contrato: mantener el estado fresco es trabajo comunitario).
func (s *Service) UpdateState(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p = s.tuning.Decay(p, s.clock.Current())
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// BatchUpdateState actualiza varias mascotas; corta en el primer error.
func (s *Service) BatchUpdateState(ctx context.Context, ids []string) ([]Pet, error) {
	out := make([]Pet, 0, len(ids))
	for _, id := range ids {
		p, err := s.UpdateState(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Feed(ctx context.Context, ownerID, id string, paymentGwei uint64) (Pet, error) {
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Pet{}, err
	}
	if paymentGwei < s.tuning.FeedCostGwei {
		return Pet{}, ErrInsufficientPayment
	}

	p = s.tuning.Decay(p, s.clock.Current())
	if p.IsDead {
		return Pet{}, ErrAlreadyDead
	}

	p.Hunger = clampStat(p.Hunger + s.tuning.FeedHungerDelta)
	p.Happiness = clampStat(p.Happiness + s.tuning.FeedHappinessDelta)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Play(ctx context.Context, ownerID, id string) (Pet, error) {
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Pet{}, err
	}

	p = s.tuning.Decay(p, s.clock.Current())
	if p.IsDead {
		return Pet{}, ErrAlreadyDead
	}

	p.Happiness = clampStat(p.Happiness + s.tuning.PlayHappinessDelta)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Revive(ctx context.Context, ownerID, id string, paymentGwei uint64) (Pet, error) {
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Pet{}, err
	}
	if paymentGwei < s.tuning.ReviveCostGwei {
		return Pet{}, ErrInsufficientPayment
	}
	if !p.IsDead {
		return Pet{}, ErrNotDead
	}

	// Restauración parcial: vuelve con la mitad de salud, hambre y ánimo
	// quedan como estaban al morir.
	p.IsDead = false
	p.DeathBlock = 0
	p.Health = s.tuning.ReviveHealth
	p.LastUpdateBlock = s.clock.Current()
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// ApplyEventEffects sincroniza los deltas acumulados del ledger: decay
// primero, después suma con clamp (los totales pueden ser negativos; el
// clamp vive acá, del lado del gateway).
func (s *Service) ApplyEventEffects(ctx context.Context, ownerID, id string, dHappiness, dHunger, dHealth int) (Pet, error) {
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return Pet{}, err
	}

	p = s.tuning.Decay(p, s.clock.Current())
	if p.IsDead {
		return Pet{}, ErrAlreadyDead
	}

	p.Happiness = clampStat(p.Happiness + dHappiness)
	p.Hunger = clampStat(p.Hunger + dHunger)
	p.Health = clampStat(p.Health + dHealth)

	// Los efectos pueden dejar health en 0: misma regla de muerte que el
	// decay.
	if p.Health == 0 {
		p.IsDead = true
		p.DeathBlock = s.clock.Current()
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) owned(ctx context.Context, ownerID, id string) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrUnauthorized
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != ownerID {
		return Pet{}, ErrUnauthorized
	}
	return p, nil
}
