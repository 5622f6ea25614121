package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntryNotFound lo devuelven los repos; el Service nunca lo expone
	// (Get responde entry vacía).
	ErrEntryNotFound = errors.New("ledger entry not found")
)

// Service implementa el ledger de efectos pendientes. Append y Clear son
// read-modify-write sobre el mismo slot durable, así que se serializan por
// mascota con un mutex keyed; mascotas distintas no se bloquean entre sí.
type Service struct {
	repo Repository
	now  func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockFor(petID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[petID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[petID] = l
	}
	return l
}

// Get nunca falla por ausencia: sin entry devuelve una vacía con los
// acumuladores en cero.
func (s *Service) Get(ctx context.Context, petID string) (Entry, error) {
	e, err := s.repo.Get(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return s.emptyEntry(petID), nil
		}
		return Entry{}, err
	}
	return e, nil
}

type AppendInput struct {
	Kind        Kind
	Title       string
	Description string
	Effect      Effect
}

// Append registra un evento y suma sus efectos a los acumuladores, de
// forma atómica respecto a otros appends/clears de la misma mascota.
func (s *Service) Append(ctx context.Context, petID string, in AppendInput) (Entry, error) {
	if strings.TrimSpace(petID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Entry{}, ErrInvalidInput
	}

	l := s.lockFor(petID)
	l.Lock()
	defer l.Unlock()

	e, err := s.Get(ctx, petID)
	if err != nil {
		return Entry{}, err
	}

	ev := Event{
		ID:          uuid.NewString(),
		Kind:        in.Kind,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Effect:      in.Effect,
		Timestamp:   s.now(),
	}

	e.Events = append(e.Events, ev)
	e.TotalHappiness += ev.Effect.Happiness
	e.TotalHunger += ev.Effect.Hunger
	e.TotalHealth += ev.Effect.Health

	if err := s.repo.Put(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Clear borra la entry completa. No hay clear parcial: el sync es todo o
// nada por mascota. Idempotente.
func (s *Service) Clear(ctx context.Context, petID string) error {
	if strings.TrimSpace(petID) == "" {
		return ErrInvalidInput
	}

	l := s.lockFor(petID)
	l.Lock()
	defer l.Unlock()

	return s.repo.Delete(ctx, petID)
}

func (s *Service) IsEmpty(ctx context.Context, petID string) (bool, error) {
	e, err := s.Get(ctx, petID)
	if err != nil {
		return false, err
	}
	return e.IsEmpty(), nil
}

func (s *Service) Count(ctx context.Context, petID string) (int, error) {
	e, err := s.Get(ctx, petID)
	if err != nil {
		return 0, err
	}
	return len(e.Events), nil
}

func (s *Service) emptyEntry(petID string) Entry {
	return Entry{
		PetID:    petID,
		Events:   []Event{},
		LastSync: s.now(),
	}
}
