package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// Service registra y consulta el timeline. Best-effort: quien lo llama
// puede ignorar errores sin comprometer nada (es puro display).
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type RecordInput struct {
	Kind        Kind
	Title       string
	Description string
	Icon        string
	Stats       StatsSnapshot
}

func (s *Service) Record(ctx context.Context, petID string, in RecordInput) (Entry, error) {
	if strings.TrimSpace(petID) == "" || in.Kind == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:          uuid.NewString(),
		PetID:       petID,
		Kind:        in.Kind,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Icon:        in.Icon,
		Stats:       in.Stats,
		RecordedAt:  s.now(),
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID)
}

// Helpers con los textos/íconos del juego.

func (s *Service) RecordBirth(ctx context.Context, petID, name string) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindBirth,
		Title:       "Pet Born",
		Description: name + " was created and started their journey!",
		Icon:        "🥚",
	})
}

func (s *Service) RecordEvolution(ctx context.Context, petID, name string, toStage int, stageName string) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindEvolution,
		Title:       "Evolution!",
		Description: name + " evolved to " + stageName + "!",
		Icon:        "✨",
		Stats:       StatsSnapshot{Stage: &toStage},
	})
}

func (s *Service) RecordFeed(ctx context.Context, petID, name string, stats StatsSnapshot) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindFeed,
		Title:       "Fed",
		Description: name + " was fed and feels satisfied!",
		Icon:        "🍖",
		Stats:       stats,
	})
}

func (s *Service) RecordPlay(ctx context.Context, petID, name string, stats StatsSnapshot) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindPlay,
		Title:       "Played",
		Description: name + " had fun playing!",
		Icon:        "🎮",
		Stats:       stats,
	})
}

func (s *Service) RecordRandomEvent(ctx context.Context, petID, title, description string, stats StatsSnapshot) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindRandomEvent,
		Title:       title,
		Description: description,
		Icon:        "🎲",
		Stats:       stats,
	})
}

func (s *Service) RecordDeath(ctx context.Context, petID, name string) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindDeath,
		Title:       "Rest in Peace",
		Description: name + " has passed away...",
		Icon:        "👻",
	})
}

func (s *Service) RecordRevival(ctx context.Context, petID, name string, health int) {
	_, _ = s.Record(ctx, petID, RecordInput{
		Kind:        KindRevival,
		Title:       "Revived!",
		Description: name + " came back to life!",
		Icon:        "💚",
		Stats:       StatsSnapshot{Health: &health},
	})
}

// Milestones recorre el timeline y agrega contadores para la UI.
func (s *Service) Milestones(ctx context.Context, petID string) (Milestones, error) {
	entries, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return Milestones{}, err
	}

	var m Milestones
	days := make(map[string]struct{})

	for _, e := range entries {
		switch e.Kind {
		case KindFeed:
			m.TotalFeeds++
		case KindPlay:
			m.TotalPlays++
		case KindEvolution:
			m.TotalEvolutions++
		case KindRandomEvent:
			m.TotalEvents++
		}
		if e.Kind == KindFeed || e.Kind == KindPlay {
			days[e.RecordedAt.Format("2006-01-02")] = struct{}{}
		}
	}
	m.CareStreakDays = len(days)

	return m, nil
}
