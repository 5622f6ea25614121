package history

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/history", listHandler(svc))
	r.Get("/pets/{petID}/milestones", milestonesHandler(svc))
}

type entryResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	Happiness *int `json:"happiness,omitempty"`
	Hunger    *int `json:"hunger,omitempty"`
	Health    *int `json:"health,omitempty"`
	Stage     *int `json:"stage,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

type milestonesResponse struct {
	TotalFeeds      int `json:"total_feeds"`
	TotalPlays      int `json:"total_plays"`
	TotalEvolutions int `json:"total_evolutions"`
	TotalEvents     int `json:"total_events"`
	CareStreakDays  int `json:"care_streak_days"`
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryResponse{
				ID:          e.ID,
				Kind:        string(e.Kind),
				Title:       e.Title,
				Description: e.Description,
				Icon:        e.Icon,
				Happiness:   e.Stats.Happiness,
				Hunger:      e.Stats.Hunger,
				Health:      e.Stats.Health,
				Stage:       e.Stats.Stage,
				RecordedAt:  e.RecordedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func milestonesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Milestones(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, milestonesResponse{
			TotalFeeds:      m.TotalFeeds,
			TotalPlays:      m.TotalPlays,
			TotalEvolutions: m.TotalEvolutions,
			TotalEvents:     m.TotalEvents,
			CareStreakDays:  m.CareStreakDays,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
