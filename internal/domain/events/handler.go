package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets/{petID}/events", solicitHandler(svc))
	r.Get("/pets/{petID}/pending", pendingHandler(svc))
}

type solicitRequest struct {
	Interactions int  `json:"interactions"`
	Force        bool `json:"force"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Happiness   int       `json:"happiness"`
	Hunger      int       `json:"hunger"`
	Health      int       `json:"health"`
	Timestamp   time.Time `json:"timestamp"`
}

type entryResponse struct {
	PetID string `json:"pet_id"`

	TotalHappiness int `json:"total_happiness"`
	TotalHunger    int `json:"total_hunger"`
	TotalHealth    int `json:"total_health"`

	Events []eventResponse `json:"events"`
}

func solicitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		var req solicitRequest
		if r.Body != nil {
			// body opcional; sin body vale {interactions:0}
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		entry, err := svc.Solicit(r.Context(), petID, SolicitInput{
			Interactions: req.Interactions,
			Force:        req.Force,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(entry))
	}
}

func pendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := svc.Pending(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(entry))
	}
}

func toEntryResponse(e ledger.Entry) entryResponse {
	out := entryResponse{
		PetID:          e.PetID,
		TotalHappiness: e.TotalHappiness,
		TotalHunger:    e.TotalHunger,
		TotalHealth:    e.TotalHealth,
		Events:         make([]eventResponse, 0, len(e.Events)),
	}
	for _, ev := range e.Events {
		out.Events = append(out.Events, eventResponse{
			ID:          ev.ID,
			Kind:        string(ev.Kind),
			Title:       ev.Title,
			Description: ev.Description,
			Happiness:   ev.Effect.Happiness,
			Hunger:      ev.Effect.Hunger,
			Health:      ev.Effect.Health,
			Timestamp:   ev.Timestamp,
		})
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pets.ErrAlreadyDead):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrThrottled):
		// 200 con entry ausente confundiría al cliente; 429 dice "probá
		// más tarde" sin que sea un error del request.
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
