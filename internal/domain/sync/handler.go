package sync

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"evolvagotchi/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, c *Coordinator) {
	r.Post("/pets/{petID}/sync", syncHandler(c))
	r.Get("/pets/{petID}/sync", stateHandler(c))
}

type syncResponse struct {
	PetID   string `json:"pet_id"`
	Applied bool   `json:"applied"`
	Events  int    `json:"events"`

	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Health    int `json:"health"`

	SyncedAt time.Time `json:"synced_at"`
}

type stateResponse struct {
	PetID string `json:"pet_id"`
	State string `json:"state"`
}

func syncHandler(c *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		res, err := c.Sync(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{
			PetID:     res.PetID,
			Applied:   res.Applied,
			Events:    res.Events,
			Happiness: res.Happiness,
			Hunger:    res.Hunger,
			Health:    res.Health,
			SyncedAt:  res.SyncedAt,
		})
	}
}

func stateHandler(c *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		writeJSON(w, http.StatusOK, stateResponse{
			PetID: petID,
			State: string(c.State(petID)),
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSyncInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	// dominio antes que transporte: una precondición fallida viene
	// envuelta en ErrGatewayUnavailable pero no es un 502.
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pets.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, pets.ErrAlreadyDead), errors.Is(err, pets.ErrNotDead):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrGatewayUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
