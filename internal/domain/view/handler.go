package view

import (
	"encoding/json"
	"errors"
	"net/http"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la vista compuesta y los controles de demo. La
// demo escribe SOLO en el OverrideStore; el ledger no se entera.
func RegisterRoutes(r chi.Router, petsSvc *pets.Service, ledgerSvc *ledger.Service, overrides *OverrideStore) {
	r.Get("/pets/{petID}", getDisplayHandler(petsSvc, ledgerSvc, overrides))

	r.Put("/pets/{petID}/demo", patchDemoHandler(overrides))
	r.Delete("/pets/{petID}/demo", resetDemoHandler(overrides))
	r.Post("/pets/{petID}/demo/advance", demoAdvanceHandler(petsSvc, overrides))
	r.Post("/pets/{petID}/demo/stats", demoStatsHandler(petsSvc, overrides))
	r.Post("/pets/{petID}/demo/evolve", demoEvolveHandler(petsSvc, overrides))
}

type displayResponse struct {
	PetID string `json:"pet_id"`
	Name  string `json:"name"`

	AgeBlocks uint64 `json:"age_blocks"`
	Stage     string `json:"stage"`

	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Health    int `json:"health"`

	IsDead     bool   `json:"is_dead"`
	DeathBlock uint64 `json:"death_block,omitempty"`

	BlocksSinceUpdate uint64 `json:"blocks_since_update"`

	PendingEvents int  `json:"pending_events"`
	DemoActive    bool `json:"demo_active"`
}

type demoPatchRequest struct {
	Age       *uint64 `json:"age"`
	Stage     *int    `json:"evolution_stage"`
	Happiness *int    `json:"happiness"`
	Hunger    *int    `json:"hunger"`
	Health    *int    `json:"health"`
}

type demoAdvanceRequest struct {
	Blocks uint64 `json:"blocks"`
}

type demoStatsRequest struct {
	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Health    int `json:"health"`
}

func getDisplayHandler(petsSvc *pets.Service, ledgerSvc *ledger.Service, overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		info, err := petsSvc.GetInfo(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		entry, err := ledgerSvc.Get(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		stats := Compose(info, entry, overrides.Get(petID))
		writeJSON(w, http.StatusOK, toDisplayResponse(stats))
	}
}

func patchDemoHandler(overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		var req demoPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := Overrides{
			Age:       req.Age,
			Happiness: req.Happiness,
			Hunger:    req.Hunger,
			Health:    req.Health,
		}
		if req.Stage != nil {
			st := pets.Stage(*req.Stage)
			patch.Stage = &st
		}

		overrides.Patch(petID, patch)
		w.WriteHeader(http.StatusNoContent)
	}
}

func resetDemoHandler(overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overrides.Reset(chi.URLParam(r, "petID"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// demoAdvanceHandler simula el paso de N bloques con el mismo engine que
// usa el store, pero todo queda en la sesión de overrides.
func demoAdvanceHandler(petsSvc *pets.Service, overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		var req demoAdvanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Blocks == 0 {
			http.Error(w, "blocks must be > 0", http.StatusBadRequest)
			return
		}

		info, err := petsSvc.GetInfo(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		sim := demoPet(info, overrides.Get(petID))
		sim = petsSvc.Tuning().Decay(sim, sim.LastUpdateBlock+req.Blocks)

		overrides.Set(petID, overridesFromPet(sim))
		w.WriteHeader(http.StatusNoContent)
	}
}

func demoStatsHandler(petsSvc *pets.Service, overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		var req demoStatsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		info, err := petsSvc.GetInfo(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		sim := demoPet(info, overrides.Get(petID))
		sim.Happiness = clamp(req.Happiness)
		sim.Hunger = clamp(req.Hunger)
		sim.Health = clamp(req.Health)
		// stats nuevos pueden habilitar evolución
		sim = petsSvc.Tuning().Decay(sim, sim.LastUpdateBlock)

		overrides.Set(petID, overridesFromPet(sim))
		w.WriteHeader(http.StatusNoContent)
	}
}

func demoEvolveHandler(petsSvc *pets.Service, overrides *OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		info, err := petsSvc.GetInfo(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		sim := demoPet(info, overrides.Get(petID))
		if sim.Stage < pets.StageAdult {
			sim.Stage++
		}

		overrides.Set(petID, overridesFromPet(sim))
		w.WriteHeader(http.StatusNoContent)
	}
}

// demoPet arma el estado base de la simulación: snapshot con los
// overrides existentes pisados encima.
func demoPet(info pets.Info, ov *Overrides) pets.Pet {
	p := info.Pet
	if ov == nil {
		return p
	}
	if ov.Age != nil {
		p.AgeBlocks = *ov.Age
	}
	if ov.Stage != nil {
		p.Stage = *ov.Stage
	}
	if ov.Happiness != nil {
		p.Happiness = *ov.Happiness
	}
	if ov.Hunger != nil {
		p.Hunger = *ov.Hunger
	}
	if ov.Health != nil {
		p.Health = *ov.Health
	}
	return p
}

func overridesFromPet(p pets.Pet) Overrides {
	age := p.AgeBlocks
	stage := p.Stage
	happiness := p.Happiness
	hunger := p.Hunger
	health := p.Health
	return Overrides{
		Age:       &age,
		Stage:     &stage,
		Happiness: &happiness,
		Hunger:    &hunger,
		Health:    &health,
	}
}

func toDisplayResponse(s DisplayStats) displayResponse {
	return displayResponse{
		PetID: s.PetID,
		Name:  s.Name,

		AgeBlocks: s.AgeBlocks,
		Stage:     s.Stage.String(),

		Happiness: s.Happiness,
		Hunger:    s.Hunger,
		Health:    s.Health,

		IsDead:     s.IsDead,
		DeathBlock: s.DeathBlock,

		BlocksSinceUpdate: s.BlocksSinceUpdate,

		PendingEvents: s.PendingEvents,
		DemoActive:    s.DemoActive,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, pets.ErrNotFound) {
		http.Error(w, pets.ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
