package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"evolvagotchi/internal/domain/history"
	"evolvagotchi/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las operaciones del store autoritativo. La vista
// compuesta (ledger + overrides) vive en el package view; acá solo está
// lo que muta el estado canónico.
func RegisterRoutes(r chi.Router, svc *Service, historySvc *history.Service) {
	r.Post("/pets", mintHandler(svc, historySvc))
	r.Get("/pets", listPetsHandler(svc))
	r.Post("/pets/update-batch", batchUpdateHandler(svc))

	r.Post("/pets/{petID}/feed", feedHandler(svc, historySvc))
	r.Post("/pets/{petID}/play", playHandler(svc, historySvc))
	r.Post("/pets/{petID}/revive", reviveHandler(svc, historySvc))
	r.Post("/pets/{petID}/update", updateStateHandler(svc, historySvc))
}

type mintRequest struct {
	Name        string `json:"name"`
	PaymentGwei uint64 `json:"payment_gwei"`
}

type petResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`

	BirthBlock uint64 `json:"birth_block"`
	AgeBlocks  uint64 `json:"age_blocks"`
	Stage      string `json:"stage"`

	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Health    int `json:"health"`

	IsDead     bool   `json:"is_dead"`
	DeathBlock uint64 `json:"death_block,omitempty"`

	LastUpdateBlock uint64 `json:"last_update_block"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type paymentRequest struct {
	PaymentGwei uint64 `json:"payment_gwei"`
}

type batchUpdateRequest struct {
	IDs []string `json:"ids"`
}

func mintHandler(svc *Service, historySvc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req mintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Mint(r.Context(), claims.Address, MintInput{
			Name:        req.Name,
			PaymentGwei: req.PaymentGwei,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		historySvc.RecordBirth(r.Context(), p.ID, p.Name)

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.Address)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func feedHandler(svc *Service, historySvc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req paymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.Feed(r.Context(), claims.Address, petID, req.PaymentGwei)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		historySvc.RecordFeed(r.Context(), p.ID, p.Name, statsSnapshot(p))

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func playHandler(svc *Service, historySvc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.Play(r.Context(), claims.Address, petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		historySvc.RecordPlay(r.Context(), p.ID, p.Name, statsSnapshot(p))

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func reviveHandler(svc *Service, historySvc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req paymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.Revive(r.Context(), claims.Address, petID, req.PaymentGwei)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		historySvc.RecordRevival(r.Context(), p.ID, p.Name, p.Health)

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updateStateHandler(svc *Service, historySvc *history.Service) http.HandlerFunc {
	// público: cualquiera puede refrescar el estado de cualquier mascota
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		before, err := svc.GetInfo(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		p, err := svc.UpdateState(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		recordTransitions(r.Context(), historySvc, before.Pet, p)

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func batchUpdateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(req.IDs) == 0 {
			http.Error(w, "ids required", http.StatusBadRequest)
			return
		}

		updated, err := svc.BatchUpdateState(r.Context(), req.IDs)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]petResponse, 0, len(updated))
		for _, p := range updated {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recordTransitions deja en el timeline lo que el update provocó
// (evolución o muerte). Best-effort.
func recordTransitions(ctx context.Context, historySvc *history.Service, before, after Pet) {
	if after.Stage > before.Stage {
		historySvc.RecordEvolution(ctx, after.ID, after.Name, int(after.Stage), after.Stage.String())
	}
	if after.IsDead && !before.IsDead {
		historySvc.RecordDeath(ctx, after.ID, after.Name)
	}
}

func statsSnapshot(p Pet) history.StatsSnapshot {
	h, hu, he := p.Happiness, p.Hunger, p.Health
	return history.StatsSnapshot{Happiness: &h, Hunger: &hu, Health: &he}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:      p.ID,
		OwnerID: p.OwnerID,
		Name:    p.Name,

		BirthBlock: p.BirthBlock,
		AgeBlocks:  p.AgeBlocks,
		Stage:      p.Stage.String(),

		Happiness: p.Happiness,
		Hunger:    p.Hunger,
		Health:    p.Health,

		IsDead:     p.IsDead,
		DeathBlock: p.DeathBlock,

		LastUpdateBlock: p.LastUpdateBlock,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, ErrUnauthorized.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInsufficientPayment):
		http.Error(w, ErrInsufficientPayment.Error(), http.StatusPaymentRequired)
	case errors.Is(err, ErrInvalidName):
		http.Error(w, ErrInvalidName.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyDead), errors.Is(err, ErrNotDead):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
