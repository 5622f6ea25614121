package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"
	"evolvagotchi/internal/domain/view"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, a *Advisor, petsSvc *pets.Service, ledgerSvc *ledger.Service, overrides *view.OverrideStore) {
	r.Get("/pets/{petID}/advisor", predictionsHandler(a, petsSvc, ledgerSvc, overrides))
}

type predictionResponse struct {
	Urgency   string `json:"urgency"`
	Message   string `json:"message"`
	Icon      string `json:"icon"`
	Timeframe string `json:"timeframe,omitempty"`
	Action    string `json:"action,omitempty"`
}

func predictionsHandler(a *Advisor, petsSvc *pets.Service, ledgerSvc *ledger.Service, overrides *view.OverrideStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		info, err := petsSvc.GetInfo(r.Context(), petID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		entry, err := ledgerSvc.Get(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Las predicciones se calculan sobre lo que el usuario ve.
		stats := view.Compose(info, entry, overrides.Get(petID))
		preds := a.Predict(stats)

		out := make([]predictionResponse, 0, len(preds))
		for _, p := range preds {
			out = append(out, predictionResponse{
				Urgency:   string(p.Urgency),
				Message:   p.Message,
				Icon:      p.Icon,
				Timeframe: p.Timeframe,
				Action:    p.Action,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
