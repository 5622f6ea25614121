package local

import (
	"context"

	"evolvagotchi/internal/domain/pets"
	"evolvagotchi/internal/middleware"
)

// Gateway adapta el store autoritativo in-process a la interfaz del sync
// coordinator. La identidad del caller viaja en el context (claims del
// middleware), igual que la wallet firma del lado del navegador.
type Gateway struct {
	svc *pets.Service
}

func New(svc *pets.Service) *Gateway {
	return &Gateway{svc: svc}
}

func (g *Gateway) ApplyEffects(ctx context.Context, petID string, dHappiness, dHunger, dHealth int) error {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		return pets.ErrUnauthorized
	}
	_, err := g.svc.ApplyEventEffects(ctx, claims.Address, petID, dHappiness, dHunger, dHealth)
	return err
}

func (g *Gateway) Refresh(ctx context.Context, petID string) error {
	// updateState es público: no exige ownership.
	_, err := g.svc.UpdateState(ctx, petID)
	return err
}
