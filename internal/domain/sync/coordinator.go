package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/platform/logger"
)

var (
	// ErrSyncInFlight: ya hay un sync corriendo para esa mascota. Guard
	// puramente local, nunca llega al gateway.
	ErrSyncInFlight = errors.New("sync already in flight")

	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// Gateway es lo único que el coordinator sabe del store autoritativo.
type Gateway interface {
	// ApplyEffects aplica los deltas acumulados (el store clampa).
	ApplyEffects(ctx context.Context, petID string, dHappiness, dHunger, dHealth int) error
	// Refresh aplica solo el decay pendiente (ledger vacío).
	Refresh(ctx context.Context, petID string) error
}

// State del sync por mascota. Confirmed/Failed son terminales de ese
// intento; el estado observable vuelve a Idle.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
)

// Result de un sync confirmado.
type Result struct {
	PetID string
	// Applied: se mandaron deltas (ledger no vacío). False => fue refresh.
	Applied bool
	// Eventos que cubría el request enviado.
	Events int
	// Totales enviados.
	Happiness, Hunger, Health int

	SyncedAt time.Time
}

// Coordinator reconcilia el ledger con el store autoritativo. Exactamente
// un sync en vuelo por mascota; el segundo se rechaza localmente, no se
// encola. Sin retry automático: un fallo deja el ledger intacto y vuelve a
// Idle para que el usuario reintente.
type Coordinator struct {
	gw     Gateway
	ledger *ledger.Service
	log    logger.Logger
	now    func() time.Time

	mu       gosync.Mutex
	inFlight map[string]bool
}

func NewCoordinator(gw Gateway, ldg *ledger.Service, log logger.Logger) *Coordinator {
	return &Coordinator{
		gw:       gw,
		ledger:   ldg,
		log:      log,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

func (c *Coordinator) State(petID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[petID] {
		return StateSyncing
	}
	return StateIdle
}

// Sync ejecuta un ciclo completo: snapshot del ledger, request al gateway,
// y en confirmación limpia la entry ENTERA (incluidos eventos que hayan
// entrado mientras el request volaba — ver nota de diseño). En fallo o
// timeout no toca el ledger.
func (c *Coordinator) Sync(ctx context.Context, petID string) (Result, error) {
	if !c.acquire(petID) {
		return Result{}, ErrSyncInFlight
	}
	defer c.release(petID)

	entry, err := c.ledger.Get(ctx, petID)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		PetID:     petID,
		Applied:   !entry.IsEmpty(),
		Events:    len(entry.Events),
		Happiness: entry.TotalHappiness,
		Hunger:    entry.TotalHunger,
		Health:    entry.TotalHealth,
	}

	if res.Applied {
		err = c.gw.ApplyEffects(ctx, petID, entry.TotalHappiness, entry.TotalHunger, entry.TotalHealth)
	} else {
		err = c.gw.Refresh(ctx, petID)
	}
	if err != nil {
		// Fallo => ledger intacto, sin retry. El timeout de contexto cae
		// acá también: jamás asumimos éxito sin confirmación.
		c.log.Warn("sync failed", map[string]any{"pet_id": petID, "err": err.Error()})
		// doble %w: el caller distingue fallos de dominio (not found,
		// unauthorized) de fallos de transporte.
		return Result{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}

	if res.Applied {
		if err := c.ledger.Clear(ctx, petID); err != nil {
			// El store ya aplicó los efectos; un clear fallido dejaría
			// deltas duplicados en el próximo sync. Lo reportamos fuerte.
			c.log.Error("ledger clear failed after confirmed sync", map[string]any{"pet_id": petID, "err": err.Error()})
			return Result{}, err
		}
	}

	res.SyncedAt = c.now()
	c.log.Info("sync confirmed", map[string]any{"pet_id": petID, "applied": res.Applied, "events": res.Events})
	return res, nil
}

func (c *Coordinator) acquire(petID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[petID] {
		return false
	}
	c.inFlight[petID] = true
	return true
}

func (c *Coordinator) release(petID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, petID)
}
