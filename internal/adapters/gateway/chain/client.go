package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"evolvagotchi/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("chain gateway not configured")
	ErrUpstream      = errors.New("chain node upstream error")
)

// Config del gateway remoto. BaseURL apunta al relayer HTTP que envuelve
// el contrato; APIKey es opcional según el despliegue.
type Config struct {
	BaseURL string
	APIKey  string

	// Header donde viaja la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Gateway habla con un nodo/relayer remoto por HTTP. Implementa
// sync.Gateway. Sin cancelación server-side: emitido el request, corre a
// término; el timeout del cliente se trata como fallo, nunca como éxito.
type Gateway struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func New(cfg Config) (*Gateway, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}

	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}

	return &Gateway{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
	}, nil
}

type applyEffectsRequest struct {
	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Health    int `json:"health"`
}

func (g *Gateway) ApplyEffects(ctx context.Context, petID string, dHappiness, dHunger, dHealth int) error {
	body := applyEffectsRequest{Happiness: dHappiness, Hunger: dHunger, Health: dHealth}
	if err := g.http.DoJSON(ctx, "POST", "/pets/"+petID+"/apply-effects", g.headers(), body, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

func (g *Gateway) Refresh(ctx context.Context, petID string) error {
	if err := g.http.DoJSON(ctx, "POST", "/pets/"+petID+"/update", g.headers(), nil, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

func (g *Gateway) headers() map[string]string {
	if g.apiKey == "" {
		return nil
	}
	return map[string]string{g.apiKeyHeader: g.apiKey}
}
