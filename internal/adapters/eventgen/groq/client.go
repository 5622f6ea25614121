package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/platform/httpclient"
	"evolvagotchi/internal/ports/eventgen"
)

var (
	ErrNotConfigured = errors.New("groq client not configured")
	ErrUpstream      = errors.New("groq upstream error")
)

// Config del generador. Sin APIKey el adapter queda en modo fallback puro
// (templates locales), así el juego funciona sin cuenta.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	Timeout time.Duration
}

// Generator llama a un endpoint chat-completions para inventar el evento
// y, si el upstream falla o devuelve basura, cae a templates locales.
// Implementa eventgen.Generator.
type Generator struct {
	http   *httpclient.Client
	apiKey string
	model  string

	fallback *fallbackGenerator
}

func New(cfg Config) (*Generator, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	base := strings.TrimSpace(cfg.BaseURL)
	var hc *httpclient.Client
	if base != "" {
		c, err := httpclient.NewWithBaseURL(base, timeout)
		if err != nil {
			return nil, err
		}
		hc = c
	} else {
		hc = httpclient.New(timeout)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	return &Generator{
		http:     hc,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    model,
		fallback: newFallbackGenerator(),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// eventPayload es el JSON que le pedimos al modelo.
type eventPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Effect      struct {
		Happiness *int `json:"happiness"`
		Hunger    *int `json:"hunger"`
		Health    *int `json:"health"`
	} `json:"effect"`
}

func (g *Generator) Generate(ctx context.Context, pc eventgen.PetContext) (ledger.AppendInput, error) {
	kind := g.fallback.pickKind(pc)

	if g.apiKey == "" {
		return g.fallback.generate(pc, kind), nil
	}

	ev, err := g.generateAI(ctx, pc, kind)
	if err != nil {
		// Caja negra que falló: el juego sigue con un template.
		return g.fallback.generate(pc, kind), nil
	}
	return ev, nil
}

func (g *Generator) generateAI(ctx context.Context, pc eventgen.PetContext, kind ledger.Kind) (ledger.AppendInput, error) {
	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an AI event generator for a virtual pet game. Generate engaging, contextual events in valid JSON format only."},
			{Role: "user", Content: buildPrompt(pc, kind)},
		},
		Temperature: 0.8,
		MaxTokens:   200,
	}

	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}

	var resp chatResponse
	if err := g.http.DoJSON(ctx, "POST", "/chat/completions", headers, req, &resp); err != nil {
		return ledger.AppendInput{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return ledger.AppendInput{}, fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	payload, err := extractJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return ledger.AppendInput{}, err
	}

	out := ledger.AppendInput{
		Kind:        kind,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
	}
	if out.Title == "" {
		out.Title = "Something Happened!"
	}
	if out.Description == "" {
		out.Description = pc.Name + " experienced something interesting!"
	}
	if payload.Effect.Happiness != nil {
		out.Effect.Happiness = *payload.Effect.Happiness
	}
	if payload.Effect.Hunger != nil {
		out.Effect.Hunger = *payload.Effect.Hunger
	}
	if payload.Effect.Health != nil {
		out.Effect.Health = *payload.Effect.Health
	}
	return out, nil
}

func buildPrompt(pc eventgen.PetContext, kind ledger.Kind) string {
	return fmt.Sprintf(`You are generating a random event for an Evolvagotchi named %s, who is a %s.

Current state:
- Happiness: %d/100
- Hunger: %d/100
- Health: %d/100

Generate a SHORT, fun, and contextual %s event. The event should:
1. Be 1-2 sentences
2. Match the pet's evolution stage (%s)
3. Feel natural and engaging
4. Include the effect it has (positive or negative)

Format EXACTLY as JSON:
{
  "title": "Event Title",
  "description": "What happened to %s",
  "effect": {
    "happiness": number or null,
    "hunger": number or null,
    "health": number or null
  }
}

Generate the event now (JSON only, no extra text):`,
		pc.Name, pc.StageName,
		pc.Happiness, pc.Hunger, pc.Health,
		kind, pc.StageName, pc.Name)
}

// Los modelos a veces envuelven el JSON en markdown; rescatamos el primer
// bloque {...}.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func extractJSON(content string) (eventPayload, error) {
	var payload eventPayload

	match := jsonBlockRe.FindString(content)
	if match == "" {
		return payload, fmt.Errorf("%w: no JSON in completion", ErrUpstream)
	}
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return payload, nil
}
