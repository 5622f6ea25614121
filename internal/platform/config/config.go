package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config agrupa toda la configuración del servicio, cargada de env vars.
// Valores vacíos => defaults razonables para modo dev (in-memory, sin auth).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Si viene, los repos autoritativos usan Postgres. Si no, in-memory.
	DBDSN string `env:"DB_DSN"`

	// Si viene, el ledger/history "client-side" persiste en SQLite local.
	LedgerDBPath string `env:"LEDGER_DB_PATH"`

	// Si viene, el sync coordinator habla con un nodo remoto en vez del
	// store local.
	ChainAPIURL string `env:"CHAIN_API_URL"`
	ChainAPIKey string `env:"CHAIN_API_KEY"`

	// Generador de eventos (chat completions). Sin API key => fallback
	// por templates.
	GroqAPIURL string `env:"GROQ_API_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	// Tuning del engine (YAML). Vacío => constantes compiladas.
	TuningPath string `env:"TUNING_PATH"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"evolvagotchi"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
