package router

import (
	"database/sql"
	"net/http"
	"time"

	"evolvagotchi/internal/adapters/eventgen/groq"
	chaingw "evolvagotchi/internal/adapters/gateway/chain"
	localgw "evolvagotchi/internal/adapters/gateway/local"
	mem "evolvagotchi/internal/adapters/storage/memory"
	pg "evolvagotchi/internal/adapters/storage/postgres"
	lite "evolvagotchi/internal/adapters/storage/sqlite"
	"evolvagotchi/internal/domain/advisor"
	"evolvagotchi/internal/domain/events"
	"evolvagotchi/internal/domain/history"
	"evolvagotchi/internal/domain/ledger"
	"evolvagotchi/internal/domain/pets"
	syncdomain "evolvagotchi/internal/domain/sync"
	"evolvagotchi/internal/domain/view"
	"evolvagotchi/internal/middleware"
	"evolvagotchi/internal/platform/blockclock"
	"evolvagotchi/internal/platform/config"
	"evolvagotchi/internal/platform/logger"
	"evolvagotchi/internal/ports/auth"
	"evolvagotchi/internal/ports/eventgen"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, los repos autoritativos usan esta DB. Si no,
	// decide Config.DBDSN (Postgres) o in-memory.
	DB *sql.DB

	// Opcional: reloj de bloques inyectable (tests). Nil => wall clock.
	Clock pets.BlockClock

	// Opcional: generador de eventos inyectable (tests). Nil => groq con
	// fallback por templates.
	Generator eventgen.Generator

	// Opcional: throttle inyectable (tests). Nil => groq.NewThrottle().
	Throttle events.Throttle
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Repos autoritativos: DB explícita > DB_DSN > in-memory.
	var petRepo pets.Repository

	db := opts.DB
	if db == nil && cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
		} else {
			db = opened
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
	}

	// Capa cliente (ledger + history): SQLite local si hay path, si no
	// in-memory. Son durables por sesión, no autoritativos.
	var (
		ledgerRepo  ledger.Repository
		historyRepo history.Repository
	)
	if cfg.LedgerDBPath != "" {
		ldb, err := lite.Open(cfg.LedgerDBPath)
		if err != nil {
			log.Error("sqlite open failed, falling back to memory", map[string]any{"err": err.Error()})
			ledgerRepo = mem.NewLedgerRepo()
			historyRepo = mem.NewHistoryRepo()
		} else {
			ledgerRepo = lite.NewLedgerRepo(ldb)
			historyRepo = lite.NewHistoryRepo(ldb)
		}
	} else if db != nil {
		ledgerRepo = pg.NewLedgerRepo(db)
		historyRepo = pg.NewHistoryRepo(db)
	} else {
		ledgerRepo = mem.NewLedgerRepo()
		historyRepo = mem.NewHistoryRepo()
	}

	clock := opts.Clock
	if clock == nil {
		clock = blockclock.NewWallClock(time.Now())
	}

	tuning := pets.DefaultTuning()
	if cfg.TuningPath != "" {
		loaded, err := pets.LoadTuning(cfg.TuningPath)
		if err != nil {
			log.Error("tuning load failed, using defaults", map[string]any{"path": cfg.TuningPath, "err": err.Error()})
		} else {
			tuning = loaded
		}
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, clock, tuning)
	ledgerSvc := ledger.NewService(ledgerRepo)
	historySvc := history.NewService(historyRepo)
	overrides := view.NewOverrideStore()

	// Gateway del sync: nodo remoto si está configurado, si no el store
	// local en proceso.
	var gw syncdomain.Gateway
	if cfg.ChainAPIURL != "" {
		remote, err := chaingw.New(chaingw.Config{
			BaseURL: cfg.ChainAPIURL,
			APIKey:  cfg.ChainAPIKey,
		})
		if err != nil {
			log.Error("chain gateway init failed, using local store", map[string]any{"err": err.Error()})
			gw = localgw.New(petsSvc)
		} else {
			gw = remote
		}
	} else {
		gw = localgw.New(petsSvc)
	}
	coordinator := syncdomain.NewCoordinator(gw, ledgerSvc, log)

	gen := opts.Generator
	if gen == nil {
		g, err := groq.New(groq.Config{
			BaseURL: cfg.GroqAPIURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
		})
		if err != nil {
			// sin config el cliente queda en modo plantilla, que no falla.
			log.Error("groq init failed, using template events", map[string]any{"err": err.Error()})
			g, _ = groq.New(groq.Config{})
		}
		gen = g
	}

	throttle := opts.Throttle
	if throttle == nil {
		throttle = groq.NewThrottle()
	}

	eventsSvc := events.NewService(petsSvc, ledgerSvc, historySvc, overrides, gen, throttle)
	adv := advisor.New(tuning)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, historySvc)
	view.RegisterRoutes(r, petsSvc, ledgerSvc, overrides)
	events.RegisterRoutes(r, eventsSvc)
	syncdomain.RegisterRoutes(r, coordinator)
	history.RegisterRoutes(r, historySvc)
	advisor.RegisterRoutes(r, adv, petsSvc, ledgerSvc, overrides)

	return r
}
