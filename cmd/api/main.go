package main

import (
	"net/http"
	"os"
	"time"

	"evolvagotchi/internal/platform/config"
	"evolvagotchi/internal/platform/logger"
	"evolvagotchi/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.NewFromEnv()

	r := router.NewRouter(router.Options{
		Config: cfg,
		Log:    log,
		// sin verifier para modo dev; X-Debug-Wallet hace de wallet
		AuthVerifier: nil,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
