package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pet-adoption-hub/internal/adapters/auth/jwtverify"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/router"
)

// @title Pet Adoption Hub API
// @version 1.0
// @description Marketplace de adopción de mascotas: publicaciones, solicitudes y notificaciones.
// @BasePath /
func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	appLog := logger.NewFromEnv()

	// Con AUTH_JWT_SECRET valida tokens reales; sin secret queda el modo
	// dev por header X-Debug-User-ID.
	var verifier auth.AuthVerifier
	if os.Getenv("AUTH_JWT_SECRET") != "" {
		v, err := jwtverify.NewFromEnv()
		if err != nil {
			log.Fatalf("auth verifier: %v", err)
		}
		verifier = v
	} else {
		appLog.Warn("AUTH_JWT_SECRET not set, running with debug auth headers", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Log:          appLog,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
