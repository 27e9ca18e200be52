package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gearshare/backend/internal/api/middleware"
	"github.com/gearshare/backend/internal/gateway"
	"github.com/gearshare/backend/internal/infrastructure/observability"
	"github.com/gearshare/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("gearshare-gateway", cfg.Server.Env)

	proxy, err := gateway.NewProxy(cfg.Gateway.ServerURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway proxy")
	}

	var handler http.Handler = proxy
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	server := &http.Server{
		Addr:         cfg.Gateway.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("server_url", cfg.Gateway.ServerURL).
			Msg("gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("gateway failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("gateway shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during gateway shutdown")
	}

	log.Info().Msg("gateway stopped")
}
