package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/stratagem/api/internal/auth"
	"github.com/freeeve/stratagem/api/internal/config"
	"github.com/freeeve/stratagem/api/internal/handler"
	"github.com/freeeve/stratagem/api/internal/logger"
	"github.com/freeeve/stratagem/api/internal/middleware"
	"github.com/freeeve/stratagem/api/internal/rating"
	"github.com/freeeve/stratagem/api/internal/replay"
	"github.com/freeeve/stratagem/api/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("replayDir", cfg.ReplayDir).Str("dataDir", cfg.DataDir).Msg("Config loaded")

	replays, err := replay.NewStore(cfg.ReplayDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Replay store init failed")
	}
	ratings, err := rating.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Rating store init failed")
	}

	keys := auth.NewKeyIssuer(cfg.JWTSecret)
	wsHub := handler.NewHub()

	gameSvc := service.NewGameService(keys, replays, ratings, wsHub)

	gameHandler := handler.NewGameHandler(gameSvc)
	rankingHandler := handler.NewRankingHandler(ratings)
	wsHandler := handler.NewWSHandler(wsHub, keys)

	mux := handler.Routes(gameHandler, rankingHandler, wsHandler)
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
