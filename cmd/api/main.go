package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/docs"
	"github.com/taiwoajasa245/memories-api/internal/database"
	"github.com/taiwoajasa245/memories-api/internal/server"
	"github.com/taiwoajasa245/memories-api/pkg/config"
	"github.com/taiwoajasa245/memories-api/pkg/logger"
)

// @title          Our Memories API
// @version        1.0
// @description    Letters, lists, library, memories, playlist and gallery for two.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
			return
		}
		log.Info().Msg("disconnected from database")
	}()

	srv, err := server.NewServer(db, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	apiServer := srv.HTTPServer()

	srv.StartBackgroundJobs()

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, srv, log, done)

	log.Info().Str("addr", apiServer.Addr).Str("env", cfg.AppEnv).Msg("server listening")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server error")
		srv.StopBackgroundJobs()
		os.Exit(1)
	}

	<-done
	log.Info().Msg("graceful shutdown complete")
}

func gracefulShutdown(apiServer *http.Server, srv *server.Server, log zerolog.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	srv.StopBackgroundJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	done <- true
}
