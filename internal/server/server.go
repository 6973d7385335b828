package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/adventures"
	"github.com/taiwoajasa245/memories-api/internal/auth"
	"github.com/taiwoajasa245/memories-api/internal/database"
	"github.com/taiwoajasa245/memories-api/internal/document"
	"github.com/taiwoajasa245/memories-api/internal/gallery"
	"github.com/taiwoajasa245/memories-api/internal/letters"
	"github.com/taiwoajasa245/memories-api/internal/library"
	"github.com/taiwoajasa245/memories-api/internal/mail"
	"github.com/taiwoajasa245/memories-api/internal/memories"
	"github.com/taiwoajasa245/memories-api/internal/playlist"
	"github.com/taiwoajasa245/memories-api/internal/preferences"
	"github.com/taiwoajasa245/memories-api/pkg/config"
	"github.com/taiwoajasa245/memories-api/pkg/util"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config
	log     zerolog.Logger

	auth        *auth.AuthService
	adventures  *adventures.Service
	library     *library.Service
	letters     *letters.Service
	memories    *memories.Service
	playlist    *playlist.Service
	gallery     *gallery.Service
	preferences *preferences.Service

	cancel context.CancelFunc
	jobs   sync.WaitGroup
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	stats := db.Health()
	log.Info().Interface("stats", stats).Msg("database health")
	if stats["status"] != "up" {
		return nil, errors.New("database connection failed")
	}

	backend, err := document.Open(cfg, db)
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if cfg.AuthEnabled() && secret == "" {
		if secret, err = util.RandomSecret(); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		log.Warn().Msg("JWT_SECRET not set, tokens will not survive a restart")
	}

	mailer := mail.NewMail(
		cfg.SmtpFrom,
		"Our Memories",
		cfg.SmtpPassword,
		cfg.SmtpHost,
		cfg.SmtpPort,
	)
	var notifier letters.Notifier = letters.NopNotifier{}
	if cfg.MailEnabled() {
		notifier = letters.NewMailNotifier(mailer, cfg.ParticipantEmails, cfg.SiteURL, log)
	}

	loc := cfg.Location()
	s := &Server{
		port: cfg.Port,
		db:   db,
		cfg:  cfg,
		log:  log,

		auth:        auth.NewAuthService(cfg.SitePasswordHash, secret, cfg.Participants, log),
		adventures:  adventures.NewService(adventures.NewRepository(backend, log), log),
		library:     library.NewService(library.NewRepository(backend, log), log),
		letters:     letters.NewService(letters.NewRepository(backend, log), cfg.Participants, loc, notifier, log),
		memories:    memories.NewService(memories.NewRepository(backend, log), log),
		playlist:    playlist.NewService(playlist.NewRepository(backend, log), log),
		gallery:     gallery.NewService(gallery.NewRepository(db), loc, log),
		preferences: preferences.NewService(preferences.NewRepository(backend, log), log),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.preferences.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// StartBackgroundJobs runs scheduled jobs
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		s.letters.StartScheduler(ctx, s.cfg.RevealInterval)
	}()
}

// StopBackgroundJobs cancels the jobs and waits for them to return.
func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.jobs.Wait()
		s.log.Info().Msg("background jobs stopped gracefully")
	}
}
