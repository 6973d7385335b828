package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taiwoajasa245/memories-api/docs"
	"github.com/taiwoajasa245/memories-api/internal/adventures"
	"github.com/taiwoajasa245/memories-api/internal/auth"
	"github.com/taiwoajasa245/memories-api/internal/gallery"
	"github.com/taiwoajasa245/memories-api/internal/letters"
	"github.com/taiwoajasa245/memories-api/internal/library"
	"github.com/taiwoajasa245/memories-api/internal/memories"
	"github.com/taiwoajasa245/memories-api/internal/playlist"
	"github.com/taiwoajasa245/memories-api/internal/preferences"
	"github.com/taiwoajasa245/memories-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api", func(r chi.Router) {
		s.loadAuthRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.AuthMiddleware)
			s.loadGalleryRoutes(r)
			s.loadAdventureRoutes(r)
			s.loadLibraryRoutes(r)
			s.loadLetterRoutes(r)
			s.loadMemoryRoutes(r)
			s.loadPlaylistRoutes(r)
			s.loadPreferenceRoutes(r)
		})
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to our memories"
	response.Success(w, resp, "Success")
}

// HealthHandler godoc
// @Summary      Database health
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.APIResponse
// @Failure      503  {object}  response.APIResponse
// @Router       /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health()
	if stats["status"] != "up" {
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable", stats)
		return
	}
	response.Success(w, stats, "Ok")
}

func (s *Server) loadAuthRoutes(router chi.Router) {
	authHandler := auth.NewHandler(s.auth)

	router.Post("/auth/login", authHandler.LoginHandler)
	router.Get("/auth/verify", authHandler.VerifyHandler)
}

func (s *Server) loadGalleryRoutes(router chi.Router) {
	h := gallery.NewGalleryHandler(s.gallery)

	router.Get("/gallery", h.ListPhotosHandler)
	router.Post("/gallery", h.ReplacePhotosHandler)
	router.Delete("/gallery", h.DeletePhotoHandler)

	router.Post("/gallery/photos", h.AddPhotoHandler)
	router.Patch("/gallery/photos/{id}", h.UpdatePhotoHandler)
	router.Delete("/gallery/photos/{id}", h.RemovePhotoHandler)
}

func (s *Server) loadAdventureRoutes(router chi.Router) {
	h := adventures.NewAdventuresHandler(s.adventures)

	router.Get("/adventures", h.GetListsHandler)
	router.Put("/adventures", h.ReplaceListsHandler)
	router.Put("/adventures/dates/count", h.SetDateCountHandler)
	router.Post("/adventures/{list}/items", h.AddItemHandler)
	router.Patch("/adventures/{list}/items/{id}", h.EditItemHandler)
	router.Patch("/adventures/{list}/items/{id}/toggle", h.ToggleItemHandler)
	router.Delete("/adventures/{list}/items/{id}", h.DeleteItemHandler)
}

func (s *Server) loadLibraryRoutes(router chi.Router) {
	h := library.NewLibraryHandler(s.library)

	router.Get("/library", h.GetLibraryHandler)
	router.Put("/library", h.ReplaceLibraryHandler)
	router.Post("/library/{shelf}/items", h.AddItemHandler)
	router.Patch("/library/{shelf}/items/{id}", h.EditItemHandler)
	router.Patch("/library/{shelf}/items/{id}/toggle", h.ToggleItemHandler)
	router.Delete("/library/{shelf}/items/{id}", h.DeleteItemHandler)
}

func (s *Server) loadLetterRoutes(router chi.Router) {
	h := letters.NewLettersHandler(s.letters)

	router.Get("/letters", h.GetLettersHandler)
	router.Put("/letters", h.ReplaceLettersHandler)
	router.Post("/letters", h.CreateLetterHandler)
	router.Patch("/letters/{id}", h.UpdateLetterHandler)
	router.Delete("/letters/{id}", h.DeleteLetterHandler)
	router.Post("/letters/{id}/reveal", h.RevealLetterHandler)
}

func (s *Server) loadMemoryRoutes(router chi.Router) {
	h := memories.NewMemoriesHandler(s.memories)

	router.Get("/memories", h.GetMemoriesHandler)
	router.Put("/memories", h.ReplaceMemoriesHandler)
	router.Post("/memories", h.CreateMemoryHandler)
	router.Patch("/memories/{id}", h.UpdateMemoryHandler)
	router.Delete("/memories/{id}", h.DeleteMemoryHandler)
}

func (s *Server) loadPlaylistRoutes(router chi.Router) {
	h := playlist.NewPlaylistHandler(s.playlist)

	router.Get("/playlist", h.GetPlaylistHandler)
	router.Put("/playlist", h.ReplacePlaylistHandler)
	router.Post("/playlist", h.AddSongHandler)
	router.Patch("/playlist/{id}", h.UpdateSongHandler)
	router.Delete("/playlist/{id}", h.DeleteSongHandler)
}

func (s *Server) loadPreferenceRoutes(router chi.Router) {
	h := preferences.NewPreferencesHandler(s.preferences)

	router.Get("/preferences", h.GetPreferencesHandler)
	router.Put("/preferences", h.UpdatePreferencesHandler)
	router.Patch("/preferences/volume-visibility", h.ToggleVolumeVisibilityHandler)
}
