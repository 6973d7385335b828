package playlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type PlaylistHandler struct {
	service *Service
}

func NewPlaylistHandler(service *Service) PlaylistHandler {
	return PlaylistHandler{service: service}
}

// GetPlaylistHandler godoc
// @Summary      Our songs
// @Tags         playlist
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Song}
// @Router       /api/playlist [get]
func (h *PlaylistHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load playlist", err.Error())
		return
	}
	response.Success(w, songs, "successfully")
}

func (h *PlaylistHandler) AddSongHandler(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	songs, err := h.service.Add(r.Context(), req)
	h.respond(w, songs, err, "Failed to add song")
}

func (h *PlaylistHandler) ReplacePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req []Song
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	songs, err := h.service.Replace(r.Context(), req)
	h.respond(w, songs, err, "Failed to save playlist")
}

func (h *PlaylistHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	var req SongPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	songs, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	h.respond(w, songs, err, "Failed to update song")
}

func (h *PlaylistHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, songs, err, "Failed to delete song")
}

func (h *PlaylistHandler) respond(w http.ResponseWriter, songs []Song, err error, failure string) {
	switch {
	case err == nil:
		response.Success(w, songs, "successfully")
	case errors.Is(err, ErrEmptyTitle):
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"title": "title is required",
		})
	case errors.Is(err, ErrEmptyArtist):
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"artist": "artist is required",
		})
	case errors.Is(err, ErrInvalidLink), errors.Is(err, ErrDuplicateID):
		response.Error(w, http.StatusBadRequest, failure, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, failure, err.Error())
	}
}
