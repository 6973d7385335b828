package gallery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

// GalleryHandler serves two surfaces: the original /api/gallery routes,
// which answer bare arrays, {"success": true} or {"error": ...}, and the
// per-photo routes, which use the usual envelope.
type GalleryHandler struct {
	service *Service
}

func NewGalleryHandler(service *Service) GalleryHandler {
	return GalleryHandler{service: service}
}

// ListPhotosHandler godoc
// @Summary      All photos, newest first
// @Tags         gallery
// @Produce      json
// @Success      200  {array}   Photo
// @Failure      500  {object}  map[string]string
// @Router       /api/gallery [get]
func (h *GalleryHandler) ListPhotosHandler(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context())
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Raw(w, http.StatusOK, photos)
}

// ReplacePhotosHandler godoc
// @Summary      Replace the whole gallery
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        request  body      []Photo  true  "Photos"
// @Success      200      {object}  map[string]bool
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/gallery [post]
func (h *GalleryHandler) ReplacePhotosHandler(w http.ResponseWriter, r *http.Request) {
	var photos []Photo
	if err := json.NewDecoder(r.Body).Decode(&photos); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if photos == nil {
		photos = []Photo{}
	}
	if err := h.service.ReplaceAll(r.Context(), photos); err != nil {
		response.Fail(w, statusFor(err), err.Error())
		return
	}
	response.Done(w)
}

// DeletePhotoHandler godoc
// @Summary      Delete one photo
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        request  body      DeleteRequest  true  "Photo id"
// @Success      200      {object}  map[string]bool
// @Router       /api/gallery [delete]
func (h *GalleryHandler) DeletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		response.Fail(w, statusFor(err), err.Error())
		return
	}
	response.Done(w)
}

func (h *GalleryHandler) AddPhotoHandler(w http.ResponseWriter, r *http.Request) {
	var req PhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	photos, _, err := h.service.Add(r.Context(), req)
	h.respond(w, photos, err, "Failed to add photo")
}

func (h *GalleryHandler) UpdatePhotoHandler(w http.ResponseWriter, r *http.Request) {
	var req PhotoPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	photos, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	h.respond(w, photos, err, "Failed to update photo")
}

func (h *GalleryHandler) RemovePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.Remove(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, photos, err, "Failed to delete photo")
}

func (h *GalleryHandler) respond(w http.ResponseWriter, photos []Photo, err error, failure string) {
	if err != nil {
		response.Error(w, statusFor(err), failure, err.Error())
		return
	}
	response.Success(w, photos, "successfully")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingID), errors.Is(err, ErrDuplicateID), errors.Is(err, ErrEmptyURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
