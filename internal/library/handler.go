package library

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type LibraryHandler struct {
	service *Service
}

func NewLibraryHandler(service *Service) LibraryHandler {
	return LibraryHandler{service: service}
}

// GetLibraryHandler godoc
// @Summary      Books and movies
// @Tags         library
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=LibraryData}
// @Router       /api/library [get]
func (h *LibraryHandler) GetLibraryHandler(w http.ResponseWriter, r *http.Request) {
	lib, err := h.service.GetLibrary(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load library", err.Error())
		return
	}
	response.Success(w, lib, "successfully")
}

func (h *LibraryHandler) ReplaceLibraryHandler(w http.ResponseWriter, r *http.Request) {
	var req LibraryData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lib, err := h.service.ReplaceLibrary(r.Context(), req)
	h.respond(w, lib, err, "Failed to save library")
}

func (h *LibraryHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lib, err := h.service.AddItem(r.Context(), Shelf(chi.URLParam(r, "shelf")), req.Title)
	h.respond(w, lib, err, "Failed to add item")
}

func (h *LibraryHandler) EditItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lib, err := h.service.EditItem(r.Context(), Shelf(chi.URLParam(r, "shelf")), chi.URLParam(r, "id"), req.Title)
	h.respond(w, lib, err, "Failed to update item")
}

func (h *LibraryHandler) ToggleItemHandler(w http.ResponseWriter, r *http.Request) {
	lib, err := h.service.ToggleItem(r.Context(), Shelf(chi.URLParam(r, "shelf")), chi.URLParam(r, "id"))
	h.respond(w, lib, err, "Failed to toggle item")
}

func (h *LibraryHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	lib, err := h.service.DeleteItem(r.Context(), Shelf(chi.URLParam(r, "shelf")), chi.URLParam(r, "id"))
	h.respond(w, lib, err, "Failed to delete item")
}

func (h *LibraryHandler) respond(w http.ResponseWriter, lib LibraryData, err error, failure string) {
	switch {
	case err == nil:
		response.Success(w, lib, "successfully")
	case errors.Is(err, ErrEmptyTitle):
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"title": "title is required",
		})
	case errors.Is(err, ErrUnknownShelf), errors.Is(err, ErrDuplicateID):
		response.Error(w, http.StatusBadRequest, failure, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, failure, err.Error())
	}
}
