package memories

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type MemoriesHandler struct {
	service *Service
}

func NewMemoriesHandler(service *Service) MemoriesHandler {
	return MemoriesHandler{service: service}
}

// GetMemoriesHandler godoc
// @Summary      Memories, newest first
// @Tags         memories
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Memory}
// @Router       /api/memories [get]
func (h *MemoriesHandler) GetMemoriesHandler(w http.ResponseWriter, r *http.Request) {
	memories, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load memories", err.Error())
		return
	}
	response.Success(w, memories, "successfully")
}

func (h *MemoriesHandler) CreateMemoryHandler(w http.ResponseWriter, r *http.Request) {
	var req MemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	memories, err := h.service.Create(r.Context(), req)
	h.respond(w, memories, err, "Failed to add memory")
}

func (h *MemoriesHandler) ReplaceMemoriesHandler(w http.ResponseWriter, r *http.Request) {
	var req []Memory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	memories, err := h.service.Replace(r.Context(), req)
	h.respond(w, memories, err, "Failed to save memories")
}

func (h *MemoriesHandler) UpdateMemoryHandler(w http.ResponseWriter, r *http.Request) {
	var req MemoryPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	memories, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	h.respond(w, memories, err, "Failed to update memory")
}

func (h *MemoriesHandler) DeleteMemoryHandler(w http.ResponseWriter, r *http.Request) {
	memories, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, memories, err, "Failed to delete memory")
}

func (h *MemoriesHandler) respond(w http.ResponseWriter, memories []Memory, err error, failure string) {
	switch {
	case err == nil:
		response.Success(w, memories, "successfully")
	case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrEmptyDescription), errors.Is(err, ErrMissingDate):
		response.Error(w, http.StatusBadRequest, "Missing required fields", err.Error())
	case errors.Is(err, ErrDuplicateID):
		response.Error(w, http.StatusBadRequest, failure, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, failure, err.Error())
	}
}
