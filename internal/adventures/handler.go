package adventures

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type AdventuresHandler struct {
	service *Service
}

func NewAdventuresHandler(service *Service) AdventuresHandler {
	return AdventuresHandler{service: service}
}

// GetListsHandler godoc
// @Summary      Dates, bucket and travel lists
// @Tags         adventures
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=ListData}
// @Router       /api/adventures [get]
func (h *AdventuresHandler) GetListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.GetLists(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load lists", err.Error())
		return
	}
	response.Success(w, lists, "successfully")
}

func (h *AdventuresHandler) ReplaceListsHandler(w http.ResponseWriter, r *http.Request) {
	var req ListData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lists, err := h.service.ReplaceLists(r.Context(), req)
	h.respond(w, lists, err, "Failed to save lists")
}

func (h *AdventuresHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lists, err := h.service.AddItem(r.Context(), listParam(r), req.Text)
	h.respond(w, lists, err, "Failed to add item")
}

func (h *AdventuresHandler) EditItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lists, err := h.service.EditItem(r.Context(), listParam(r), chi.URLParam(r, "id"), req.Text)
	h.respond(w, lists, err, "Failed to update item")
}

func (h *AdventuresHandler) ToggleItemHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.ToggleItem(r.Context(), listParam(r), chi.URLParam(r, "id"))
	h.respond(w, lists, err, "Failed to toggle item")
}

func (h *AdventuresHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.DeleteItem(r.Context(), listParam(r), chi.URLParam(r, "id"))
	h.respond(w, lists, err, "Failed to delete item")
}

func (h *AdventuresHandler) SetDateCountHandler(w http.ResponseWriter, r *http.Request) {
	var req CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	lists, err := h.service.SetDateCount(r.Context(), req.Count)
	h.respond(w, lists, err, "Failed to update date count")
}

func (h *AdventuresHandler) respond(w http.ResponseWriter, lists ListData, err error, failure string) {
	switch {
	case err == nil:
		response.Success(w, lists, "successfully")
	case errors.Is(err, ErrEmptyText):
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"text": "text is required",
		})
	case errors.Is(err, ErrUnknownList), errors.Is(err, ErrDuplicateID):
		response.Error(w, http.StatusBadRequest, failure, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, failure, err.Error())
	}
}

func listParam(r *http.Request) ListName {
	return ListName(chi.URLParam(r, "list"))
}
