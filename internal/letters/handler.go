package letters

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type LettersHandler struct {
	service *Service
}

func NewLettersHandler(service *Service) LettersHandler {
	return LettersHandler{service: service}
}

// GetLettersHandler godoc
// @Summary      Opened and sealed letters
// @Description  Letters whose reveal date has arrived are opened before listing.
// @Tags         letters
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=Board}
// @Failure      500  {object}  response.APIResponse
// @Router       /api/letters [get]
func (h *LettersHandler) GetLettersHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load letters", err.Error())
		return
	}
	response.Success(w, board, "successfully")
}

// CreateLetterHandler godoc
// @Summary      Write a letter
// @Tags         letters
// @Accept       json
// @Produce      json
// @Param        request  body      LetterRequest  true  "Letter"
// @Success      200      {object}  response.APIResponse{data=Board}
// @Failure      400      {object}  response.APIResponse
// @Router       /api/letters [post]
func (h *LettersHandler) CreateLetterHandler(w http.ResponseWriter, r *http.Request) {
	var req LetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	letters, _, err := h.service.Create(r.Context(), req)
	h.respond(w, letters, err, "Failed to write letter")
}

func (h *LettersHandler) ReplaceLettersHandler(w http.ResponseWriter, r *http.Request) {
	var req []Letter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	letters, err := h.service.Replace(r.Context(), req)
	h.respond(w, letters, err, "Failed to save letters")
}

func (h *LettersHandler) UpdateLetterHandler(w http.ResponseWriter, r *http.Request) {
	var req LetterPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	letters, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	h.respond(w, letters, err, "Failed to update letter")
}

func (h *LettersHandler) RevealLetterHandler(w http.ResponseWriter, r *http.Request) {
	letters, err := h.service.RevealNow(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, letters, err, "Failed to reveal letter")
}

func (h *LettersHandler) DeleteLetterHandler(w http.ResponseWriter, r *http.Request) {
	letters, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, letters, err, "Failed to delete letter")
}

func (h *LettersHandler) respond(w http.ResponseWriter, letters []Letter, err error, failure string) {
	switch {
	case err == nil:
		response.Success(w, Arrange(letters), "successfully")
	case errors.Is(err, ErrUnknownParticipant),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrRevealDateRequired),
		errors.Is(err, ErrDuplicateID),
		errors.Is(err, ErrMissingID):
		response.Error(w, http.StatusBadRequest, failure, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, failure, err.Error())
	}
}
