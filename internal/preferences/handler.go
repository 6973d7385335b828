package preferences

import (
	"encoding/json"
	"net/http"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type PreferencesHandler struct {
	service *Service
}

func NewPreferencesHandler(service *Service) PreferencesHandler {
	return PreferencesHandler{service: service}
}

// GetPreferencesHandler godoc
// @Summary      Audio and display settings
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=Preferences}
// @Router       /api/preferences [get]
func (h *PreferencesHandler) GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load preferences", err.Error())
		return
	}
	response.Success(w, p, "successfully")
}

func (h *PreferencesHandler) UpdatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var req Patch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	p, err := h.service.Update(r.Context(), req)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save preferences", err.Error())
		return
	}
	response.Success(w, p, "successfully")
}

func (h *PreferencesHandler) ToggleVolumeVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ToggleVolumeVisibility(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save preferences", err.Error())
		return
	}
	response.Success(w, p, "successfully")
}
