package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taiwoajasa245/memories-api/pkg/response"
)

type AuthHandler struct {
	service *AuthService
}

func NewHandler(service *AuthService) AuthHandler {
	return AuthHandler{service: service}
}

// LoginHandler godoc
// @Summary      Exchange the site password for a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  response.APIResponse{data=LoginResponse}
// @Failure      401      {object}  response.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	if req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"password": "Password is required",
		})
		return
	}

	resp, err := h.service.Login(req.Name, req.Password)
	switch {
	case err == nil:
		response.Success(w, resp, "Ok")
	case errors.Is(err, ErrDisabled):
		response.Error(w, http.StatusNotFound, "Login is not enabled", err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Failed to log in", err.Error())
	}
}

// VerifyHandler reports whether the caller's token is still good.
func (h *AuthHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	if !h.service.Enabled() {
		response.Success(w, SessionResponse{Enabled: false}, "Ok")
		return
	}

	claims, ok := h.service.claimsFrom(w, r)
	if !ok {
		return
	}
	session := SessionResponse{Enabled: true, Name: claims.Name}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = &claims.ExpiresAt.Time
	}
	response.Success(w, session, "Ok")
}
