package api

import (
	"log/slog"
	"net/http"

	"github.com/noircloset/noir/internal/auth"
	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/wardrobe"
)

// AuthHandler handles the single-user login endpoints.
type AuthHandler struct {
	Store     *kv.Store
	Wardrobe  *wardrobe.Wardrobe
	JWTSecret string
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login handles POST /api/auth/login. There is one account, so only the
// password is checked; the token carries the profile name.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Password == "" {
		jsonError(w, http.StatusBadRequest, "password required")
		return
	}

	if err := auth.VerifyPassword(r.Context(), h.Store, req.Password); err != nil {
		slog.Warn("login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	name := h.Wardrobe.Profile().Name
	token, err := auth.GenerateToken(h.JWTSecret, name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "name", name)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Name: name})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		jsonError(w, http.StatusBadRequest, "current and new password required")
		return
	}

	if err := auth.VerifyPassword(r.Context(), h.Store, req.CurrentPassword); err != nil {
		jsonError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	if err := auth.SetPassword(r.Context(), h.Store, req.NewPassword); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	slog.Info("password changed")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
