package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/wardrobe"
)

// ProfileHandler handles the singleton profile endpoints.
type ProfileHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Wardrobe.Profile())
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var profile model.UserProfile
	if err := decodeJSON(r, &profile); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Wardrobe.UpdateProfile(r.Context(), profile); err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, h.Wardrobe.Profile())
}
