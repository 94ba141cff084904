package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/wardrobe"
)

// PlannerHandler handles weekly outfit planner endpoints.
type PlannerHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

type updateDayRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// Get handles GET /api/planner.
func (h *PlannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Wardrobe.PlannerEntries())
}

// UpdateDay handles PUT /api/planner/{day}: replaces the day's outfit.
func (h *PlannerHandler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var req updateDayRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Wardrobe.UpdatePlanner(r.Context(), r.PathValue("day"), req.ItemIDs); err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, h.Wardrobe.PlannerEntries())
}

// Outfit handles GET /api/planner/{day}/outfit: the day's plan resolved to
// full closet items, with deleted items dropped.
func (h *PlannerHandler) Outfit(w http.ResponseWriter, r *http.Request) {
	items, err := h.Wardrobe.OutfitForDay(r.PathValue("day"))
	if err != nil {
		domainError(w, err)
		return
	}
	if items == nil {
		items = []model.ClosetItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}
