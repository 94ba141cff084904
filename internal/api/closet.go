package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/wardrobe"
)

// ClosetHandler handles closet endpoints.
type ClosetHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

type createClosetItemRequest struct {
	Image    string  `json:"image"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Season   string  `json:"season"`
	Price    float64 `json:"price"`
	Color    string  `json:"color"`
}

// List handles GET /api/closet.
func (h *ClosetHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Wardrobe.ClosetItems()
	if items == nil {
		items = []model.ClosetItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/closet.
func (h *ClosetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClosetItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Wardrobe.AddToCloset(r.Context(), model.ClosetItem{
		Image:    req.Image,
		Name:     req.Name,
		Category: req.Category,
		Season:   req.Season,
		Price:    req.Price,
		Color:    req.Color,
	})
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /api/closet/{id}. Removing an unknown id succeeds.
func (h *ClosetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Wardrobe.RemoveFromCloset(r.Context(), r.PathValue("id")); err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item removed"})
}

// Worn handles POST /api/closet/{id}/worn.
func (h *ClosetHandler) Worn(w http.ResponseWriter, r *http.Request) {
	if err := h.Wardrobe.IncrementWornCount(r.Context(), r.PathValue("id")); err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "wear logged"})
}

// Value handles GET /api/closet/value.
func (h *ClosetHandler) Value(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]float64{"total": h.Wardrobe.TotalValue()})
}
