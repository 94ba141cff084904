package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/wardrobe"
)

// ThriftHandler handles resale marketplace endpoints.
type ThriftHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

type createListingRequest struct {
	Image       string  `json:"image"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Condition   string  `json:"condition"`
	University  string  `json:"university"`
	Description string  `json:"description"`
	Collection  string  `json:"collection"`
}

type soldRequest struct {
	Price float64 `json:"price"`
}

// List handles GET /api/thrift. Optional ?university= and ?collection=
// query parameters narrow the result to one campus or curated collection.
func (h *ThriftHandler) List(w http.ResponseWriter, r *http.Request) {
	university := r.URL.Query().Get("university")
	collection := r.URL.Query().Get("collection")

	items := h.Wardrobe.ThriftItems()
	if university != "" || collection != "" {
		filtered := items[:0]
		for _, item := range items {
			if university != "" && item.University != university {
				continue
			}
			if collection != "" && item.Collection != collection {
				continue
			}
			filtered = append(filtered, item)
		}
		items = filtered
	}
	if items == nil {
		items = []model.ThriftItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/thrift.
func (h *ThriftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Wardrobe.AddThriftItem(r.Context(), model.ThriftItem{
		Image:       req.Image,
		Name:        req.Name,
		Price:       req.Price,
		Size:        req.Size,
		Condition:   req.Condition,
		University:  req.University,
		Description: req.Description,
		Collection:  req.Collection,
	})
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /api/thrift/{id}.
func (h *ThriftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Wardrobe.RemoveThriftItem(r.Context(), r.PathValue("id")); err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "listing removed"})
}

// Sold handles POST /api/thrift/{id}/sold. Removes the listing and credits
// the sale price to earnings in one step.
func (h *ThriftHandler) Sold(w http.ResponseWriter, r *http.Request) {
	var req soldRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Wardrobe.MarkAsSold(r.Context(), r.PathValue("id"), req.Price); err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]float64{"earnings": h.Wardrobe.Earnings()})
}

// Draft handles GET /api/thrift/draft/{id}: a pre-filled listing for a
// closet item, with the suggested resale price and default description.
func (h *ThriftHandler) Draft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Wardrobe.ListingFromCloset(r.PathValue("id"))
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, draft)
}

// Earnings handles GET /api/earnings.
func (h *ThriftHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]float64{"earnings": h.Wardrobe.Earnings()})
}
