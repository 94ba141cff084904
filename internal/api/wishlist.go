package api

import (
	"net/http"
	"net/url"

	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/wardrobe"
)

// WishlistHandler handles wishlist endpoints.
type WishlistHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

type createWishRequest struct {
	Name   string `json:"name"`
	Season string `json:"season"`
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.Wardrobe.WishlistItems()
	if items == nil {
		items = []model.WishlistItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/wishlist.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWishRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Wardrobe.AddToWishlist(r.Context(), model.WishlistItem{
		Name:   req.Name,
		Season: req.Season,
	})
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Replace handles PUT /api/wishlist: full-list replacement, used for
// reordering and bulk removal.
func (h *WishlistHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var items []model.WishlistItem
	if err := decodeJSON(r, &items); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Wardrobe.UpdateWishlist(r.Context(), items); err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, h.Wardrobe.WishlistItems())
}

// ShopLink handles GET /api/shop-link?q=...: builds the shopping search URL
// the client opens for a wishlist item or stylist pick.
func (h *WishlistHandler) ShopLink(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, http.StatusBadRequest, "q required")
		return
	}

	link := "https://www.google.com/search?q=" + url.QueryEscape(query) + "&tbm=shop"
	jsonResponse(w, http.StatusOK, map[string]string{"url": link})
}
