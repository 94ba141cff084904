package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/session"
	"github.com/noircloset/noir/internal/wardrobe"
)

// DraftsHandler exposes the in-memory flow drafts so the client can restore
// state when switching views. Selections are pruned against the closet on
// every read.
type DraftsHandler struct {
	Wardrobe *wardrobe.Wardrobe
	Session  *session.Session
}

type packedRequest struct {
	Name   string `json:"name"`
	Packed bool   `json:"packed"`
}

// Style handles GET /api/drafts/style.
func (h *DraftsHandler) Style(w http.ResponseWriter, r *http.Request) {
	h.Session.PruneSelections(h.Wardrobe.HasItem)
	jsonResponse(w, http.StatusOK, h.Session.Style())
}

// SetStyle handles PUT /api/drafts/style.
func (h *DraftsHandler) SetStyle(w http.ResponseWriter, r *http.Request) {
	var draft session.StyleDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.Session.SetStyle(draft)
	jsonResponse(w, http.StatusOK, h.Session.Style())
}

// Travel handles GET /api/drafts/travel.
func (h *DraftsHandler) Travel(w http.ResponseWriter, r *http.Request) {
	h.Session.PruneSelections(h.Wardrobe.HasItem)
	jsonResponse(w, http.StatusOK, h.Session.Travel())
}

// SetTravel handles PUT /api/drafts/travel.
func (h *DraftsHandler) SetTravel(w http.ResponseWriter, r *http.Request) {
	var draft session.TravelDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.Session.SetTravel(draft)
	jsonResponse(w, http.StatusOK, h.Session.Travel())
}

// SetPacked handles POST /api/drafts/travel/packed: toggles one checkbox on
// the packing list.
func (h *DraftsHandler) SetPacked(w http.ResponseWriter, r *http.Request) {
	var req packedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	h.Session.SetPacked(req.Name, req.Packed)
	jsonResponse(w, http.StatusOK, h.Session.Travel())
}

// BodyFit handles GET /api/drafts/bodyfit.
func (h *DraftsHandler) BodyFit(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Session.BodyFit())
}

// SetBodyFit handles PUT /api/drafts/bodyfit.
func (h *DraftsHandler) SetBodyFit(w http.ResponseWriter, r *http.Request) {
	var draft session.BodyFitDraft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.Session.SetBodyFit(draft)
	jsonResponse(w, http.StatusOK, h.Session.BodyFit())
}

// Chat handles GET /api/drafts/chat: the current chat thread.
func (h *DraftsHandler) Chat(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Session.Chat())
}
