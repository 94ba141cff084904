package api

import (
	"context"
	"net/http"

	"github.com/noircloset/noir/internal/gateway"
	"github.com/noircloset/noir/internal/session"
	"github.com/noircloset/noir/internal/wardrobe"
)

// Stylist is the AI gateway surface the handlers depend on. Narrow so tests
// can substitute a fake without network access.
type Stylist interface {
	AutoTag(ctx context.Context, image string) (*gateway.AutoTag, error)
	AnalyzeCloset(ctx context.Context, images []string, req gateway.StyleRequest) (*gateway.ClosetAnalysis, error)
	AnalyzeBodyFit(ctx context.Context, image, description string) (*gateway.BodyFitAnalysis, error)
	Chat(ctx context.Context, history []gateway.Message, message string, opts gateway.ChatOptions) (*gateway.ChatReply, error)
	PackingList(ctx context.Context, req gateway.TravelRequest) (*gateway.PackingList, error)
	TripInspiration(ctx context.Context, req gateway.TravelRequest) (*gateway.PackingList, error)
	RateOutfit(ctx context.Context, images []string) (*gateway.OutfitRating, error)
}

// StylistHandler handles the AI styling endpoints. Each successful call also
// updates the matching session draft so switching views keeps the result.
type StylistHandler struct {
	Stylist  Stylist
	Wardrobe *wardrobe.Wardrobe
	Session  *session.Session
}

type autoTagRequest struct {
	Image string `json:"image"`
}

type outfitsRequest struct {
	SelectedIDs []string `json:"selectedIds"`
	Context     string   `json:"context"`
	Height      string   `json:"height"`
	Vibe        string   `json:"vibe"`
}

type bodyFitRequest struct {
	Image       string `json:"image"`
	Description string `json:"description"`
}

type chatRequest struct {
	Message     string `json:"message"`
	BudgetLevel int    `json:"budgetLevel"`
	Age         string `json:"age"`
}

type travelStylistRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	TripType    string   `json:"tripType"`
	Vibe        string   `json:"vibe"`
	SelectedIDs []string `json:"selectedIds"`
}

type rateRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// AutoTag handles POST /api/stylist/autotag: extracts item details from a
// garment photo for the add-item form.
func (h *StylistHandler) AutoTag(w http.ResponseWriter, r *http.Request) {
	var req autoTagRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		jsonError(w, http.StatusBadRequest, "image required")
		return
	}

	tag, err := h.Stylist.AutoTag(r.Context(), req.Image)
	if err != nil {
		stylistError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, tag)
}

// Outfits handles POST /api/stylist/outfits: generates three outfits from
// the selected closet items.
func (h *StylistHandler) Outfits(w http.ResponseWriter, r *http.Request) {
	var req outfitsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := h.Wardrobe.ItemsByID(req.SelectedIDs)
	if len(items) == 0 {
		jsonError(w, http.StatusBadRequest, "select at least one closet item")
		return
	}

	images := make([]string, len(items))
	ids := make([]string, len(items))
	for i, item := range items {
		images[i] = item.Image
		ids[i] = item.ID
	}

	analysis, err := h.Stylist.AnalyzeCloset(r.Context(), images, gateway.StyleRequest{
		Context: req.Context,
		Height:  req.Height,
		Vibe:    req.Vibe,
	})
	if err != nil {
		stylistError(w, err)
		return
	}

	h.Session.SetStyle(session.StyleDraft{
		SelectedIDs: ids,
		Context:     req.Context,
		Height:      req.Height,
		Vibe:        req.Vibe,
		Analysis:    analysis,
	})
	jsonResponse(w, http.StatusOK, analysis)
}

// BodyFit handles POST /api/stylist/bodyfit.
func (h *StylistHandler) BodyFit(w http.ResponseWriter, r *http.Request) {
	var req bodyFitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" && req.Description == "" {
		jsonError(w, http.StatusBadRequest, "photo or description required")
		return
	}

	analysis, err := h.Stylist.AnalyzeBodyFit(r.Context(), req.Image, req.Description)
	if err != nil {
		stylistError(w, err)
		return
	}

	h.Session.SetBodyFit(session.BodyFitDraft{
		Image:       req.Image,
		Description: req.Description,
		Result:      analysis,
	})
	jsonResponse(w, http.StatusOK, analysis)
}

// Chat handles POST /api/stylist/chat: one more turn of the luxury
// investment conversation. The thread lives in the session.
func (h *StylistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		jsonError(w, http.StatusBadRequest, "message required")
		return
	}

	profile := h.Wardrobe.Profile()
	reply, err := h.Stylist.Chat(r.Context(), h.Session.Chat(), req.Message, gateway.ChatOptions{
		BudgetLevel: req.BudgetLevel,
		Age:         req.Age,
		Size:        profile.Sizes.Top,
	})
	if err != nil {
		stylistError(w, err)
		return
	}

	h.Session.AppendChat(
		gateway.Message{Role: gateway.RoleUser, Text: req.Message},
		gateway.Message{Role: gateway.RoleModel, Text: reply.Text, Recommendations: reply.Recommendations},
	)
	jsonResponse(w, http.StatusOK, reply)
}

// ResetChat handles DELETE /api/stylist/chat: restart the thread.
func (h *StylistHandler) ResetChat(w http.ResponseWriter, r *http.Request) {
	h.Session.ResetChat()
	jsonResponse(w, http.StatusOK, h.Session.Chat())
}

// Packing handles POST /api/stylist/packing: a day-by-day travel wardrobe
// from selected closet items.
func (h *StylistHandler) Packing(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTravel(w, r)
	if !ok {
		return
	}

	items := h.Wardrobe.ItemsByID(req.SelectedIDs)
	if len(items) == 0 {
		jsonError(w, http.StatusBadRequest, "select at least one closet item")
		return
	}

	pieces := make([]gateway.PackPiece, len(items))
	ids := make([]string, len(items))
	for i, item := range items {
		pieces[i] = gateway.PackPiece{Image: item.Image, Name: item.Name, Category: item.Category}
		ids[i] = item.ID
	}

	list, err := h.Stylist.PackingList(r.Context(), gateway.TravelRequest{
		Destination: req.Destination,
		Days:        req.Days,
		TripType:    req.TripType,
		Vibe:        req.Vibe,
		Items:       pieces,
	})
	if err != nil {
		stylistError(w, err)
		return
	}

	h.saveTravelDraft(req, ids, session.ModeCloset, list)
	jsonResponse(w, http.StatusOK, list)
}

// Inspiration handles POST /api/stylist/inspiration: a mood-board packing
// list with invented pieces instead of the user's wardrobe.
func (h *StylistHandler) Inspiration(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTravel(w, r)
	if !ok {
		return
	}

	list, err := h.Stylist.TripInspiration(r.Context(), gateway.TravelRequest{
		Destination: req.Destination,
		Days:        req.Days,
		TripType:    req.TripType,
		Vibe:        req.Vibe,
	})
	if err != nil {
		stylistError(w, err)
		return
	}

	h.saveTravelDraft(req, nil, session.ModeInspiration, list)
	jsonResponse(w, http.StatusOK, list)
}

// Rate handles POST /api/stylist/rate: scores an outfit built from closet
// items.
func (h *StylistHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := h.Wardrobe.ItemsByID(req.ItemIDs)
	if len(items) == 0 {
		jsonError(w, http.StatusBadRequest, "select at least one closet item")
		return
	}

	images := make([]string, len(items))
	for i, item := range items {
		images[i] = item.Image
	}

	rating, err := h.Stylist.RateOutfit(r.Context(), images)
	if err != nil {
		stylistError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, rating)
}

func (h *StylistHandler) decodeTravel(w http.ResponseWriter, r *http.Request) (travelStylistRequest, bool) {
	var req travelStylistRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Destination == "" {
		jsonError(w, http.StatusBadRequest, "destination required")
		return req, false
	}
	return req, true
}

func (h *StylistHandler) saveTravelDraft(req travelStylistRequest, ids []string, mode string, list *gateway.PackingList) {
	h.Session.SetTravel(session.TravelDraft{
		Destination: req.Destination,
		Days:        req.Days,
		TripType:    req.TripType,
		Vibe:        req.Vibe,
		Mode:        mode,
		SelectedIDs: ids,
		List:        list,
	})
}
