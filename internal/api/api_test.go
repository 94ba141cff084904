package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/noircloset/noir/internal/auth"
	"github.com/noircloset/noir/internal/gateway"
	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/model"
	"github.com/noircloset/noir/internal/session"
	"github.com/noircloset/noir/internal/wardrobe"
)

const testJWTSecret = "test-secret"

// fakeStylist returns canned results, or err when set.
type fakeStylist struct {
	err error
}

func (f *fakeStylist) AutoTag(ctx context.Context, image string) (*gateway.AutoTag, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.AutoTag{
		Name: "Silk Midi Skirt", Category: model.CategoryBottom,
		Season: model.SeasonSummer, Color: "Ivory", EstimatedPrice: 80,
	}, nil
}

func (f *fakeStylist) AnalyzeCloset(ctx context.Context, images []string, req gateway.StyleRequest) (*gateway.ClosetAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.ClosetAnalysis{Outfits: []gateway.Outfit{{
		CreativeTitle: "Garden Party",
		Items:         []gateway.HybridItem{{Name: "Tea Dress", Category: model.CategoryDress, IsOwned: true}},
	}}}, nil
}

func (f *fakeStylist) AnalyzeBodyFit(ctx context.Context, image, description string) (*gateway.BodyFitAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.BodyFitAnalysis{BodyShape: "Hourglass", Analysis: "Balanced proportions."}, nil
}

func (f *fakeStylist) Chat(ctx context.Context, history []gateway.Message, message string, opts gateway.ChatOptions) (*gateway.ChatReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.ChatReply{Text: "Consider the Lady Dior, darling."}, nil
}

func (f *fakeStylist) PackingList(ctx context.Context, req gateway.TravelRequest) (*gateway.PackingList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.PackingList{
		DestinationVibe: "Parisian chic",
		OutfitsPerDay:   []gateway.DayOutfit{{Day: 1, Activity: "Museum stroll"}},
	}, nil
}

func (f *fakeStylist) TripInspiration(ctx context.Context, req gateway.TravelRequest) (*gateway.PackingList, error) {
	return f.PackingList(ctx, req)
}

func (f *fakeStylist) RateOutfit(ctx context.Context, images []string) (*gateway.OutfitRating, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.OutfitRating{Score: 9, Comment: "Adorable!", IsComplete: true}, nil
}

func setupTestServer(t *testing.T) (*httptest.Server, string, *fakeStylist) {
	t.Helper()

	store := kv.NewTestStore(t)
	ctx := context.Background()

	ward, err := wardrobe.New(ctx, store)
	if err != nil {
		t.Fatalf("wardrobe.New: %v", err)
	}

	if err := auth.SetPassword(ctx, store, "password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	stylist := &fakeStylist{}
	router := NewRouter(store, ward, session.New(), stylist, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	body, _ := json.Marshal(map[string]string{"password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token, stylist
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doJSON(t *testing.T, req *http.Request, wantStatus int, target any) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d", req.Method, req.URL.Path, resp.StatusCode, wantStatus)
	}
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func TestLoginEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedRequest(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/closet")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClosetAPIFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	// Add an item.
	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Tea Dress",
		"category": model.CategoryDress, "season": model.SeasonSummer, "price": 120.0,
	})
	var item model.ClosetItem
	doJSON(t, req, http.StatusCreated, &item)
	if item.ID == "" {
		t.Fatal("created item has no id")
	}

	// List.
	req, _ = authRequest("GET", server.URL+"/api/closet", token, nil)
	var items []model.ClosetItem
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	// Log a wear.
	req, _ = authRequest("POST", server.URL+"/api/closet/"+item.ID+"/worn", token, nil)
	doJSON(t, req, http.StatusOK, nil)

	req, _ = authRequest("GET", server.URL+"/api/closet", token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if items[0].TimesWorn != 1 {
		t.Errorf("TimesWorn = %d, want 1", items[0].TimesWorn)
	}

	// Total value.
	req, _ = authRequest("GET", server.URL+"/api/closet/value", token, nil)
	var value map[string]float64
	doJSON(t, req, http.StatusOK, &value)
	if value["total"] != 120 {
		t.Errorf("total = %v, want 120", value["total"])
	}

	// Delete, then delete again: both succeed.
	req, _ = authRequest("DELETE", server.URL+"/api/closet/"+item.ID, token, nil)
	doJSON(t, req, http.StatusOK, nil)
	req, _ = authRequest("DELETE", server.URL+"/api/closet/"+item.ID, token, nil)
	doJSON(t, req, http.StatusOK, nil)

	req, _ = authRequest("GET", server.URL+"/api/closet", token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 0 {
		t.Errorf("expected empty closet, got %d items", len(items))
	}
}

func TestClosetValidation(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "", "name": "Ghost", "price": 10.0,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing image, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestThriftSellFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/thrift", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Wool Blazer",
		"price": 45.0, "size": "S",
	})
	var listing model.ThriftItem
	doJSON(t, req, http.StatusCreated, &listing)
	if listing.Condition != model.ConditionLikeNew {
		t.Errorf("default condition = %q", listing.Condition)
	}

	// Sell it.
	req, _ = authRequest("POST", server.URL+"/api/thrift/"+listing.ID+"/sold", token, map[string]any{"price": 45.0})
	var sold map[string]float64
	doJSON(t, req, http.StatusOK, &sold)
	if sold["earnings"] != 45 {
		t.Errorf("earnings = %v, want 45", sold["earnings"])
	}

	// Listing is gone; selling again is a 404.
	req, _ = authRequest("POST", server.URL+"/api/thrift/"+listing.ID+"/sold", token, map[string]any{"price": 45.0})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for sold listing, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/earnings", token, nil)
	var earnings map[string]float64
	doJSON(t, req, http.StatusOK, &earnings)
	if earnings["earnings"] != 45 {
		t.Errorf("earnings = %v, want 45", earnings["earnings"])
	}
}

func TestThriftDraftFromCloset(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Ballet Flats",
		"category": model.CategoryShoes, "season": model.SeasonSpring, "price": 40.0,
	})
	var item model.ClosetItem
	doJSON(t, req, http.StatusCreated, &item)

	req, _ = authRequest("GET", server.URL+"/api/thrift/draft/"+item.ID, token, nil)
	var draft model.ThriftItem
	doJSON(t, req, http.StatusOK, &draft)
	if draft.Price != 28 {
		t.Errorf("suggested price = %v, want 28", draft.Price)
	}
	if draft.Size != "7" {
		t.Errorf("size = %q, want shoe size from profile", draft.Size)
	}
}

func TestWishlistAPIFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	// First run seeds the starter wishlist.
	req, _ := authRequest("GET", server.URL+"/api/wishlist", token, nil)
	var items []model.WishlistItem
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 4 {
		t.Fatalf("expected 4 seeded wishes, got %d", len(items))
	}

	req, _ = authRequest("POST", server.URL+"/api/wishlist", token, map[string]string{
		"name": "Pearl Hair Clip", "season": model.SeasonYearRound,
	})
	doJSON(t, req, http.StatusCreated, nil)

	// Replace with a single purchased entry.
	req, _ = authRequest("PUT", server.URL+"/api/wishlist", token, []model.WishlistItem{
		{ID: "def-1", Name: "Camel Trench Coat", Season: model.SeasonAutumn, IsPurchased: true},
	})
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 1 || !items[0].IsPurchased {
		t.Errorf("unexpected wishlist after replace: %+v", items)
	}
}

func TestPlannerAPIFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Tea Dress",
		"category": model.CategoryDress, "season": model.SeasonSummer, "price": 120.0,
	})
	var item model.ClosetItem
	doJSON(t, req, http.StatusCreated, &item)

	req, _ = authRequest("PUT", server.URL+"/api/planner/"+model.Friday, token, map[string]any{
		"itemIds": []string{item.ID},
	})
	doJSON(t, req, http.StatusOK, nil)

	req, _ = authRequest("GET", server.URL+"/api/planner/"+model.Friday+"/outfit", token, nil)
	var outfit []model.ClosetItem
	doJSON(t, req, http.StatusOK, &outfit)
	if len(outfit) != 1 || outfit[0].ID != item.ID {
		t.Errorf("unexpected outfit: %+v", outfit)
	}

	// Unknown day rejected.
	req, _ = authRequest("PUT", server.URL+"/api/planner/Funday", token, map[string]any{"itemIds": []string{}})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown day, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProfileAPIFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/profile", token, nil)
	var profile model.UserProfile
	doJSON(t, req, http.StatusOK, &profile)
	if profile.Name != "Cherie" {
		t.Errorf("default name = %q", profile.Name)
	}

	profile.Name = "Margaux"
	profile.Sizes.Shoe = "8"
	req, _ = authRequest("PUT", server.URL+"/api/profile", token, profile)
	doJSON(t, req, http.StatusOK, &profile)
	if profile.Name != "Margaux" || profile.Sizes.Shoe != "8" {
		t.Errorf("unexpected profile after update: %+v", profile)
	}
}

func TestShopLink(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/shop-link?q=silk+wrap+dress", token, nil)
	var link map[string]string
	doJSON(t, req, http.StatusOK, &link)
	want := "https://www.google.com/search?q=silk+wrap+dress&tbm=shop"
	if link["url"] != want {
		t.Errorf("url = %q, want %q", link["url"], want)
	}
}

func TestStylistOutfitsFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Tea Dress",
		"category": model.CategoryDress, "season": model.SeasonSummer, "price": 120.0,
	})
	var item model.ClosetItem
	doJSON(t, req, http.StatusCreated, &item)

	req, _ = authRequest("POST", server.URL+"/api/stylist/outfits", token, map[string]any{
		"selectedIds": []string{item.ID}, "context": "dinner date", "vibe": gateway.VibeCoquetteCute,
	})
	var analysis gateway.ClosetAnalysis
	doJSON(t, req, http.StatusOK, &analysis)
	if len(analysis.Outfits) != 1 {
		t.Fatalf("expected 1 outfit, got %d", len(analysis.Outfits))
	}

	// Result lands in the style draft.
	req, _ = authRequest("GET", server.URL+"/api/drafts/style", token, nil)
	var draft session.StyleDraft
	doJSON(t, req, http.StatusOK, &draft)
	if draft.Analysis == nil || draft.Analysis.Outfits[0].CreativeTitle != "Garden Party" {
		t.Errorf("style draft not saved: %+v", draft)
	}
	if len(draft.SelectedIDs) != 1 || draft.SelectedIDs[0] != item.ID {
		t.Errorf("draft SelectedIDs = %v", draft.SelectedIDs)
	}

	// Deleting the item prunes the selection on the next draft read.
	req, _ = authRequest("DELETE", server.URL+"/api/closet/"+item.ID, token, nil)
	doJSON(t, req, http.StatusOK, nil)
	req, _ = authRequest("GET", server.URL+"/api/drafts/style", token, nil)
	doJSON(t, req, http.StatusOK, &draft)
	if len(draft.SelectedIDs) != 0 {
		t.Errorf("SelectedIDs not pruned: %v", draft.SelectedIDs)
	}
}

func TestStylistOutfitsNoSelection(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/stylist/outfits", token, map[string]any{
		"selectedIds": []string{}, "vibe": gateway.VibeSophisticated,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 with no selection, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChatFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	// Thread starts with the greeting.
	req, _ := authRequest("GET", server.URL+"/api/drafts/chat", token, nil)
	var thread []gateway.Message
	doJSON(t, req, http.StatusOK, &thread)
	if len(thread) != 1 || thread[0].Text != gateway.Greeting {
		t.Fatalf("unexpected initial thread: %+v", thread)
	}

	req, _ = authRequest("POST", server.URL+"/api/stylist/chat", token, map[string]any{
		"message": "Tell me about investment bags.", "budgetLevel": 1,
	})
	var reply gateway.ChatReply
	doJSON(t, req, http.StatusOK, &reply)
	if reply.Text == "" {
		t.Fatal("empty chat reply")
	}

	req, _ = authRequest("GET", server.URL+"/api/drafts/chat", token, nil)
	doJSON(t, req, http.StatusOK, &thread)
	if len(thread) != 3 {
		t.Fatalf("expected 3 messages after one turn, got %d", len(thread))
	}

	// Reset restores the greeting.
	req, _ = authRequest("DELETE", server.URL+"/api/stylist/chat", token, nil)
	doJSON(t, req, http.StatusOK, &thread)
	if len(thread) != 1 {
		t.Errorf("expected 1 message after reset, got %d", len(thread))
	}
}

func TestPackingFlowSavesDraft(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/closet", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA", "name": "Trench Coat",
		"category": model.CategoryOuterwear, "season": model.SeasonAutumn, "price": 200.0,
	})
	var item model.ClosetItem
	doJSON(t, req, http.StatusCreated, &item)

	req, _ = authRequest("POST", server.URL+"/api/stylist/packing", token, map[string]any{
		"destination": "Paris", "days": 4, "tripType": "City Break",
		"vibe": gateway.VibeSophisticated, "selectedIds": []string{item.ID},
	})
	var list gateway.PackingList
	doJSON(t, req, http.StatusOK, &list)
	if len(list.OutfitsPerDay) == 0 {
		t.Fatal("empty packing list")
	}

	req, _ = authRequest("GET", server.URL+"/api/drafts/travel", token, nil)
	var draft session.TravelDraft
	doJSON(t, req, http.StatusOK, &draft)
	if draft.Destination != "Paris" || draft.Mode != session.ModeCloset || draft.List == nil {
		t.Errorf("travel draft not saved: %+v", draft)
	}

	// Check off a piece.
	req, _ = authRequest("POST", server.URL+"/api/drafts/travel/packed", token, map[string]any{
		"name": "Trench Coat", "packed": true,
	})
	doJSON(t, req, http.StatusOK, &draft)
	if !draft.Packed["Trench Coat"] {
		t.Errorf("packed map = %v", draft.Packed)
	}
}

func TestInspirationFlow(t *testing.T) {
	server, token, _ := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/stylist/inspiration", token, map[string]any{
		"destination": "Lake Como", "days": 3, "tripType": "Romantic Getaway",
	})
	var list gateway.PackingList
	doJSON(t, req, http.StatusOK, &list)

	req, _ = authRequest("GET", server.URL+"/api/drafts/travel", token, nil)
	var draft session.TravelDraft
	doJSON(t, req, http.StatusOK, &draft)
	if draft.Mode != session.ModeInspiration {
		t.Errorf("Mode = %q, want %q", draft.Mode, session.ModeInspiration)
	}
}

func TestStylistFailureIsRetryable(t *testing.T) {
	server, token, stylist := setupTestServer(t)
	stylist.err = gateway.ErrBadResponse

	req, _ := authRequest("POST", server.URL+"/api/stylist/autotag", token, map[string]any{
		"image": "data:image/jpeg;base64,AAAA",
	})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["retryable"] != true {
		t.Errorf("response not marked retryable: %v", body)
	}
}

func TestThriftListFilters(t *testing.T) {
	server, token, _ := setupTestServer(t)

	listings := []map[string]any{
		{"image": "data:image/jpeg;base64,AAAA", "name": "Wool Blazer", "price": 45.0, "size": "S",
			"university": "Wellesley", "collection": model.CollectionOldMoney},
		{"image": "data:image/jpeg;base64,AAAA", "name": "Tulle Skirt", "price": 30.0, "size": "S",
			"university": "Wellesley", "collection": model.CollectionPrincessCore},
		{"image": "data:image/jpeg;base64,AAAA", "name": "Leather Jacket", "price": 60.0, "size": "M",
			"university": "NYU", "collection": model.CollectionDowntownDoll},
	}
	for _, listing := range listings {
		req, _ := authRequest("POST", server.URL+"/api/thrift", token, listing)
		doJSON(t, req, http.StatusCreated, nil)
	}

	var items []model.ThriftItem

	req, _ := authRequest("GET", server.URL+"/api/thrift?university=Wellesley", token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 2 {
		t.Errorf("university filter: got %d listings, want 2", len(items))
	}

	req, _ = authRequest("GET", server.URL+"/api/thrift?collection="+url.QueryEscape(model.CollectionPrincessCore), token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 1 || items[0].Name != "Tulle Skirt" {
		t.Errorf("collection filter: got %+v", items)
	}

	req, _ = authRequest("GET", server.URL+"/api/thrift?university=NYU&collection="+url.QueryEscape(model.CollectionOldMoney), token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 0 {
		t.Errorf("combined filter: got %d listings, want 0", len(items))
	}

	// No filter returns everything.
	req, _ = authRequest("GET", server.URL+"/api/thrift", token, nil)
	doJSON(t, req, http.StatusOK, &items)
	if len(items) != 3 {
		t.Errorf("unfiltered: got %d listings, want 3", len(items))
	}
}
