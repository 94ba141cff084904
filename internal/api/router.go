package api

import (
	"net/http"

	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/session"
	"github.com/noircloset/noir/internal/wardrobe"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(store *kv.Store, w *wardrobe.Wardrobe, sess *session.Session, stylist Stylist, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: store, Wardrobe: w, JWTSecret: jwtSecret}
	closetHandler := &ClosetHandler{Wardrobe: w}
	thriftHandler := &ThriftHandler{Wardrobe: w}
	wishlistHandler := &WishlistHandler{Wardrobe: w}
	plannerHandler := &PlannerHandler{Wardrobe: w}
	profileHandler := &ProfileHandler{Wardrobe: w}
	imagesHandler := &ImagesHandler{}
	stylistHandler := &StylistHandler{Stylist: stylist, Wardrobe: w, Session: sess}
	draftsHandler := &DraftsHandler{Wardrobe: w, Session: sess}

	authMW := AuthMiddleware(jwtSecret)
	protected := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, authMW(handler))
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	protected("PUT /api/auth/password", authHandler.ChangePassword)

	// Closet.
	protected("GET /api/closet", closetHandler.List)
	protected("POST /api/closet", closetHandler.Create)
	protected("GET /api/closet/value", closetHandler.Value)
	protected("DELETE /api/closet/{id}", closetHandler.Delete)
	protected("POST /api/closet/{id}/worn", closetHandler.Worn)

	// Thrift marketplace.
	protected("GET /api/thrift", thriftHandler.List)
	protected("POST /api/thrift", thriftHandler.Create)
	protected("GET /api/thrift/draft/{id}", thriftHandler.Draft)
	protected("DELETE /api/thrift/{id}", thriftHandler.Delete)
	protected("POST /api/thrift/{id}/sold", thriftHandler.Sold)
	protected("GET /api/earnings", thriftHandler.Earnings)

	// Wishlist.
	protected("GET /api/wishlist", wishlistHandler.List)
	protected("POST /api/wishlist", wishlistHandler.Create)
	protected("PUT /api/wishlist", wishlistHandler.Replace)
	protected("GET /api/shop-link", wishlistHandler.ShopLink)

	// Weekly planner.
	protected("GET /api/planner", plannerHandler.Get)
	protected("PUT /api/planner/{day}", plannerHandler.UpdateDay)
	protected("GET /api/planner/{day}/outfit", plannerHandler.Outfit)

	// Profile.
	protected("GET /api/profile", profileHandler.Get)
	protected("PUT /api/profile", profileHandler.Update)

	// Image upload.
	protected("POST /api/images", imagesHandler.Upload)

	// AI stylist.
	protected("POST /api/stylist/autotag", stylistHandler.AutoTag)
	protected("POST /api/stylist/outfits", stylistHandler.Outfits)
	protected("POST /api/stylist/bodyfit", stylistHandler.BodyFit)
	protected("POST /api/stylist/chat", stylistHandler.Chat)
	protected("DELETE /api/stylist/chat", stylistHandler.ResetChat)
	protected("POST /api/stylist/packing", stylistHandler.Packing)
	protected("POST /api/stylist/inspiration", stylistHandler.Inspiration)
	protected("POST /api/stylist/rate", stylistHandler.Rate)

	// Flow drafts.
	protected("GET /api/drafts/style", draftsHandler.Style)
	protected("PUT /api/drafts/style", draftsHandler.SetStyle)
	protected("GET /api/drafts/travel", draftsHandler.Travel)
	protected("PUT /api/drafts/travel", draftsHandler.SetTravel)
	protected("POST /api/drafts/travel/packed", draftsHandler.SetPacked)
	protected("GET /api/drafts/bodyfit", draftsHandler.BodyFit)
	protected("PUT /api/drafts/bodyfit", draftsHandler.SetBodyFit)
	protected("GET /api/drafts/chat", draftsHandler.Chat)

	return mux
}
