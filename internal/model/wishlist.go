package model

// WishlistItem represents a seasonally-tagged want-list entry, independent of
// ownership.
type WishlistItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Season      string `json:"season"`
	IsPurchased bool   `json:"isPurchased"`
}

// DefaultWishlist returns the seed set created on first run when no wishlist
// has ever been persisted.
func DefaultWishlist() []WishlistItem {
	return []WishlistItem{
		{ID: "def-1", Name: "Camel Trench Coat", Season: SeasonAutumn},
		{ID: "def-2", Name: "Cashmere Turtleneck", Season: SeasonWinter},
		{ID: "def-3", Name: "Linen Wide Leg Trousers", Season: SeasonSummer},
		{ID: "def-4", Name: "Structured Leather Tote", Season: SeasonYearRound},
	}
}
