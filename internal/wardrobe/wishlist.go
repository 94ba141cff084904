package wardrobe

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/noircloset/noir/internal/model"
)

// WishlistItems returns a copy of the wishlist.
func (w *Wardrobe) WishlistItems() []model.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.wishlist)
}

// AddToWishlist appends an entry. Name and a valid season are required.
func (w *Wardrobe) AddToWishlist(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error) {
	if item.Name == "" {
		return model.WishlistItem{}, ErrInvalidItem
	}
	if !model.ValidSeason(item.Season) {
		item.Season = model.SeasonYearRound
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	updated := append(slices.Clone(w.wishlist), item)
	if err := w.persistJSON(ctx, keyWishlist, updated); err != nil {
		return model.WishlistItem{}, err
	}
	w.wishlist = updated
	w.signal()
	return item, nil
}

// UpdateWishlist replaces the whole wishlist, used for reordering, toggling
// purchases and deletions in one call.
func (w *Wardrobe) UpdateWishlist(ctx context.Context, items []model.WishlistItem) error {
	if items == nil {
		items = []model.WishlistItem{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.persistJSON(ctx, keyWishlist, items); err != nil {
		return err
	}
	w.wishlist = slices.Clone(items)
	w.signal()
	return nil
}
