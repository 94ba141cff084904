package wardrobe

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/noircloset/noir/internal/model"
)

// ClosetItems returns a copy of the closet collection.
func (w *Wardrobe) ClosetItems() []model.ClosetItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.closet)
}

// AddToCloset validates and adds an item. Image, name and a positive price
// are required; the wear counter always starts at zero regardless of input.
// Returns the stored item, with a generated id if none was supplied.
func (w *Wardrobe) AddToCloset(ctx context.Context, item model.ClosetItem) (model.ClosetItem, error) {
	if item.Image == "" || item.Name == "" || item.Price <= 0 {
		return model.ClosetItem{}, ErrInvalidItem
	}
	if !model.ValidCategory(item.Category) {
		item.Category = model.CategoryTop
	}
	if !model.ValidSeason(item.Season) {
		item.Season = model.SeasonYearRound
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.DateAdded == 0 {
		item.DateAdded = time.Now().UnixMilli()
	}
	item.TimesWorn = 0

	w.mu.Lock()
	defer w.mu.Unlock()

	updated := append(slices.Clone(w.closet), item)
	if err := w.persistJSON(ctx, keyCloset, updated); err != nil {
		return model.ClosetItem{}, err
	}
	w.closet = updated
	w.signal()
	return item, nil
}

// RemoveFromCloset deletes an item. Removing an unknown id is a no-op, not
// an error. Planner entries and thrift listings referencing the item are
// left alone; readers filter dangling ids.
func (w *Wardrobe) RemoveFromCloset(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	updated := slices.DeleteFunc(slices.Clone(w.closet), func(item model.ClosetItem) bool {
		return item.ID == id
	})
	if len(updated) == len(w.closet) {
		return nil
	}

	if err := w.persistJSON(ctx, keyCloset, updated); err != nil {
		return err
	}
	w.closet = updated
	w.signal()
	return nil
}

// IncrementWornCount bumps an item's wear counter. Unknown ids are a no-op.
func (w *Wardrobe) IncrementWornCount(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index := slices.IndexFunc(w.closet, func(item model.ClosetItem) bool {
		return item.ID == id
	})
	if index < 0 {
		return nil
	}

	updated := slices.Clone(w.closet)
	updated[index].TimesWorn++
	if err := w.persistJSON(ctx, keyCloset, updated); err != nil {
		return err
	}
	w.closet = updated
	w.signal()
	return nil
}

// ItemsByID resolves ids against the closet, preserving order and silently
// dropping ids that no longer exist.
func (w *Wardrobe) ItemsByID(ids []string) []model.ClosetItem {
	w.mu.RLock()
	defer w.mu.RUnlock()

	items := make([]model.ClosetItem, 0, len(ids))
	for _, id := range ids {
		for _, item := range w.closet {
			if item.ID == id {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// HasItem reports whether a closet item with the given id exists.
func (w *Wardrobe) HasItem(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.ContainsFunc(w.closet, func(item model.ClosetItem) bool {
		return item.ID == id
	})
}

// TotalValue returns the summed price of every closet item.
func (w *Wardrobe) TotalValue() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var total float64
	for _, item := range w.closet {
		total += item.Price
	}
	return total
}
