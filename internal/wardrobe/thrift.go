package wardrobe

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/noircloset/noir/internal/model"
)

// ThriftItems returns a copy of the active listings, newest first.
func (w *Wardrobe) ThriftItems() []model.ThriftItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.thrift)
}

// Earnings returns the accumulated sale proceeds.
func (w *Wardrobe) Earnings() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.earnings
}

// AddThriftItem validates and prepends a listing. Image, name, size and a
// positive price are required; condition defaults to "Like New" and the
// collection to "Old Money" when unset.
func (w *Wardrobe) AddThriftItem(ctx context.Context, item model.ThriftItem) (model.ThriftItem, error) {
	if item.Image == "" || item.Name == "" || item.Size == "" || item.Price <= 0 {
		return model.ThriftItem{}, ErrInvalidItem
	}
	if item.Condition == "" {
		item.Condition = model.ConditionLikeNew
	}
	if !slices.Contains(model.Conditions, item.Condition) {
		return model.ThriftItem{}, ErrInvalidItem
	}
	if item.Collection == "" {
		item.Collection = model.CollectionOldMoney
	}
	if !slices.Contains(model.Collections, item.Collection) {
		return model.ThriftItem{}, ErrInvalidItem
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.DateListed == 0 {
		item.DateListed = time.Now().UnixMilli()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	updated := append([]model.ThriftItem{item}, w.thrift...)
	if err := w.persistJSON(ctx, keyThrift, updated); err != nil {
		return model.ThriftItem{}, err
	}
	w.thrift = updated
	w.signal()
	return item, nil
}

// RemoveThriftItem delists an item. Unknown ids are a no-op.
func (w *Wardrobe) RemoveThriftItem(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	updated := slices.DeleteFunc(slices.Clone(w.thrift), func(item model.ThriftItem) bool {
		return item.ID == id
	})
	if len(updated) == len(w.thrift) {
		return nil
	}

	if err := w.persistJSON(ctx, keyThrift, updated); err != nil {
		return err
	}
	w.thrift = updated
	w.signal()
	return nil
}

// MarkAsSold removes a listing and credits its price to the earnings ledger
// as one unit: both writes go through a single transactional store update,
// so a failure leaves neither half applied.
func (w *Wardrobe) MarkAsSold(ctx context.Context, id string, price float64) error {
	if price < 0 {
		return ErrInvalidItem
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	updated := slices.DeleteFunc(slices.Clone(w.thrift), func(item model.ThriftItem) bool {
		return item.ID == id
	})
	if len(updated) == len(w.thrift) {
		return ErrNotFound
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", keyThrift, err)
	}
	newEarnings := w.earnings + price
	if err := w.store.SetMulti(ctx, map[string]string{
		keyThrift:   string(data),
		keyEarnings: formatEarnings(newEarnings),
	}); err != nil {
		return fmt.Errorf("persisting sale: %w", err)
	}

	w.thrift = updated
	w.earnings = newEarnings
	w.signal()
	return nil
}

// ListingFromCloset builds an unsaved listing draft from a closet item:
// suggested resale price (70% of original, floored), a stock description and
// a size guessed from the profile by category. Returns ErrNotFound for an
// unknown id.
func (w *Wardrobe) ListingFromCloset(id string) (model.ThriftItem, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, item := range w.closet {
		if item.ID != id {
			continue
		}
		return model.ThriftItem{
			ID:          uuid.NewString(),
			Image:       item.Image,
			Name:        item.Name,
			Price:       model.SuggestedResalePrice(item.Price),
			Size:        model.SizeForCategory(item.Category, w.profile.Sizes),
			Condition:   model.ConditionLikeNew,
			Description: model.ListingDescription(item),
			Collection:  model.CollectionOldMoney,
		}, nil
	}
	return model.ThriftItem{}, ErrNotFound
}
