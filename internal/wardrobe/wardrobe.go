// Package wardrobe owns the wardrobe collections: closet items, thrift
// listings, wishlist, weekly planner, user profile and the earnings ledger.
// A Wardrobe keeps an in-memory mirror of every collection and persists each
// mutation to the key-value store in the same step, so memory and store never
// diverge: if the write fails, the mutation is not applied.
package wardrobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/noircloset/noir/internal/kv"
	"github.com/noircloset/noir/internal/model"
)

// Storage keys, one per collection. The names predate this implementation
// and must not change, or existing data becomes unreachable.
const (
	keyCloset   = "noir_closet"
	keyThrift   = "noir_thrift"
	keyWishlist = "noir_wishlist"
	keyPlanner  = "noir_planner"
	keyProfile  = "noir_profile"
	keyEarnings = "noir_earnings"
)

// ErrInvalidItem is returned when a mutation is refused because required
// fields are missing. No state changes.
var ErrInvalidItem = errors.New("wardrobe: missing required fields")

// ErrNotFound is returned by operations that need an existing record.
var ErrNotFound = errors.New("wardrobe: no such item")

// Wardrobe is the state owner for all wardrobe collections. Create one at
// startup and pass it by handle; all methods are safe for concurrent use.
type Wardrobe struct {
	store *kv.Store

	mu       sync.RWMutex
	closet   []model.ClosetItem
	thrift   []model.ThriftItem
	wishlist []model.WishlistItem
	planner  model.Planner
	profile  model.UserProfile
	earnings float64

	changed chan struct{}
}

// New creates a Wardrobe backed by store and loads all collections. On first
// run the default wishlist is seeded and persisted.
func New(ctx context.Context, store *kv.Store) (*Wardrobe, error) {
	w := &Wardrobe{
		store:   store,
		changed: make(chan struct{}, 1),
	}
	if err := w.Refresh(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// Refresh re-reads every collection from the store, replacing the in-memory
// mirrors. It is called on startup and whenever the watcher reports an
// outside write.
//
// The lock is held across the store reads, not just the swap. A mutation
// committing between the reads and the swap would otherwise be clobbered in
// memory by the stale snapshot while the store kept it, and same-connection
// writes never bump data_version, so no later watcher tick would repair the
// divergence.
func (w *Wardrobe) Refresh(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	closet, err := loadCloset(ctx, w.store)
	if err != nil {
		return err
	}
	thrift, err := loadCollection[model.ThriftItem](ctx, w.store, keyThrift)
	if err != nil {
		return err
	}
	wishlist, err := loadWishlist(ctx, w.store)
	if err != nil {
		return err
	}
	planner, err := loadPlanner(ctx, w.store)
	if err != nil {
		return err
	}
	profile, err := loadProfile(ctx, w.store)
	if err != nil {
		return err
	}
	earnings, err := loadEarnings(ctx, w.store)
	if err != nil {
		return err
	}

	w.closet = closet
	w.thrift = thrift
	w.wishlist = wishlist
	w.planner = planner
	w.profile = profile
	w.earnings = earnings

	w.signal()
	return nil
}

// Changed returns a channel that receives a signal after every applied
// mutation or refresh. Signals coalesce; consumers re-read current state
// rather than counting events.
func (w *Wardrobe) Changed() <-chan struct{} {
	return w.changed
}

func (w *Wardrobe) signal() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

// persistJSON serializes v and writes it under key. Callers apply the
// matching in-memory update only after a nil return.
func (w *Wardrobe) persistJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := w.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

// loadCollection reads a JSON array collection, returning an empty slice for
// an absent key. A value that fails to parse as an array also yields the
// empty default rather than failing the whole load.
func loadCollection[T any](ctx context.Context, store *kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// loadCloset reads the closet collection record by record, so one corrupt
// entry cannot take the rest of the closet down with it. Records from older
// builds that predate the wear counter load with TimesWorn zero.
func loadCloset(ctx context.Context, store *kv.Store) ([]model.ClosetItem, error) {
	raw, err := store.Get(ctx, keyCloset)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.ClosetItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", keyCloset, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []model.ClosetItem{}, nil
	}

	items := make([]model.ClosetItem, 0, len(records))
	for _, record := range records {
		var item model.ClosetItem
		if err := json.Unmarshal(record, &item); err != nil {
			continue
		}
		if item.ID == "" {
			continue
		}
		if item.TimesWorn < 0 {
			item.TimesWorn = 0
		}
		items = append(items, item)
	}
	return items, nil
}

// loadWishlist reads the wishlist, seeding and persisting the default set
// exactly once when the key has never been written. A present-but-empty
// wishlist is left empty.
func loadWishlist(ctx context.Context, store *kv.Store) ([]model.WishlistItem, error) {
	_, err := store.Get(ctx, keyWishlist)
	if errors.Is(err, kv.ErrNotFound) {
		defaults := model.DefaultWishlist()
		data, err := json.Marshal(defaults)
		if err != nil {
			return nil, fmt.Errorf("encoding default wishlist: %w", err)
		}
		if err := store.Set(ctx, keyWishlist, string(data)); err != nil {
			return nil, fmt.Errorf("seeding wishlist: %w", err)
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", keyWishlist, err)
	}

	return loadCollection[model.WishlistItem](ctx, store, keyWishlist)
}

func loadPlanner(ctx context.Context, store *kv.Store) (model.Planner, error) {
	raw, err := store.Get(ctx, keyPlanner)
	if errors.Is(err, kv.ErrNotFound) {
		return model.EmptyPlanner(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", keyPlanner, err)
	}

	var planner model.Planner
	if err := json.Unmarshal([]byte(raw), &planner); err != nil {
		return model.EmptyPlanner(), nil
	}

	// Guarantee all seven days, dropping any stray keys.
	clean := model.EmptyPlanner()
	for _, day := range model.Days {
		if ids, ok := planner[day]; ok && ids != nil {
			clean[day] = ids
		}
	}
	return clean, nil
}

func loadProfile(ctx context.Context, store *kv.Store) (model.UserProfile, error) {
	raw, err := store.Get(ctx, keyProfile)
	if errors.Is(err, kv.ErrNotFound) {
		return model.DefaultProfile(), nil
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("loading %s: %w", keyProfile, err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return model.DefaultProfile(), nil
	}
	return profile, nil
}

// loadEarnings reads the earnings accumulator, stored as a plain decimal
// string (not JSON).
func loadEarnings(ctx context.Context, store *kv.Store) (float64, error) {
	raw, err := store.Get(ctx, keyEarnings)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", keyEarnings, err)
	}

	earnings, err := strconv.ParseFloat(raw, 64)
	if err != nil || earnings < 0 {
		return 0, nil
	}
	return earnings, nil
}

func formatEarnings(earnings float64) string {
	return strconv.FormatFloat(earnings, 'f', -1, 64)
}
