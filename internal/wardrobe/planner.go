package wardrobe

import (
	"context"
	"fmt"
	"slices"

	"github.com/noircloset/noir/internal/model"
)

// PlannerEntries returns a copy of the weekly planner as persisted,
// including ids that no longer resolve to closet items.
func (w *Wardrobe) PlannerEntries() model.Planner {
	w.mu.RLock()
	defer w.mu.RUnlock()

	planner := make(model.Planner, len(w.planner))
	for day, ids := range w.planner {
		planner[day] = slices.Clone(ids)
	}
	return planner
}

// UpdatePlanner replaces the item list for one day. The list is
// de-duplicated (first occurrence wins) before persisting.
func (w *Wardrobe) UpdatePlanner(ctx context.Context, day string, itemIDs []string) error {
	if !model.ValidDay(day) {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidItem, day)
	}

	deduped := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if !slices.Contains(deduped, id) {
			deduped = append(deduped, id)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	updated := make(model.Planner, len(w.planner))
	for d, ids := range w.planner {
		updated[d] = ids
	}
	updated[day] = deduped

	if err := w.persistJSON(ctx, keyPlanner, updated); err != nil {
		return err
	}
	w.planner = updated
	w.signal()
	return nil
}

// OutfitForDay resolves a day's planned ids against the closet. Ids whose
// items have since been deleted are dropped from the result without touching
// the persisted list.
func (w *Wardrobe) OutfitForDay(day string) ([]model.ClosetItem, error) {
	if !model.ValidDay(day) {
		return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidItem, day)
	}

	w.mu.RLock()
	ids := slices.Clone(w.planner[day])
	w.mu.RUnlock()

	return w.ItemsByID(ids), nil
}
