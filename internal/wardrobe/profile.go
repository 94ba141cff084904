package wardrobe

import (
	"context"

	"github.com/noircloset/noir/internal/model"
)

// Profile returns the singleton user profile.
func (w *Wardrobe) Profile() model.UserProfile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.profile
}

// UpdateProfile replaces the profile. A name is required.
func (w *Wardrobe) UpdateProfile(ctx context.Context, profile model.UserProfile) error {
	if profile.Name == "" {
		return ErrInvalidItem
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.persistJSON(ctx, keyProfile, profile); err != nil {
		return err
	}
	w.profile = profile
	w.signal()
	return nil
}
