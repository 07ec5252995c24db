package memory

import (
	"context"
	"sync"

	"github.com/Cienszki/automatic-tournament-sub000/internal/domain/pickem"
)

type PickemRepository struct {
	mu       sync.RWMutex
	pickems  []pickem.Pickem
	profiles []pickem.UserProfile
}

func NewPickemRepository(pickems []pickem.Pickem, profiles []pickem.UserProfile) *PickemRepository {
	return &PickemRepository{
		pickems:  append([]pickem.Pickem(nil), pickems...),
		profiles: append([]pickem.UserProfile(nil), profiles...),
	}
}

func (r *PickemRepository) ListPickems(_ context.Context) ([]pickem.Pickem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pickem.Pickem, 0, len(r.pickems))
	for _, item := range r.pickems {
		out = append(out, clonePickem(item))
	}
	return out, nil
}

func clonePickem(item pickem.Pickem) pickem.Pickem {
	p := item.Predictions
	item.Predictions.FifthToSixth = append([]string(nil), p.FifthToSixth...)
	item.Predictions.SeventhToEighth = append([]string(nil), p.SeventhToEighth...)
	item.Predictions.NinthToTwelfth = append([]string(nil), p.NinthToTwelfth...)
	item.Predictions.ThirteenthToSixteenth = append([]string(nil), p.ThirteenthToSixteenth...)
	item.Predictions.Pool = append([]string(nil), p.Pool...)
	return item
}

// SavePickem replaces any earlier submission of the same user.
func (r *PickemRepository) SavePickem(_ context.Context, item pickem.Pickem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item = clonePickem(item)
	for i, existing := range r.pickems {
		if existing.UserID == item.UserID {
			r.pickems[i] = item
			return nil
		}
	}
	r.pickems = append(r.pickems, item)
	return nil
}

func (r *PickemRepository) ListUserProfiles(_ context.Context) ([]pickem.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]pickem.UserProfile(nil), r.profiles...), nil
}
