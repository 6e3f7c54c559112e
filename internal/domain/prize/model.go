package prize

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateID = errors.New("prize id already exists")
	ErrNotFound    = errors.New("prize not found")
)

// Prize is awarded when a match finishes at or above Threshold points.
type Prize struct {
	ID        string
	Name      string
	Stock     int
	Threshold int
}

func (p Prize) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prize id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("prize name is required")
	}
	if p.Stock < 0 {
		return fmt.Errorf("prize stock must not be negative")
	}
	if p.Threshold < 0 {
		return fmt.Errorf("prize threshold must not be negative")
	}
	return nil
}

// SelectAward picks the prize with the highest threshold among those with
// remaining stock and threshold at or below points. Threshold ties break to
// the lowest id so the choice is stable across backends.
func SelectAward(prizes []Prize, points int) (Prize, bool) {
	var best Prize
	found := false
	for _, p := range prizes {
		if p.Stock <= 0 || p.Threshold > points {
			continue
		}
		if !found ||
			p.Threshold > best.Threshold ||
			(p.Threshold == best.Threshold && p.ID < best.ID) {
			best = p
			found = true
		}
	}
	return best, found
}

// Repository persists the prize collection. UpdatedAt reports when the
// collection last changed, for the public listing.
type Repository interface {
	List(ctx context.Context) ([]Prize, time.Time, error)
	Create(ctx context.Context, p Prize) error
	Update(ctx context.Context, p Prize) error
	Delete(ctx context.Context, id string) error
}
