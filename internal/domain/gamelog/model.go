package gamelog

import (
	"context"
	"time"
)

// Card is the per-placement summary frozen into a game record.
type Card struct {
	AssetID   int
	AssetName string
	Zone      string
	Correct   bool
	X         float64
	Y         float64
}

// Record is one finished match, append-only.
type Record struct {
	ID         string
	Timestamp  time.Time
	PlayerName string
	Profile    string
	Points     int
	Prize      string // awarded prize name, empty when none
	Cards      []Card
}

// Repository is the append-only game log.
type Repository interface {
	Append(ctx context.Context, record Record) error
	ListAll(ctx context.Context) ([]Record, error)
}
