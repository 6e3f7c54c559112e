package game

import "context"

// Repository stores in-flight matches.
type Repository interface {
	Get(ctx context.Context, id string) (Match, bool, error)
	Upsert(ctx context.Context, match Match) error
	Delete(ctx context.Context, id string) error
}
