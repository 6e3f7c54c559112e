package manualstock

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("stock item not found")
	ErrEmpty    = errors.New("stock item is empty")
)

// Item is an out-of-game giveaway counter managed by staff at the booth.
type Item struct {
	ID       string
	Name     string
	Quantity int
}

func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if i.Quantity < 0 {
		return fmt.Errorf("item quantity must not be negative")
	}
	return nil
}

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
}
