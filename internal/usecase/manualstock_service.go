package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
)

const maxStockItemNameLength = 80

// UpdateStockItemInput carries a partial manual stock item update.
type UpdateStockItemInput struct {
	Name     *string
	Quantity *int
}

// WithdrawResult is the outcome of handing out one unit at the booth.
type WithdrawResult struct {
	Item             manualstock.Item
	PreviousQuantity int
}

// ManualStockService manages the out-of-game giveaway counters.
type ManualStockService struct {
	repo   manualstock.Repository
	logger *slog.Logger
}

func NewManualStockService(repo manualstock.Repository, logger *slog.Logger) *ManualStockService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ManualStockService{repo: repo, logger: logger}
}

func (s *ManualStockService) List(ctx context.Context) ([]manualstock.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualStockService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manual stock: %w", err)
	}
	return items, nil
}

func (s *ManualStockService) Create(ctx context.Context, name string, quantity int) (manualstock.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualStockService.Create")
	defer span.End()

	item := manualstock.Item{
		ID:       uuid.NewString()[:8],
		Name:     cleanString(name, maxStockItemNameLength),
		Quantity: quantity,
	}
	if err := item.Validate(); err != nil {
		return manualstock.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return manualstock.Item{}, fmt.Errorf("create stock item: %w", err)
	}

	s.logger.InfoContext(ctx, "stock item created", "item_id", item.ID, "quantity", item.Quantity)
	return item, nil
}

func (s *ManualStockService) Update(ctx context.Context, id string, input UpdateStockItemInput) (manualstock.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualStockService.Update")
	defer span.End()

	current, err := s.itemByID(ctx, id)
	if err != nil {
		return manualstock.Item{}, err
	}

	if input.Name != nil {
		current.Name = cleanString(*input.Name, maxStockItemNameLength)
	}
	if input.Quantity != nil {
		current.Quantity = *input.Quantity
		if current.Quantity < 0 {
			current.Quantity = 0
		}
	}
	if err := current.Validate(); err != nil {
		return manualstock.Item{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, manualstock.ErrNotFound) {
			return manualstock.Item{}, fmt.Errorf("%w: stock item %s", ErrNotFound, id)
		}
		return manualstock.Item{}, fmt.Errorf("update stock item: %w", err)
	}

	return current, nil
}

func (s *ManualStockService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualStockService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, manualstock.ErrNotFound) {
			return fmt.Errorf("%w: stock item %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// Withdraw hands out one unit, flooring the counter at zero.
func (s *ManualStockService) Withdraw(ctx context.Context, id string) (WithdrawResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualStockService.Withdraw")
	defer span.End()

	current, err := s.itemByID(ctx, id)
	if err != nil {
		return WithdrawResult{}, err
	}

	previous := current.Quantity
	if current.Quantity > 0 {
		current.Quantity--
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return WithdrawResult{}, fmt.Errorf("update stock item: %w", err)
	}

	s.logger.InfoContext(ctx, "stock item withdrawn",
		"item_id", current.ID,
		"previous_quantity", previous,
		"quantity", current.Quantity,
	)

	return WithdrawResult{Item: current, PreviousQuantity: previous}, nil
}

func (s *ManualStockService) itemByID(ctx context.Context, id string) (manualstock.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return manualstock.Item{}, fmt.Errorf("%w: stock item id is required", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return manualstock.Item{}, fmt.Errorf("list manual stock: %w", err)
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return manualstock.Item{}, fmt.Errorf("%w: stock item %s", ErrNotFound, id)
}
