package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

const (
	maxPrizeIDLength   = 30
	maxPrizeNameLength = 60
)

// CreatePrizeInput is the incoming payload for a new prize. ID is optional;
// a short random one is generated when absent.
type CreatePrizeInput struct {
	ID        string
	Name      string
	Stock     int
	Threshold int
}

// UpdatePrizeInput carries a partial prize update.
type UpdatePrizeInput struct {
	Name      *string
	Stock     *int
	Threshold *int
}

type PrizeService struct {
	repo   prize.Repository
	logger *slog.Logger
}

func NewPrizeService(repo prize.Repository, logger *slog.Logger) *PrizeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PrizeService{repo: repo, logger: logger}
}

func (s *PrizeService) List(ctx context.Context) ([]prize.Prize, time.Time, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizeService.List")
	defer span.End()

	prizes, updatedAt, err := s.repo.List(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("list prizes: %w", err)
	}
	return prizes, updatedAt, nil
}

func (s *PrizeService) Create(ctx context.Context, input CreatePrizeInput) (prize.Prize, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizeService.Create")
	defer span.End()

	id := cleanString(input.ID, maxPrizeIDLength)
	if id == "" {
		id = uuid.NewString()[:8]
	}

	item := prize.Prize{
		ID:        id,
		Name:      cleanString(input.Name, maxPrizeNameLength),
		Stock:     input.Stock,
		Threshold: input.Threshold,
	}
	if err := item.Validate(); err != nil {
		return prize.Prize{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, prize.ErrDuplicateID) {
			return prize.Prize{}, fmt.Errorf("%w: prize id %s", ErrConflict, item.ID)
		}
		return prize.Prize{}, fmt.Errorf("create prize: %w", err)
	}

	s.logger.InfoContext(ctx, "prize created", "prize_id", item.ID, "threshold", item.Threshold, "stock", item.Stock)
	return item, nil
}

func (s *PrizeService) Update(ctx context.Context, id string, input UpdatePrizeInput) (prize.Prize, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizeService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return prize.Prize{}, fmt.Errorf("%w: prize id is required", ErrInvalidInput)
	}

	prizes, _, err := s.repo.List(ctx)
	if err != nil {
		return prize.Prize{}, fmt.Errorf("list prizes: %w", err)
	}

	var current prize.Prize
	found := false
	for _, p := range prizes {
		if p.ID == id {
			current = p
			found = true
			break
		}
	}
	if !found {
		return prize.Prize{}, fmt.Errorf("%w: prize id %s", ErrNotFound, id)
	}

	if input.Name != nil {
		current.Name = cleanString(*input.Name, maxPrizeNameLength)
	}
	if input.Stock != nil {
		current.Stock = *input.Stock
	}
	if input.Threshold != nil {
		current.Threshold = *input.Threshold
	}
	if err := current.Validate(); err != nil {
		return prize.Prize{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		if errors.Is(err, prize.ErrNotFound) {
			return prize.Prize{}, fmt.Errorf("%w: prize id %s", ErrNotFound, id)
		}
		return prize.Prize{}, fmt.Errorf("update prize: %w", err)
	}

	return current, nil
}

func (s *PrizeService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrizeService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, prize.ErrNotFound) {
			return fmt.Errorf("%w: prize id %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete prize: %w", err)
	}

	s.logger.InfoContext(ctx, "prize deleted", "prize_id", id)
	return nil
}

func cleanString(raw string, max int) string {
	s := strings.TrimSpace(raw)
	if runes := []rune(s); len(runes) > max {
		s = string(runes[:max])
	}
	return s
}
