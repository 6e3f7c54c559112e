package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

const (
	maxPlayerNameLength = 30
	maxProfileLength    = 20
	appendTimeout       = 5 * time.Second
)

// AwardInput is one finished match as reported by the client or by the
// server-side match flow.
type AwardInput struct {
	Points     int
	PlayerName string
	Profile    string
	Cards      []gamelog.Card
}

// AwardedPrize is the subset of a prize echoed back to the player.
type AwardedPrize struct {
	ID        string
	Name      string
	Threshold int
}

// AwardResult is the award outcome. Awarded is nil when no prize qualified.
type AwardResult struct {
	Awarded        *AwardedPrize
	RemainingStock int
	Points         int
	PlayerName     string
}

// AwardService selects a prize for a finished match, decrements its stock
// and appends the game record. The stock decrement is synchronous so the
// response reflects it; the log append runs on a single background worker
// because the player's result does not depend on it.
type AwardService struct {
	prizes prize.Repository
	games  gamelog.Repository
	config settings.Repository
	logger *slog.Logger
	now    func() time.Time

	pool    *ants.Pool
	pending sync.WaitGroup
}

func NewAwardService(
	prizes prize.Repository,
	games gamelog.Repository,
	config settings.Repository,
	logger *slog.Logger,
) (*AwardService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// One worker keeps the append-only log strictly ordered.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, fmt.Errorf("create append worker pool: %w", err)
	}

	return &AwardService{
		prizes: prizes,
		games:  games,
		config: config,
		logger: logger,
		now:    time.Now,
		pool:   pool,
	}, nil
}

func (s *AwardService) AwardAndLog(ctx context.Context, input AwardInput) (AwardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AwardService.AwardAndLog")
	defer span.End()

	if input.Points < 0 {
		return AwardResult{}, fmt.Errorf("%w: points must not be negative", ErrInvalidInput)
	}

	playerName := cleanString(input.PlayerName, maxPlayerNameLength)
	profile := cleanString(input.Profile, maxProfileLength)

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return AwardResult{}, fmt.Errorf("get game config: %w", err)
	}

	prizes, _, err := s.prizes.List(ctx)
	if err != nil {
		return AwardResult{}, fmt.Errorf("list prizes: %w", err)
	}

	result := AwardResult{Points: input.Points, PlayerName: playerName}

	if winner, ok := prize.SelectAward(prizes, input.Points); ok {
		result.Awarded = &AwardedPrize{ID: winner.ID, Name: winner.Name, Threshold: winner.Threshold}
		result.RemainingStock = winner.Stock

		if cfg.StockWithGame {
			winner.Stock--
			if winner.Stock < 0 {
				winner.Stock = 0
			}
			if err := s.prizes.Update(ctx, winner); err != nil {
				return AwardResult{}, fmt.Errorf("decrement prize stock: %w", err)
			}
			result.RemainingStock = winner.Stock
		}
	}

	record := gamelog.Record{
		ID:         uuid.NewString(),
		Timestamp:  s.now().UTC(),
		PlayerName: playerName,
		Profile:    profile,
		Points:     input.Points,
		Cards:      input.Cards,
	}
	if result.Awarded != nil {
		record.Prize = result.Awarded.Name
	}

	s.enqueueRecord(ctx, record)
	return result, nil
}

// enqueueRecord hands the append to the background worker. On a saturated
// or closed pool the record is written inline instead of being dropped.
func (s *AwardService) enqueueRecord(ctx context.Context, record gamelog.Record) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AwardService.enqueueRecord")
	defer span.End()

	s.pending.Add(1)
	err := s.pool.Submit(func() {
		defer s.pending.Done()
		s.appendRecord(record)
	})
	if err != nil {
		s.pending.Done()
		s.logger.WarnContext(ctx, "append worker unavailable, writing inline", "error", err)
		s.appendRecord(record)
	}
}

func (s *AwardService) appendRecord(record gamelog.Record) {
	var caught panics.Catcher

	caught.Try(func() {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()

		if err := s.games.Append(ctx, record); err != nil {
			s.logger.Error("append game record failed", "record_id", record.ID, "error", err)
		}
	})

	if recovered := caught.Recovered(); recovered != nil {
		s.logger.Error("append game record panicked", "record_id", record.ID, "panic", recovered.Value)
	}
}

// Close drains pending appends and releases the worker.
func (s *AwardService) Close() {
	s.pending.Wait()
	s.pool.Release()
}
