package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

const DefaultRankingSize = 5

// RankingService answers the same-day leaderboard query over the game log.
type RankingService struct {
	games    gamelog.Repository
	location *time.Location
	topN     int
	logger   *slog.Logger
	now      func() time.Time
}

func NewRankingService(
	games gamelog.Repository,
	location *time.Location,
	topN int,
	logger *slog.Logger,
) *RankingService {
	if location == nil {
		location = time.UTC
	}
	if topN <= 0 {
		topN = DefaultRankingSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RankingService{
		games:    games,
		location: location,
		topN:     topN,
		logger:   logger,
		now:      time.Now,
	}
}

// DailyRanking returns today's records sorted by points descending. The
// calendar day is evaluated in the kiosk's configured timezone, and ties
// keep log order so the earlier game wins.
func (s *RankingService) DailyRanking(ctx context.Context) ([]gamelog.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.DailyRanking")
	defer span.End()

	records, err := s.games.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}

	today := s.now().In(s.location)
	y, m, d := today.Date()

	ranking := make([]gamelog.Record, 0, len(records))
	for _, r := range records {
		ry, rm, rd := r.Timestamp.In(s.location).Date()
		if ry == y && rm == m && rd == d {
			ranking = append(ranking, r)
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Points > ranking[j].Points
	})

	if len(ranking) > s.topN {
		ranking = ranking[:s.topN]
	}
	return ranking, nil
}

// ListAllGames returns the full log for the admin listing.
func (s *RankingService) ListAllGames(ctx context.Context) ([]gamelog.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ListAllGames")
	defer span.End()

	records, err := s.games.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game records: %w", err)
	}
	return records, nil
}
