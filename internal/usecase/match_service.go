package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
	"github.com/lucasmrqs/financial-football/internal/domain/settings"
	idgen "github.com/lucasmrqs/financial-football/internal/platform/id"
)

const maxMatchPlayerNameLength = 18

// StartMatchInput begins a play session. Profile wins over ProfileScore;
// with neither set the profile is drawn at random, as the kiosk does.
type StartMatchInput struct {
	PlayerName   string
	Profile      string
	ProfileScore *int
}

// PlaceCardInput is one drop attempt. X and Y locate the card's top-left
// corner; the zone is derived from the card center against FieldHeight.
type PlaceCardInput struct {
	MatchID     string
	AssetID     int
	X           float64
	Y           float64
	Width       float64
	Height      float64
	FieldHeight float64
}

// FinalizeResult is the scored outcome of a completed match.
type FinalizeResult struct {
	Points int
	Award  AwardResult
}

// MatchService owns the server-side match flow: start, place, remove,
// finalize. Scoring follows the stored game config at finalize time.
type MatchService struct {
	matches       game.Repository
	catalog       *CatalogService
	config        settings.Repository
	award         *AwardService
	rules         game.Rules
	idGen         idgen.Generator
	logger        *slog.Logger
	now           func() time.Time
	randomProfile func() game.Profile
}

func NewMatchService(
	matches game.Repository,
	catalog *CatalogService,
	config settings.Repository,
	award *AwardService,
	rules game.Rules,
	idGen idgen.Generator,
	logger *slog.Logger,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchService{
		matches:       matches,
		catalog:       catalog,
		config:        config,
		award:         award,
		rules:         rules,
		idGen:         idGen,
		logger:        logger,
		now:           time.Now,
		randomProfile: drawProfile,
	}
}

func drawProfile() game.Profile {
	profiles := []game.Profile{game.ProfileConservative, game.ProfileModerate, game.ProfileAggressive}
	return profiles[rand.IntN(len(profiles))]
}

func (s *MatchService) Start(ctx context.Context, input StartMatchInput) (game.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Start")
	defer span.End()

	playerName := normalizePlayerName(input.PlayerName)
	if playerName == "" {
		return game.Match{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	var profile game.Profile
	switch {
	case strings.TrimSpace(input.Profile) != "":
		parsed, ok := game.ParseProfile(input.Profile)
		if !ok {
			return game.Match{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidInput, input.Profile)
		}
		profile = parsed
	case input.ProfileScore != nil:
		if *input.ProfileScore < 1 || *input.ProfileScore > 100 {
			return game.Match{}, fmt.Errorf("%w: profile score must be in 1..100", ErrInvalidInput)
		}
		profile = game.ProfileForScore(*input.ProfileScore)
	default:
		profile = s.randomProfile()
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return game.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	match := game.Match{
		ID:         id,
		PlayerName: playerName,
		Profile:    profile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.matches.Upsert(ctx, match); err != nil {
		return game.Match{}, fmt.Errorf("store match: %w", err)
	}

	s.logger.InfoContext(ctx, "match started", "match_id", match.ID, "profile", profile)
	return match, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (game.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	return s.matchByID(ctx, matchID)
}

// Place validates a drop and records the placement. Correctness is frozen
// at drop time from the (asset, zone, profile) triple, honoring any
// per-asset override.
func (s *MatchService) Place(ctx context.Context, input PlaceCardInput) (game.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Place")
	defer span.End()

	if input.Width <= 0 || input.Height <= 0 {
		return game.Match{}, fmt.Errorf("%w: card dimensions must be positive", ErrInvalidInput)
	}

	match, err := s.matchByID(ctx, input.MatchID)
	if err != nil {
		return game.Match{}, err
	}

	card, err := s.catalog.AssetByID(ctx, input.AssetID)
	if err != nil {
		return game.Match{}, err
	}

	zone, err := game.ZoneForDrop(input.Y+input.Height/2, input.FieldHeight)
	if err != nil {
		return game.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	expected, err := s.expectedZones(ctx, card.ID, card.Suitability, match.Profile)
	if err != nil {
		return game.Match{}, err
	}

	placement := game.Placement{
		AssetID:   card.ID,
		AssetName: card.Name,
		Zone:      zone,
		Correct:   containsZone(expected, zone),
		X:         input.X,
		Y:         input.Y,
		Width:     input.Width,
		Height:    input.Height,
	}

	if err := match.Place(placement, s.rules); err != nil {
		return game.Match{}, err
	}

	match.UpdatedAt = s.now().UTC()
	if err := s.matches.Upsert(ctx, match); err != nil {
		return game.Match{}, fmt.Errorf("store match: %w", err)
	}

	return match, nil
}

func (s *MatchService) Remove(ctx context.Context, matchID string, assetID int) (game.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Remove")
	defer span.End()

	match, err := s.matchByID(ctx, matchID)
	if err != nil {
		return game.Match{}, err
	}

	if err := match.Remove(assetID); err != nil {
		return game.Match{}, err
	}

	match.UpdatedAt = s.now().UTC()
	if err := s.matches.Upsert(ctx, match); err != nil {
		return game.Match{}, fmt.Errorf("store match: %w", err)
	}

	return match, nil
}

// Finalize scores the board, runs the award flow and freezes the match.
func (s *MatchService) Finalize(ctx context.Context, matchID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Finalize")
	defer span.End()

	match, err := s.matchByID(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if match.Finalized {
		return FinalizeResult{}, fmt.Errorf("%w: match %s already finalized", ErrConflict, matchID)
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get game config: %w", err)
	}

	points := s.rules.Score(match.Placements, match.Profile, scoringFromConfig(cfg))

	cards := make([]gamelog.Card, 0, len(match.Placements))
	for _, p := range match.Placements {
		cards = append(cards, gamelog.Card{
			AssetID:   p.AssetID,
			AssetName: p.AssetName,
			Zone:      string(p.Zone),
			Correct:   p.Correct,
			X:         p.X,
			Y:         p.Y,
		})
	}

	awardResult, err := s.award.AwardAndLog(ctx, AwardInput{
		Points:     points,
		PlayerName: match.PlayerName,
		Profile:    string(match.Profile),
		Cards:      cards,
	})
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("award and log: %w", err)
	}

	match.Finalized = true
	match.UpdatedAt = s.now().UTC()
	if err := s.matches.Upsert(ctx, match); err != nil {
		return FinalizeResult{}, fmt.Errorf("store match: %w", err)
	}

	s.logger.InfoContext(ctx, "match finalized",
		"match_id", match.ID,
		"points", points,
		"awarded", awardResult.Awarded != nil,
	)

	return FinalizeResult{Points: points, Award: awardResult}, nil
}

func (s *MatchService) expectedZones(ctx context.Context, assetID, suitability int, profile game.Profile) ([]game.Zone, error) {
	positions, err := s.catalog.GetPositions(ctx)
	if err != nil {
		return nil, err
	}
	if zones := positions.ZonesFor(assetID, profile); len(zones) > 0 {
		return zones, nil
	}

	zone, err := s.rules.ExpectedZone(profile, suitability)
	if err != nil {
		return nil, err
	}
	return []game.Zone{zone}, nil
}

func (s *MatchService) matchByID(ctx context.Context, matchID string) (game.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return game.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	match, ok, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return game.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return game.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return match, nil
}

func containsZone(zones []game.Zone, zone game.Zone) bool {
	for _, z := range zones {
		if z == zone {
			return true
		}
	}
	return false
}

func scoringFromConfig(cfg settings.GameConfig) game.Scoring {
	return game.Scoring{
		PointsPerCorrectCard: cfg.PointsPerCorrectCard,
		PointsPerWrongCard:   cfg.PointsPerWrongCard,
		BonusIdealLineup:     cfg.BonusIdealLineup,
		MaxScore:             cfg.MaxScore,
	}
}

// normalizePlayerName collapses whitespace, trims, truncates and uppercases
// the arcade-style display name.
func normalizePlayerName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if runes := []rune(name); len(runes) > maxMatchPlayerNameLength {
		name = string(runes[:maxMatchPlayerNameLength])
	}
	return strings.ToUpper(name)
}
