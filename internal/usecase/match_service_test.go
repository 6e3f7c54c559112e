package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/memory"
)

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("match-%d", g.n), nil
}

type matchFixture struct {
	service   *MatchService
	award     *AwardService
	prizes    *memory.PrizeRepository
	games     *memory.GameLogRepository
	positions *memory.PositionsRepository
}

func newMatchFixture(t *testing.T) matchFixture {
	t.Helper()
	logger := discardLogger()

	prizesRepo := memory.NewPrizeRepository(memory.SeedPrizes())
	gamesRepo := memory.NewGameLogRepository()
	configRepo := memory.NewSettingsRepository()
	positionsRepo := memory.NewPositionsRepository()

	awardService, err := NewAwardService(prizesRepo, gamesRepo, configRepo, logger)
	require.NoError(t, err)
	t.Cleanup(awardService.Close)

	catalog := NewCatalogService(memory.NewCatalogSource(nil), positionsRepo, logger)
	service := NewMatchService(
		memory.NewMatchRepository(),
		catalog,
		configRepo,
		awardService,
		game.DefaultRules(),
		&seqIDGen{},
		logger,
	)

	return matchFixture{
		service:   service,
		award:     awardService,
		prizes:    prizesRepo,
		games:     gamesRepo,
		positions: positionsRepo,
	}
}

func TestStartMatchNormalizesNameAndProfile(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "  joão   da silva ", Profile: "conservador"})
	require.NoError(t, err)

	assert.Equal(t, "match-1", match.ID)
	assert.Equal(t, "JOÃO DA SILVA", match.PlayerName)
	assert.Equal(t, game.ProfileConservative, match.Profile)
	assert.False(t, match.Finalized)
}

func TestStartMatchRequiresName(t *testing.T) {
	fx := newMatchFixture(t)

	_, err := fx.service.Start(context.Background(), StartMatchInput{PlayerName: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStartMatchProfileFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  game.Profile
	}{
		{score: 1, want: game.ProfileConservative},
		{score: 35, want: game.ProfileConservative},
		{score: 36, want: game.ProfileModerate},
		{score: 60, want: game.ProfileModerate},
		{score: 61, want: game.ProfileAggressive},
		{score: 100, want: game.ProfileAggressive},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("score %d", tc.score), func(t *testing.T) {
			fx := newMatchFixture(t)

			match, err := fx.service.Start(context.Background(), StartMatchInput{
				PlayerName:   "ana",
				ProfileScore: &tc.score,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, match.Profile)
		})
	}
}

func TestStartMatchRejectsOutOfRangeScore(t *testing.T) {
	fx := newMatchFixture(t)
	score := 0

	_, err := fx.service.Start(context.Background(), StartMatchInput{PlayerName: "ana", ProfileScore: &score})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStartMatchDrawsProfileWhenUnspecified(t *testing.T) {
	fx := newMatchFixture(t)
	fx.service.randomProfile = func() game.Profile { return game.ProfileAggressive }

	match, err := fx.service.Start(context.Background(), StartMatchInput{PlayerName: "ana"})
	require.NoError(t, err)
	assert.Equal(t, game.ProfileAggressive, match.Profile)
}

func TestPlaceFreezesZoneAndCorrectness(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "ana", Profile: "conservative"})
	require.NoError(t, err)

	// Tesouro Selic (suitability 10) belongs in defense for a conservative
	// profile; a drop in the bottom third is correct.
	match, err = fx.service.Place(ctx, PlaceCardInput{
		MatchID: match.ID, AssetID: 1,
		X: 10, Y: 450, Width: 100, Height: 60, FieldHeight: 600,
	})
	require.NoError(t, err)
	require.Len(t, match.Placements, 1)
	assert.Equal(t, game.ZoneDefense, match.Placements[0].Zone)
	assert.True(t, match.Placements[0].Correct)

	// Opções (suitability 100) dropped in defense is wrong.
	match, err = fx.service.Place(ctx, PlaceCardInput{
		MatchID: match.ID, AssetID: 15,
		X: 200, Y: 450, Width: 100, Height: 60, FieldHeight: 600,
	})
	require.NoError(t, err)
	placed, ok := match.PlacementByAsset(15)
	require.True(t, ok)
	assert.Equal(t, game.ZoneDefense, placed.Zone)
	assert.False(t, placed.Correct)
}

func TestPlaceHonorsPositionOverride(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	require.NoError(t, fx.positions.Put(ctx, asset.Positions{
		1: {{AssetID: 1, Profile: game.ProfileConservative, Zones: []game.Zone{game.ZoneAttack}}},
	}))

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "ana", Profile: "conservative"})
	require.NoError(t, err)

	// The override moves Tesouro Selic to attack, overruling suitability.
	match, err = fx.service.Place(ctx, PlaceCardInput{
		MatchID: match.ID, AssetID: 1,
		X: 10, Y: 50, Width: 100, Height: 60, FieldHeight: 600,
	})
	require.NoError(t, err)
	assert.True(t, match.Placements[0].Correct)

	match, err = fx.service.Remove(ctx, match.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, match.Placements)

	match, err = fx.service.Place(ctx, PlaceCardInput{
		MatchID: match.ID, AssetID: 1,
		X: 10, Y: 450, Width: 100, Height: 60, FieldHeight: 600,
	})
	require.NoError(t, err)
	assert.False(t, match.Placements[0].Correct)
}

func TestPlaceValidation(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "ana", Profile: "moderate"})
	require.NoError(t, err)

	_, err = fx.service.Place(ctx, PlaceCardInput{MatchID: match.ID, AssetID: 1, Width: 0, Height: 60, FieldHeight: 600})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fx.service.Place(ctx, PlaceCardInput{MatchID: match.ID, AssetID: 999, X: 0, Y: 0, Width: 100, Height: 60, FieldHeight: 600})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.service.Place(ctx, PlaceCardInput{MatchID: match.ID, AssetID: 1, X: 0, Y: 700, Width: 100, Height: 60, FieldHeight: 600})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fx.service.Place(ctx, PlaceCardInput{MatchID: "nope", AssetID: 1, X: 0, Y: 0, Width: 100, Height: 60, FieldHeight: 600})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveUnplacedAsset(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "ana", Profile: "moderate"})
	require.NoError(t, err)

	_, err = fx.service.Remove(ctx, match.ID, 1)
	assert.ErrorIs(t, err, game.ErrAssetNotPlaced)
}

// TestFinalizePerfectConservativeMatch walks the whole flow: six correct
// placements in the 2-3-1 shape score the maximum, award the top prize,
// decrement its stock and land in the game log.
func TestFinalizePerfectConservativeMatch(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "ana", Profile: "conservative"})
	require.NoError(t, err)

	drops := []struct {
		assetID int
		x, y    float64
	}{
		{assetID: 1, x: 0, y: 450},   // defense
		{assetID: 2, x: 150, y: 450}, // defense
		{assetID: 4, x: 0, y: 250},   // midfield
		{assetID: 5, x: 150, y: 250}, // midfield
		{assetID: 6, x: 300, y: 250}, // midfield
		{assetID: 7, x: 0, y: 50},    // attack, suitability 50 > 45
	}
	for _, d := range drops {
		match, err = fx.service.Place(ctx, PlaceCardInput{
			MatchID: match.ID, AssetID: d.assetID,
			X: d.x, Y: d.y, Width: 100, Height: 60, FieldHeight: 600,
		})
		require.NoError(t, err)
	}
	for _, p := range match.Placements {
		assert.True(t, p.Correct, "asset %d", p.AssetID)
	}

	result, err := fx.service.Finalize(ctx, match.ID)
	require.NoError(t, err)

	assert.Equal(t, 38, result.Points)
	require.NotNil(t, result.Award.Awarded)
	assert.Equal(t, "shirt", result.Award.Awarded.ID)
	assert.Equal(t, 14, result.Award.RemainingStock)

	prizes, _, err := fx.prizes.List(ctx)
	require.NoError(t, err)
	for _, p := range prizes {
		if p.ID == "shirt" {
			assert.Equal(t, 14, p.Stock)
		}
	}

	fx.award.Close()
	records, err := fx.games.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ANA", records[0].PlayerName)
	assert.Equal(t, "conservative", records[0].Profile)
	assert.Equal(t, 38, records[0].Points)
	assert.Equal(t, "Camiseta", records[0].Prize)
	assert.Len(t, records[0].Cards, 6)

	_, err = fx.service.Finalize(ctx, match.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestFinalizeWithoutPlacementsStillLogs(t *testing.T) {
	ctx := context.Background()
	fx := newMatchFixture(t)

	match, err := fx.service.Start(ctx, StartMatchInput{PlayerName: "bia", Profile: "aggressive"})
	require.NoError(t, err)

	result, err := fx.service.Finalize(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Points)
	assert.Nil(t, result.Award.Awarded)

	fx.award.Close()
	records, err := fx.games.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Cards)
}
