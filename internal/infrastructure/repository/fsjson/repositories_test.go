package fsjson

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPrizeRepositorySeedsOnFirstAccess(t *testing.T) {
	seed := []prize.Prize{
		{ID: "cap", Name: "Boné", Stock: 10, Threshold: 30},
		{ID: "sticker", Name: "Adesivo", Stock: 50, Threshold: 10},
	}
	repo := NewPrizeRepository(newTestStore(t), seed)

	prizes, _, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, prizes)
}

func TestPrizeRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPrizeRepository(newTestStore(t), nil)

	require.NoError(t, repo.Create(ctx, prize.Prize{ID: "cap", Name: "Boné", Stock: 5, Threshold: 30}))
	assert.ErrorIs(t, repo.Create(ctx, prize.Prize{ID: "cap", Name: "Outro", Stock: 1, Threshold: 1}), prize.ErrDuplicateID)

	require.NoError(t, repo.Update(ctx, prize.Prize{ID: "cap", Name: "Boné", Stock: 4, Threshold: 30}))

	prizes, updatedAt, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	assert.Equal(t, 4, prizes[0].Stock)
	assert.False(t, updatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "cap"))
	assert.ErrorIs(t, repo.Delete(ctx, "cap"), prize.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, prize.Prize{ID: "cap"}), prize.ErrNotFound)
}

func TestPrizeRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	repo := NewPrizeRepository(store, nil)
	require.NoError(t, repo.Create(ctx, prize.Prize{ID: "shirt", Name: "Camisa", Stock: 2, Threshold: 38}))

	reopened := NewPrizeRepository(store, nil)
	prizes, _, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	assert.Equal(t, "shirt", prizes[0].ID)
}

func TestSettingsRepositoryDefaultsUntilWritten(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestStore(t))

	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), cfg)

	cfg.MaxScore = 100
	cfg.StockWithGame = false
	require.NoError(t, repo.Put(ctx, cfg))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGameLogRepositoryAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewGameLogRepository(newTestStore(t))

	first := gamelog.Record{
		ID:         "g1",
		Timestamp:  time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC),
		PlayerName: "ANA",
		Profile:    "conservative",
		Points:     38,
		Prize:      "Camisa",
		Cards: []gamelog.Card{
			{AssetID: 1, AssetName: "Tesouro Selic", Zone: "defense", Correct: true, X: 10, Y: 350},
		},
	}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, gamelog.Record{ID: "g2", Timestamp: first.Timestamp.Add(time.Minute), PlayerName: "BIA", Profile: "aggressive", Points: 9}))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0])
	assert.Equal(t, "g2", records[1].ID)
	assert.Empty(t, records[1].Prize)
}

func TestManualStockRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewManualStockRepository(newTestStore(t))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.Create(ctx, manualstock.Item{ID: "pen", Name: "Caneta", Quantity: 100}))
	require.NoError(t, repo.Update(ctx, manualstock.Item{ID: "pen", Name: "Caneta", Quantity: 99}))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 99, items[0].Quantity)

	assert.ErrorIs(t, repo.Update(ctx, manualstock.Item{ID: "gone"}), manualstock.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "pen"))
	assert.ErrorIs(t, repo.Delete(ctx, "pen"), manualstock.ErrNotFound)
}

func TestPositionsRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewPositionsRepository(newTestStore(t))

	empty, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	in := asset.Positions{
		7: {
			{AssetID: 7, Profile: game.ProfileConservative, Zones: []game.Zone{game.ZoneDefense}},
			{AssetID: 7, Profile: game.ProfileAggressive, Zones: []game.Zone{game.ZoneMidfield, game.ZoneAttack}},
		},
	}
	require.NoError(t, repo.Put(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, in[7], got[7])
}

func TestPositionsRepositoryParsesAliases(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// A hand-edited document using Portuguese names still loads.
	doc := positionsDoc{Positions: map[string]map[string][]string{
		"3": {"conservador": {"defesa", "meio-campo"}},
	}}
	require.NoError(t, store.write(positionsFile, doc))

	repo := NewPositionsRepository(store)
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []game.Zone{game.ZoneDefense, game.ZoneMidfield}, got.ZonesFor(3, game.ProfileConservative))
}
