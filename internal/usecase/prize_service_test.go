package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/memory"
)

func TestPrizeServiceCreateGeneratesShortID(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(nil), discardLogger())

	created, err := service.Create(ctx, CreatePrizeInput{Name: "Boné", Stock: 10, Threshold: 30})
	require.NoError(t, err)
	assert.Len(t, created.ID, 8)
	assert.Equal(t, "Boné", created.Name)
}

func TestPrizeServiceCreateDuplicateConflicts(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(nil), discardLogger())

	_, err := service.Create(ctx, CreatePrizeInput{ID: "cap", Name: "Boné", Stock: 10, Threshold: 30})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreatePrizeInput{ID: "cap", Name: "Outro", Stock: 1, Threshold: 5})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPrizeServiceCreateTruncatesFields(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(nil), discardLogger())

	created, err := service.Create(ctx, CreatePrizeInput{
		ID:        strings.Repeat("i", 40),
		Name:      strings.Repeat("n", 70),
		Stock:     1,
		Threshold: 1,
	})
	require.NoError(t, err)
	assert.Len(t, created.ID, 30)
	assert.Len(t, created.Name, 60)
}

func TestPrizeServiceCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(nil), discardLogger())

	_, err := service.Create(ctx, CreatePrizeInput{ID: "x", Name: "Y", Stock: -1, Threshold: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Create(ctx, CreatePrizeInput{ID: "x", Name: "", Stock: 1, Threshold: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrizeServicePartialUpdate(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(memory.SeedPrizes()), discardLogger())

	stock := 99
	updated, err := service.Update(ctx, "cap", UpdatePrizeInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 99, updated.Stock)
	assert.Equal(t, "Boné", updated.Name)
	assert.Equal(t, 30, updated.Threshold)

	_, err = service.Update(ctx, "missing", UpdatePrizeInput{Stock: &stock})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrizeServiceDelete(t *testing.T) {
	ctx := context.Background()
	service := NewPrizeService(memory.NewPrizeRepository(memory.SeedPrizes()), discardLogger())

	require.NoError(t, service.Delete(ctx, "sticker"))
	assert.ErrorIs(t, service.Delete(ctx, "sticker"), ErrNotFound)

	prizes, _, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, prizes, 3)
}
