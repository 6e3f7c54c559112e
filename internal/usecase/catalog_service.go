package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
)

// CatalogService serves the card catalog and the admin-managed zone
// overrides. Catalog fetch failures degrade to the embedded fallback list so
// a kiosk keeps working offline.
type CatalogService struct {
	source        asset.CatalogSource
	positionsRepo asset.PositionsRepository
	logger        *slog.Logger
}

func NewCatalogService(
	source asset.CatalogSource,
	positionsRepo asset.PositionsRepository,
	logger *slog.Logger,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		source:        source,
		positionsRepo: positionsRepo,
		logger:        logger,
	}
}

func (s *CatalogService) ListAssets(ctx context.Context) ([]asset.Asset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListAssets")
	defer span.End()

	assets, err := s.source.LoadAssets(ctx)
	if err != nil || len(assets) == 0 {
		s.logger.WarnContext(ctx, "catalog fetch failed, using fallback", "error", err)
		return asset.FallbackCatalog(), nil
	}

	return assets, nil
}

// AssetByID resolves one card from the merged catalog.
func (s *CatalogService) AssetByID(ctx context.Context, id int) (asset.Asset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.AssetByID")
	defer span.End()

	assets, err := s.ListAssets(ctx)
	if err != nil {
		return asset.Asset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}

	return asset.Asset{}, fmt.Errorf("%w: asset id %d", ErrNotFound, id)
}

func (s *CatalogService) GetPositions(ctx context.Context) (asset.Positions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetPositions")
	defer span.End()

	positions, err := s.positionsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	if positions == nil {
		positions = asset.Positions{}
	}
	return positions, nil
}

func (s *CatalogService) PutPositions(ctx context.Context, positions asset.Positions) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.PutPositions")
	defer span.End()

	for assetID, overrides := range positions {
		for _, o := range overrides {
			if o.AssetID != assetID {
				return fmt.Errorf("%w: override asset id %d under key %d", ErrInvalidInput, o.AssetID, assetID)
			}
			if len(o.Zones) == 0 {
				return fmt.Errorf("%w: override for asset %d has no zones", ErrInvalidInput, assetID)
			}
		}
	}

	if err := s.positionsRepo.Put(ctx, positions); err != nil {
		return fmt.Errorf("put positions: %w", err)
	}

	s.logger.InfoContext(ctx, "positions overrides updated", "assets", len(positions))
	return nil
}
