package memory

import (
	"context"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
)

// CatalogSource serves a fixed asset list, defaulting to the embedded
// fallback catalog. Used by the memory backend and in tests.
type CatalogSource struct {
	assets []asset.Asset
}

func NewCatalogSource(assets []asset.Asset) *CatalogSource {
	if len(assets) == 0 {
		assets = asset.FallbackCatalog()
	}
	return &CatalogSource{assets: assets}
}

func (s *CatalogSource) LoadAssets(_ context.Context) ([]asset.Asset, error) {
	return append([]asset.Asset(nil), s.assets...), nil
}
