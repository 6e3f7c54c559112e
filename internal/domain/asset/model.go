package asset

import (
	"context"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
)

// Asset is one investment card. Suitability is the 0..100 risk score that
// drives zone placement; Return and Safety are display-only star bars.
type Asset struct {
	ID          int
	Name        string
	Type        string
	Suitability int
	Return      int
	Safety      int
	Description string
}

// Override lists the zones that count as correct for one asset under one
// profile, taking precedence over the suitability cutoffs. An override with
// several zones accepts any of them.
type Override struct {
	AssetID int
	Profile game.Profile
	Zones   []game.Zone
}

// Positions is the admin-editable override document, keyed by asset id.
type Positions map[int][]Override

// ZonesFor returns the override zones for an asset under a profile, or nil
// when the cutoff formula should apply.
func (p Positions) ZonesFor(assetID int, profile game.Profile) []game.Zone {
	for _, o := range p[assetID] {
		if o.Profile == profile && len(o.Zones) > 0 {
			return o.Zones
		}
	}
	return nil
}

// CatalogSource loads the card catalog. Implementations fall back to the
// embedded list when the remote source is unreachable.
type CatalogSource interface {
	LoadAssets(ctx context.Context) ([]Asset, error)
}

// PositionsRepository persists the zone override document.
type PositionsRepository interface {
	Get(ctx context.Context) (Positions, error)
	Put(ctx context.Context, positions Positions) error
}
