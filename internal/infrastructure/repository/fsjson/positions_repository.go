package fsjson

import (
	"context"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
)

const positionsFile = "positions.json"

type positionsDoc struct {
	// asset id -> profile name -> accepted zone names
	Positions map[string]map[string][]string `json:"positions"`
	UpdatedAt time.Time                      `json:"updatedAt"`
}

// PositionsRepository persists per-asset zone overrides. Profile and zone
// names are stored as strings and parsed on read so hand-edited documents
// with Portuguese aliases keep working.
type PositionsRepository struct {
	store *Store
}

func NewPositionsRepository(store *Store) *PositionsRepository {
	return &PositionsRepository{store: store}
}

func (r *PositionsRepository) Get(_ context.Context) (asset.Positions, error) {
	lock := r.store.lockFor(positionsFile)
	lock.Lock()
	defer lock.Unlock()

	var doc positionsDoc
	ok, err := r.store.read(positionsFile, &doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return asset.Positions{}, nil
	}
	return fromPositionsDoc(doc)
}

func (r *PositionsRepository) Put(_ context.Context, positions asset.Positions) error {
	lock := r.store.lockFor(positionsFile)
	lock.Lock()
	defer lock.Unlock()

	doc := positionsDoc{
		Positions: make(map[string]map[string][]string, len(positions)),
		UpdatedAt: time.Now().UTC(),
	}
	for assetID, overrides := range positions {
		byProfile := make(map[string][]string, len(overrides))
		for _, o := range overrides {
			zones := make([]string, 0, len(o.Zones))
			for _, z := range o.Zones {
				zones = append(zones, string(z))
			}
			byProfile[string(o.Profile)] = zones
		}
		doc.Positions[strconv.Itoa(assetID)] = byProfile
	}
	return r.store.write(positionsFile, doc)
}

func fromPositionsDoc(doc positionsDoc) (asset.Positions, error) {
	positions := make(asset.Positions, len(doc.Positions))
	for rawID, byProfile := range doc.Positions {
		assetID, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, crerr.Wrapf(err, "positions document: bad asset id %q", rawID)
		}

		overrides := make([]asset.Override, 0, len(byProfile))
		for rawProfile, rawZones := range byProfile {
			profile, ok := game.ParseProfile(rawProfile)
			if !ok {
				return nil, crerr.Newf("positions document: asset %d: unknown profile %q", assetID, rawProfile)
			}

			zones := make([]game.Zone, 0, len(rawZones))
			for _, rawZone := range rawZones {
				zone, ok := game.ParseZone(rawZone)
				if !ok {
					return nil, crerr.Newf("positions document: asset %d: unknown zone %q", assetID, rawZone)
				}
				zones = append(zones, zone)
			}
			overrides = append(overrides, asset.Override{
				AssetID: assetID,
				Profile: profile,
				Zones:   zones,
			})
		}
		positions[assetID] = overrides
	}
	return positions, nil
}
