package game

import "fmt"

// Place adds a card to the field, or moves it when the asset is already
// placed. Rejections leave the match untouched.
func (m *Match) Place(p Placement, rules Rules) error {
	if m.Finalized {
		return ErrMatchFinalized
	}

	_, replacing := m.PlacementByAsset(p.AssetID)
	if !replacing && len(m.Placements) >= rules.MaxPlacements {
		return fmt.Errorf("%w: max=%d", ErrMatchFull, rules.MaxPlacements)
	}

	for _, current := range m.Placements {
		if current.AssetID == p.AssetID {
			continue
		}
		if Overlaps(current.Rect(), p.Rect(), rules.CollisionMargin) {
			return fmt.Errorf("%w: asset=%d blocks asset=%d", ErrCardOverlap, current.AssetID, p.AssetID)
		}
	}

	if replacing {
		m.removeAsset(p.AssetID)
	}
	m.Placements = append(m.Placements, p)
	return nil
}

// Remove takes a card off the field.
func (m *Match) Remove(assetID int) error {
	if m.Finalized {
		return ErrMatchFinalized
	}
	if !m.removeAsset(assetID) {
		return fmt.Errorf("%w: asset=%d", ErrAssetNotPlaced, assetID)
	}
	return nil
}

func (m *Match) removeAsset(assetID int) bool {
	for i, p := range m.Placements {
		if p.AssetID == assetID {
			m.Placements = append(m.Placements[:i], m.Placements[i+1:]...)
			return true
		}
	}
	return false
}
