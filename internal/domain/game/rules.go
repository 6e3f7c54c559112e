package game

import (
	"errors"
	"fmt"
)

var (
	ErrMatchFull       = errors.New("match already holds the maximum number of cards")
	ErrMatchFinalized  = errors.New("match already finalized")
	ErrCardOverlap     = errors.New("card overlaps an existing placement")
	ErrAssetNotPlaced  = errors.New("asset is not placed on the field")
	ErrUnknownZone     = errors.New("unknown zone")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrDropOutOfBounds = errors.New("drop point is outside the field")
)

// ZoneCutoff holds the suitability thresholds that decide an asset's
// expected zone for one profile. Anything above MidfieldMax is attack.
type ZoneCutoff struct {
	DefenseMax  int
	MidfieldMax int
}

// Formation is the per-zone card distribution that earns the lineup bonus.
type Formation struct {
	Defense  int
	Midfield int
	Attack   int
}

// Rules stores placement validation parameters and the per-profile tables.
type Rules struct {
	MaxPlacements   int
	CollisionMargin float64
	Cutoffs         map[Profile]ZoneCutoff
	IdealFormation  map[Profile]Formation
}

func DefaultRules() Rules {
	return Rules{
		MaxPlacements:   6,
		CollisionMargin: 5,
		Cutoffs: map[Profile]ZoneCutoff{
			ProfileConservative: {DefenseMax: 25, MidfieldMax: 45},
			ProfileModerate:     {DefenseMax: 35, MidfieldMax: 60},
			ProfileAggressive:   {DefenseMax: 50, MidfieldMax: 80},
		},
		IdealFormation: map[Profile]Formation{
			ProfileConservative: {Defense: 2, Midfield: 3, Attack: 1},
			ProfileModerate:     {Defense: 2, Midfield: 2, Attack: 2},
			ProfileAggressive:   {Defense: 1, Midfield: 3, Attack: 2},
		},
	}
}

// ExpectedZone returns the zone where an asset with the given suitability
// counts as correct under the profile's cutoffs.
func (r Rules) ExpectedZone(profile Profile, suitability int) (Zone, error) {
	cutoff, ok := r.Cutoffs[profile]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}

	switch {
	case suitability <= cutoff.DefenseMax:
		return ZoneDefense, nil
	case suitability <= cutoff.MidfieldMax:
		return ZoneMidfield, nil
	default:
		return ZoneAttack, nil
	}
}

// ZoneForDrop maps the vertical center of a dropped card to a field zone.
// The field is split into three equal horizontal bands, attack on top.
func ZoneForDrop(centerY, fieldHeight float64) (Zone, error) {
	if fieldHeight <= 0 || centerY < 0 || centerY > fieldHeight {
		return "", fmt.Errorf("%w: y=%.1f height=%.1f", ErrDropOutOfBounds, centerY, fieldHeight)
	}

	band := fieldHeight / 3
	switch {
	case centerY < band:
		return ZoneAttack, nil
	case centerY < band*2:
		return ZoneMidfield, nil
	default:
		return ZoneDefense, nil
	}
}

// Overlaps reports whether two rectangles intersect once each is grown by
// margin on every side.
func Overlaps(a, b Rect, margin float64) bool {
	if a.X+a.Width+margin <= b.X || b.X+b.Width+margin <= a.X {
		return false
	}
	if a.Y+a.Height+margin <= b.Y || b.Y+b.Height+margin <= a.Y {
		return false
	}
	return true
}

// Scoring holds the point values applied when a match is scored.
type Scoring struct {
	PointsPerCorrectCard int
	PointsPerWrongCard   int
	BonusIdealLineup     int
	MaxScore             int
}

func DefaultScoring() Scoring {
	return Scoring{
		PointsPerCorrectCard: 3,
		PointsPerWrongCard:   0,
		BonusIdealLineup:     20,
		MaxScore:             38,
	}
}

// Score recomputes the match score from scratch. The lineup bonus applies
// when the board is full and the per-zone distribution equals the profile's
// ideal formation, regardless of which cards are individually correct.
func (r Rules) Score(placements []Placement, profile Profile, scoring Scoring) int {
	var correct, wrong int
	counts := make(map[Zone]int, 3)
	for _, p := range placements {
		counts[p.Zone]++
		if p.Correct {
			correct++
		} else {
			wrong++
		}
	}

	total := correct*scoring.PointsPerCorrectCard - wrong*scoring.PointsPerWrongCard
	if r.isIdealFormation(profile, len(placements), counts) {
		total += scoring.BonusIdealLineup
	}

	if total < 0 {
		return 0
	}
	if total > scoring.MaxScore {
		return scoring.MaxScore
	}
	return total
}

func (r Rules) isIdealFormation(profile Profile, placed int, counts map[Zone]int) bool {
	ideal, ok := r.IdealFormation[profile]
	if !ok || placed != r.MaxPlacements {
		return false
	}
	return counts[ZoneDefense] == ideal.Defense &&
		counts[ZoneMidfield] == ideal.Midfield &&
		counts[ZoneAttack] == ideal.Attack
}
