package game

import (
	"strings"
	"time"
)

// Zone is one third of the field. The visual top of the field is attack,
// regardless of the risk semantics of what gets placed there.
type Zone string

const (
	ZoneDefense  Zone = "defense"
	ZoneMidfield Zone = "midfield"
	ZoneAttack   Zone = "attack"
)

// ParseZone normalizes a zone name, accepting the Portuguese aliases used by
// legacy card catalogs.
func ParseZone(raw string) (Zone, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "defense", "defesa":
		return ZoneDefense, true
	case "midfield", "meio", "meio-campo", "meiocampo", "meio de campo":
		return ZoneMidfield, true
	case "attack", "ataque":
		return ZoneAttack, true
	default:
		return "", false
	}
}

// Profile is the investor risk profile fixed for the duration of one match.
type Profile string

const (
	ProfileConservative Profile = "conservative"
	ProfileModerate     Profile = "moderate"
	ProfileAggressive   Profile = "aggressive"
)

func ParseProfile(raw string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "conservative", "conservador":
		return ProfileConservative, true
	case "moderate", "moderado":
		return ProfileModerate, true
	case "aggressive", "arrojado", "agressivo":
		return ProfileAggressive, true
	default:
		return "", false
	}
}

// ProfileForScore maps a 1..100 questionnaire score to a profile band.
// Scores below the conservative band clamp to conservative.
func ProfileForScore(score int) Profile {
	switch {
	case score <= 35:
		return ProfileConservative
	case score <= 60:
		return ProfileModerate
	default:
		return ProfileAggressive
	}
}

// Placement is one card currently on the field. Correct is frozen at drop
// time and only changes through an explicit re-drop.
type Placement struct {
	AssetID   int
	AssetName string
	Zone      Zone
	Correct   bool
	X         float64
	Y         float64
	Width     float64
	Height    float64
}

// Rect is the bounding rectangle of a placed or incoming card.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (p Placement) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Match holds the state of one play session.
type Match struct {
	ID         string
	PlayerName string
	Profile    Profile
	Placements []Placement
	Finalized  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m Match) PlacementByAsset(assetID int) (Placement, bool) {
	for _, p := range m.Placements {
		if p.AssetID == assetID {
			return p, true
		}
	}
	return Placement{}, false
}

func (m Match) ZoneCounts() map[Zone]int {
	counts := make(map[Zone]int, 3)
	for _, p := range m.Placements {
		counts[p.Zone]++
	}
	return counts
}
