package platoon

import (
	"github.com/swgoh-tools/holotable/internal/swgoh"
)

// shipStarFloor is the minimum star level for a ship to count for platoons.
const shipStarFloor = 7

// relicEncodingOffset converts the API's relic_tier encoding to an actual
// relic level: raw 3 = R1, raw 11 = R9. Raw values below 3 mean no relic.
const relicEncodingOffset = 2

// PlayerUnitInfo records one member's ownership of a unit at an effective
// tier (relic level for characters, star level for ships).
type PlayerUnitInfo struct {
	PlayerName string
	AllyCode   int64
	Tier       int
}

// UnitCoverage holds guild-wide ownership of a single unit, bucketed by the
// exact effective tier each copy sits at. Cumulative queries sum buckets at
// read time.
type UnitCoverage struct {
	UnitID     string
	UnitName   string
	Alignment  int
	CombatType int
	Categories []string

	// PlayersByTier maps an exact effective tier to the members holding the
	// unit at that tier. Buckets are not cumulative.
	PlayersByTier map[int][]PlayerUnitInfo
}

// CountAtOrAbove counts members owning this unit at or above minTier.
func (c *UnitCoverage) CountAtOrAbove(minTier int) int {
	count := 0
	for tier, players := range c.PlayersByTier {
		if tier >= minTier {
			count += len(players)
		}
	}
	return count
}

// PlayersAtOrAbove collects members owning this unit at or above minTier.
func (c *UnitCoverage) PlayersAtOrAbove(minTier int) []PlayerUnitInfo {
	var result []PlayerUnitInfo
	for tier, players := range c.PlayersByTier {
		if tier >= minTier {
			result = append(result, players...)
		}
	}
	return result
}

// CoverageMatrix is the per-unit, per-tier ownership index for a guild.
// It is built once from a roster snapshot and read-only afterwards.
type CoverageMatrix struct {
	GuildName   string
	GuildID     string
	MemberCount int
	Units       map[string]*UnitCoverage
}

// Coverage returns the coverage entry for a unit, or nil if nobody owns it.
func (m *CoverageMatrix) Coverage(unitID string) *UnitCoverage {
	return m.Units[unitID]
}

// CountAtOrAbove counts members owning unitID at or above minTier.
func (m *CoverageMatrix) CountAtOrAbove(unitID string, minTier int) int {
	cov, ok := m.Units[unitID]
	if !ok {
		return 0
	}
	return cov.CountAtOrAbove(minTier)
}

// PlayersAtOrAbove collects members owning unitID at or above minTier.
func (m *CoverageMatrix) PlayersAtOrAbove(unitID string, minTier int) []PlayerUnitInfo {
	cov, ok := m.Units[unitID]
	if !ok {
		return nil
	}
	return cov.PlayersAtOrAbove(minTier)
}

// CoverageSummary reports owner counts for unitID at each relic threshold a
// platoon can demand (R5 through R9).
func (m *CoverageMatrix) CoverageSummary(unitID string) map[int]int {
	summary := make(map[int]int, 5)
	for relic := 5; relic <= 9; relic++ {
		summary[relic] = m.CountAtOrAbove(unitID, relic)
	}
	return summary
}

// MatrixBuilder folds member rosters into a CoverageMatrix using the unit
// catalog for metadata.
type MatrixBuilder struct {
	units map[string]swgoh.Unit
}

// NewMatrixBuilder creates a builder over a unit catalog.
func NewMatrixBuilder(units map[string]swgoh.Unit) *MatrixBuilder {
	return &MatrixBuilder{units: units}
}

// Build constructs the coverage matrix from a snapshot of member rosters.
// Units missing from the catalog are skipped, as are ships below seven stars
// and characters without a relic.
func (b *MatrixBuilder) Build(rosters []swgoh.PlayerResponse, guildName, guildID string) *CoverageMatrix {
	matrix := &CoverageMatrix{
		GuildName:   guildName,
		GuildID:     guildID,
		MemberCount: len(rosters),
		Units:       make(map[string]*UnitCoverage),
	}
	for _, roster := range rosters {
		b.addRoster(matrix, roster)
	}
	return matrix
}

func (b *MatrixBuilder) addRoster(matrix *CoverageMatrix, roster swgoh.PlayerResponse) {
	playerName := roster.Data.Name
	allyCode := roster.Data.AllyCode

	for _, pu := range roster.Units {
		unit := pu.Data
		meta, ok := b.units[unit.BaseID]
		if !ok {
			continue
		}

		tier, eligible := effectiveTier(meta.CombatType, unit)
		if !eligible {
			continue
		}

		cov, ok := matrix.Units[unit.BaseID]
		if !ok {
			cov = &UnitCoverage{
				UnitID:        unit.BaseID,
				UnitName:      meta.Name,
				Alignment:     meta.Alignment,
				CombatType:    meta.CombatType,
				Categories:    append([]string(nil), meta.Categories...),
				PlayersByTier: make(map[int][]PlayerUnitInfo),
			}
			matrix.Units[unit.BaseID] = cov
		}

		cov.PlayersByTier[tier] = append(cov.PlayersByTier[tier], PlayerUnitInfo{
			PlayerName: playerName,
			AllyCode:   allyCode,
			Tier:       tier,
		})
	}
}

// effectiveTier normalizes a rostered unit's raw progression into the tier
// dimension platoons are measured in. Ships use star level with a floor of
// seven; characters use relic level decoded from the API encoding, and are
// ineligible without one.
func effectiveTier(combatType int, unit swgoh.UnitData) (int, bool) {
	if combatType == swgoh.CombatTypeShip {
		if unit.Rarity < shipStarFloor {
			return 0, false
		}
		return unit.Rarity, true
	}
	if unit.RelicTier == nil || *unit.RelicTier < 3 {
		return 0, false
	}
	return *unit.RelicTier - relicEncodingOffset, true
}

// EligibleForPath reports whether a unit may deploy on the given path:
// dark side takes dark units, light side light units, neutral anything.
func EligibleForPath(cov *UnitCoverage, path Path) bool {
	switch path {
	case PathDarkSide:
		return cov.Alignment == swgoh.AlignmentDark
	case PathLightSide:
		return cov.Alignment == swgoh.AlignmentLight
	default:
		return true
	}
}

// FilterByPath returns the subset of the matrix's units eligible for path.
func FilterByPath(matrix *CoverageMatrix, path Path) map[string]*UnitCoverage {
	filtered := make(map[string]*UnitCoverage)
	for id, cov := range matrix.Units {
		if EligibleForPath(cov, path) {
			filtered[id] = cov
		}
	}
	return filtered
}

// FilterCharacters returns only character entries, excluding ships.
func FilterCharacters(units map[string]*UnitCoverage) map[string]*UnitCoverage {
	filtered := make(map[string]*UnitCoverage)
	for id, cov := range units {
		if cov.CombatType == swgoh.CombatTypeCharacter {
			filtered[id] = cov
		}
	}
	return filtered
}
