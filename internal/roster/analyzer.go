// Package roster ranks a player's characters by outstanding salvage needs.
package roster

import (
	"sort"

	"github.com/swgoh-tools/holotable/internal/gear"
	"github.com/swgoh-tools/holotable/internal/swgoh"
)

// CharacterNeed is one row of the salvage report: a character, its current
// gear tier, and the tracked salvage still required to reach the maximum.
type CharacterNeed struct {
	Name        string
	CurrentTier int
	Needs       gear.NeedMap
	Total       int
}

// Analyzer walks a player's roster and computes per-character salvage needs.
type Analyzer struct {
	calc    *gear.Calculator
	units   map[string]swgoh.Unit
	maxTier int
}

// NewAnalyzer creates an analyzer over a unit catalog. maxTier must match the
// calculator's configured maximum.
func NewAnalyzer(calc *gear.Calculator, units map[string]swgoh.Unit, maxTier int) *Analyzer {
	return &Analyzer{calc: calc, units: units, maxTier: maxTier}
}

// Analyze computes outstanding needs for every owned character and returns
// the non-empty results sorted by total descending. Units already at the
// maximum tier or missing from the catalog are skipped, as are units whose
// resolved needs are empty. Ties keep roster order.
func (a *Analyzer) Analyze(playerUnits []swgoh.PlayerUnit) ([]CharacterNeed, error) {
	var results []CharacterNeed

	for _, pu := range playerUnits {
		unit := pu.Data
		if unit.GearLevel >= a.maxTier {
			continue
		}
		meta, ok := a.units[unit.BaseID]
		if !ok {
			continue
		}

		needs, err := a.calc.Compute(meta.GearLevels, unit.GearLevel, equippedGear(unit))
		if err != nil {
			return nil, err
		}
		if len(needs) == 0 {
			continue
		}

		results = append(results, CharacterNeed{
			Name:        meta.Name,
			CurrentTier: unit.GearLevel,
			Needs:       needs,
			Total:       needs.Total(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	return results, nil
}

// equippedGear collects the gear ids sitting in obtained slots. Slots not yet
// obtained still list the gear id they want, so the flag is what matters.
func equippedGear(unit swgoh.UnitData) []string {
	var equipped []string
	for _, slot := range unit.Gear {
		if slot.IsObtained {
			equipped = append(equipped, slot.BaseID)
		}
	}
	return equipped
}
