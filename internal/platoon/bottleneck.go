package platoon

import "sort"

// scarceOwnerThreshold is the owner count at or below which a unit is
// flagged as scarce.
const scarceOwnerThreshold = 3

// ScarceUnit is a unit demanded by the requirement list that too few members
// own at the required relic level.
type ScarceUnit struct {
	UnitID     string
	UnitName   string
	MinRelic   int
	OwnerNames []string
	OwnerCount int
	Locations  []string
	TotalSlots int
}

// IsSoleOwner reports whether exactly one member owns the unit.
func (u ScarceUnit) IsSoleOwner() bool {
	return u.OwnerCount == 1
}

// IsCritical reports whether fewer than three members own the unit.
func (u ScarceUnit) IsCritical() bool {
	return u.OwnerCount < 3
}

// BottleneckAnalyzer finds units whose scarcity constrains platoon
// scheduling.
type BottleneckAnalyzer struct {
	matrix *CoverageMatrix
	reqs   *RequirementList
}

// NewBottleneckAnalyzer creates an analyzer over a matrix and requirement
// list.
func NewBottleneckAnalyzer(matrix *CoverageMatrix, reqs *RequirementList) *BottleneckAnalyzer {
	return &BottleneckAnalyzer{matrix: matrix, reqs: reqs}
}

type demandKey struct {
	unitID   string
	minRelic int
}

type demand struct {
	locations []string
	slots     int
}

// ScarceUnits groups requirements by (unit, min relic), merging locations and
// slot demand, and returns the groups owned by at most three members. Results
// sort scarcest first: owner count ascending, then total slot demand
// descending.
func (a *BottleneckAnalyzer) ScarceUnits() []ScarceUnit {
	demands := make(map[demandKey]*demand)
	var order []demandKey

	for _, req := range a.reqs.Requirements {
		key := demandKey{unitID: req.UnitID, minRelic: req.MinRelic}
		d, ok := demands[key]
		if !ok {
			d = &demand{}
			demands[key] = d
			order = append(order, key)
		}
		d.locations = append(d.locations, req.Location)
		d.slots += req.Slots
	}

	var scarce []ScarceUnit
	for _, key := range order {
		d := demands[key]
		players := a.matrix.PlayersAtOrAbove(key.unitID, key.minRelic)
		owners := distinctOwners(players)
		if len(owners) > scarceOwnerThreshold {
			continue
		}

		unitName := key.unitID
		if cov := a.matrix.Coverage(key.unitID); cov != nil {
			unitName = cov.UnitName
		}

		scarce = append(scarce, ScarceUnit{
			UnitID:     key.unitID,
			UnitName:   unitName,
			MinRelic:   key.minRelic,
			OwnerNames: owners,
			OwnerCount: len(owners),
			Locations:  d.locations,
			TotalSlots: d.slots,
		})
	}

	sort.SliceStable(scarce, func(i, j int) bool {
		if scarce[i].OwnerCount != scarce[j].OwnerCount {
			return scarce[i].OwnerCount < scarce[j].OwnerCount
		}
		return scarce[i].TotalSlots > scarce[j].TotalSlots
	})
	return scarce
}

// distinctOwners deduplicates by ally code, preserving first-seen order.
// Display names can collide between members; ally codes cannot.
func distinctOwners(players []PlayerUnitInfo) []string {
	seen := make(map[int64]bool, len(players))
	var owners []string
	for _, p := range players {
		if seen[p.AllyCode] {
			continue
		}
		seen[p.AllyCode] = true
		owners = append(owners, p.PlayerName)
	}
	return owners
}
