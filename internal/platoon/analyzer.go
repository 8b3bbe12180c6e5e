package platoon

// RequirementCoverage is the coverage picture for one requirement: who can
// fill it and what fraction of the guild that is.
type RequirementCoverage struct {
	Requirement      Requirement
	PlayersAvailable int
	PlayerNames      []string
	CoverageRatio    float64
}

// LocationKey identifies one location on one path.
type LocationKey struct {
	Path     Path
	Location string
}

// SlotSummary totals slot demand and supply for a location.
type SlotSummary struct {
	TotalSlots   int
	CoveredSlots int
}

// CoverageAnalyzer reads requirement coverage out of a built matrix.
type CoverageAnalyzer struct {
	matrix *CoverageMatrix
	reqs   *RequirementList
}

// NewCoverageAnalyzer creates an analyzer over a matrix and requirement list.
func NewCoverageAnalyzer(matrix *CoverageMatrix, reqs *RequirementList) *CoverageAnalyzer {
	return &CoverageAnalyzer{matrix: matrix, reqs: reqs}
}

// Analyze computes coverage for a single requirement. The ratio is zero for
// an empty guild.
func (a *CoverageAnalyzer) Analyze(req Requirement) RequirementCoverage {
	players := a.matrix.PlayersAtOrAbove(req.UnitID, req.MinRelic)

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.PlayerName)
	}

	ratio := 0.0
	if a.matrix.MemberCount > 0 {
		ratio = float64(len(players)) / float64(a.matrix.MemberCount)
	}

	return RequirementCoverage{
		Requirement:      req,
		PlayersAvailable: len(players),
		PlayerNames:      names,
		CoverageRatio:    ratio,
	}
}

// AnalyzeAll computes coverage for every requirement in list order.
func (a *CoverageAnalyzer) AnalyzeAll() []RequirementCoverage {
	results := make([]RequirementCoverage, 0, len(a.reqs.Requirements))
	for _, req := range a.reqs.Requirements {
		results = append(results, a.Analyze(req))
	}
	return results
}

// SummaryByLocation totals slots per (path, location). Covered slots are
// capped per requirement at that requirement's demand, so one player holding
// two required units at a location is counted toward both. That approximation
// overstates coverage slightly and is kept deliberately.
func (a *CoverageAnalyzer) SummaryByLocation() map[LocationKey]SlotSummary {
	summary := make(map[LocationKey]SlotSummary)

	for _, req := range a.reqs.Requirements {
		key := LocationKey{Path: req.Path, Location: req.Location}
		entry := summary[key]

		entry.TotalSlots += req.Slots

		available := a.matrix.CountAtOrAbove(req.UnitID, req.MinRelic)
		if available > req.Slots {
			available = req.Slots
		}
		entry.CoveredSlots += available

		summary[key] = entry
	}
	return summary
}
