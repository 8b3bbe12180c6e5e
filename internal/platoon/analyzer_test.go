package platoon

import (
	"math"
	"testing"

	"github.com/swgoh-tools/holotable/internal/swgoh"
)

// buildTestMatrix builds a four-member guild where VADER is owned at R7 by
// two members and at R5 by one more, and LUKE at R5 by one member.
func buildTestMatrix(t *testing.T) *CoverageMatrix {
	t.Helper()
	b := NewMatrixBuilder(testUnits(t))
	return b.Build([]swgoh.PlayerResponse{
		rosterWith("alice", 1, character("VADER", intp(9))),
		rosterWith("bob", 2, character("VADER", intp(9))),
		rosterWith("carol", 3, character("VADER", intp(7)), character("LUKE", intp(7))),
		rosterWith("dave", 4),
	}, "Test Guild", "G1")
}

func req(unitID string, minRelic int, path Path, location string, slots int) Requirement {
	return Requirement{
		UnitID:   unitID,
		UnitName: unitID,
		MinRelic: minRelic,
		Path:     path,
		Location: location,
		Slots:    slots,
		Kind:     KindCharacter,
	}
}

func TestAnalyzeRequirementCoverage(t *testing.T) {
	matrix := buildTestMatrix(t)
	reqs := &RequirementList{Requirements: []Requirement{
		req("VADER", 7, PathDarkSide, "Dathomir", 2),
	}}
	a := NewCoverageAnalyzer(matrix, reqs)

	cov := a.Analyze(reqs.Requirements[0])
	if cov.PlayersAvailable != 2 {
		t.Errorf("PlayersAvailable = %d, want 2", cov.PlayersAvailable)
	}
	if len(cov.PlayerNames) != 2 {
		t.Errorf("PlayerNames = %v, want 2 names", cov.PlayerNames)
	}
	if math.Abs(cov.CoverageRatio-0.5) > 1e-9 {
		t.Errorf("CoverageRatio = %f, want 0.5", cov.CoverageRatio)
	}
}

func TestAnalyzeEmptyGuildRatioIsZero(t *testing.T) {
	b := NewMatrixBuilder(testUnits(t))
	matrix := b.Build(nil, "Empty", "G0")
	a := NewCoverageAnalyzer(matrix, &RequirementList{})

	cov := a.Analyze(req("VADER", 5, PathDarkSide, "Mustafar", 1))
	if cov.CoverageRatio != 0 {
		t.Errorf("CoverageRatio = %f, want 0 for empty guild", cov.CoverageRatio)
	}
	if cov.PlayersAvailable != 0 {
		t.Errorf("PlayersAvailable = %d, want 0", cov.PlayersAvailable)
	}
}

func TestAnalyzeAllPreservesListOrder(t *testing.T) {
	matrix := buildTestMatrix(t)
	reqs := &RequirementList{Requirements: []Requirement{
		req("LUKE", 5, PathLightSide, "Coruscant", 1),
		req("VADER", 5, PathDarkSide, "Mustafar", 2),
	}}
	a := NewCoverageAnalyzer(matrix, reqs)

	results := a.AnalyzeAll()
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Requirement.UnitID != "LUKE" || results[1].Requirement.UnitID != "VADER" {
		t.Errorf("order = %s, %s; want LUKE, VADER",
			results[0].Requirement.UnitID, results[1].Requirement.UnitID)
	}
}

func TestSummaryByLocationCapsPerRequirement(t *testing.T) {
	matrix := buildTestMatrix(t)
	// Mustafar needs 2 VADER slots (3 owners at R5 → capped at 2) and
	// 5 LUKE slots (1 owner → 1).
	reqs := &RequirementList{Requirements: []Requirement{
		req("VADER", 5, PathDarkSide, "Mustafar", 2),
		req("LUKE", 5, PathDarkSide, "Mustafar", 5),
	}}
	a := NewCoverageAnalyzer(matrix, reqs)

	summary := a.SummaryByLocation()
	key := LocationKey{Path: PathDarkSide, Location: "Mustafar"}
	entry, ok := summary[key]
	if !ok {
		t.Fatalf("no summary entry for %v", key)
	}
	if entry.TotalSlots != 7 {
		t.Errorf("TotalSlots = %d, want 7", entry.TotalSlots)
	}
	if entry.CoveredSlots != 3 {
		t.Errorf("CoveredSlots = %d, want 3 (2 capped + 1)", entry.CoveredSlots)
	}
}

func TestSummaryByLocationMayDoubleCountAPlayer(t *testing.T) {
	// carol owns both VADER and LUKE; two one-slot requirements at the same
	// location each count her, by design.
	matrix := buildTestMatrix(t)
	reqs := &RequirementList{Requirements: []Requirement{
		req("VADER", 5, PathNeutral, "Tatooine", 1),
		req("LUKE", 5, PathNeutral, "Tatooine", 1),
	}}
	a := NewCoverageAnalyzer(matrix, reqs)

	entry := a.SummaryByLocation()[LocationKey{Path: PathNeutral, Location: "Tatooine"}]
	if entry.CoveredSlots != 2 {
		t.Errorf("CoveredSlots = %d, want 2 (double-count accepted)", entry.CoveredSlots)
	}
}

func TestSummaryByLocationGroupsByPathAndLocation(t *testing.T) {
	matrix := buildTestMatrix(t)
	reqs := &RequirementList{Requirements: []Requirement{
		req("VADER", 5, PathDarkSide, "Mustafar", 1),
		req("VADER", 5, PathNeutral, "Mustafar", 1),
	}}
	a := NewCoverageAnalyzer(matrix, reqs)

	summary := a.SummaryByLocation()
	if len(summary) != 2 {
		t.Errorf("len(summary) = %d, want 2 (same location, different paths)", len(summary))
	}
}
