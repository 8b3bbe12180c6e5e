package platoon

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRequirementsTOML(t *testing.T) {
	path := writeFile(t, "reqs.toml", `
version = "1.0"
last_updated = "2026-08-01"

[[requirements]]
unit_id = "VADER"
unit_name = "Darth Vader"
min_relic = 7
path = "dark_side"
territory = "Dathomir"
count = 2
unit_type = "character"

[[requirements]]
unit_id = "EXECUTOR"
unit_name = "Executor"
min_relic = 7
path = "dark_side"
territory = "Death Star"
count = 1
unit_type = "ship"
`)

	list, err := LoadRequirements(path)
	if err != nil {
		t.Fatalf("LoadRequirements: %v", err)
	}
	if len(list.Requirements) != 2 {
		t.Fatalf("len = %d, want 2", len(list.Requirements))
	}

	first := list.Requirements[0]
	if first.UnitID != "VADER" || first.MinRelic != 7 || first.Path != PathDarkSide ||
		first.Location != "Dathomir" || first.Slots != 2 || first.Kind != KindCharacter {
		t.Errorf("first = %+v", first)
	}
	if list.Requirements[1].Kind != KindShip {
		t.Errorf("second kind = %s, want ship", list.Requirements[1].Kind)
	}
}

func TestLoadRequirementsJSON(t *testing.T) {
	path := writeFile(t, "reqs.json", `{
		"version": "1.0",
		"last_updated": "2026-08-01",
		"requirements": [
			{"unit_id": "LUKE", "unit_name": "Luke Skywalker", "min_relic": 5,
			 "path": "light_side", "territory": "Coruscant", "count": 3,
			 "unit_type": "character"}
		]
	}`)

	list, err := LoadRequirements(path)
	if err != nil {
		t.Fatalf("LoadRequirements: %v", err)
	}
	if len(list.Requirements) != 1 || list.Requirements[0].UnitID != "LUKE" {
		t.Errorf("list = %+v", list)
	}
}

func TestLoadRequirementsMissingFile(t *testing.T) {
	if _, err := LoadRequirements(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRequirementsMalformed(t *testing.T) {
	path := writeFile(t, "bad.toml", `this is not [ valid toml`)
	if _, err := LoadRequirements(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name string
		req  Requirement
	}{
		{"missing unit id", Requirement{MinRelic: 5, Slots: 1}},
		{"relic too high", Requirement{UnitID: "X", MinRelic: 10, Slots: 1}},
		{"relic negative", Requirement{UnitID: "X", MinRelic: -1, Slots: 1}},
		{"zero slots", Requirement{UnitID: "X", MinRelic: 5, Slots: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list := &RequirementList{Requirements: []Requirement{tc.req}}
			if err := list.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFilterByMaxPhase(t *testing.T) {
	list := &RequirementList{Requirements: []Requirement{
		req("A", 5, PathDarkSide, "Mustafar", 1),        // phase 1
		req("B", 6, PathLightSide, "Bracca", 1),         // phase 2
		req("C", 7, PathLightSide, "Zeffo", 1),          // phase 3 bonus
		req("D", 8, PathNeutral, "Kessel", 1),           // phase 4
		req("E", 9, PathDarkSide, "Death Star", 1),      // phase 6
		req("F", 5, PathNeutral, "Unknown Location", 1), // unmapped
	}}

	cases := []struct {
		maxPhase string
		want     []string
	}{
		// A bonus planet opens after its base phase, and an unmapped
		// location is never included.
		{"3", []string{"A", "B"}},
		{"3b", []string{"A", "B", "C"}},
		{"4", []string{"A", "B", "C", "D"}},
		{"6", []string{"A", "B", "C", "D", "E"}},
	}
	for _, tc := range cases {
		t.Run("phase "+tc.maxPhase, func(t *testing.T) {
			var ids []string
			for _, r := range list.FilterByMaxPhase(tc.maxPhase).Requirements {
				ids = append(ids, r.UnitID)
			}
			if len(ids) != len(tc.want) {
				t.Fatalf("kept %v, want %v", ids, tc.want)
			}
			for i := range tc.want {
				if ids[i] != tc.want[i] {
					t.Fatalf("kept %v, want %v", ids, tc.want)
				}
			}
		})
	}
}

func TestFilterByMaxPhaseUnknownPhase(t *testing.T) {
	list := &RequirementList{Requirements: []Requirement{
		req("A", 5, PathDarkSide, "Mustafar", 1),
		req("E", 9, PathDarkSide, "Death Star", 1),
	}}
	if got := list.FilterByMaxPhase("7"); len(got.Requirements) != 2 {
		t.Errorf("kept %d requirements, want all 2 for unknown phase", len(got.Requirements))
	}
}

func TestRelicByPhaseCoversAllPhases(t *testing.T) {
	for phase := 1; phase <= 5; phase++ {
		if _, ok := RelicByPhase[phase]; !ok {
			t.Errorf("RelicByPhase missing phase %d", phase)
		}
	}
	if RelicByPhase[1] != 5 || RelicByPhase[5] != 9 {
		t.Errorf("RelicByPhase endpoints = %d, %d; want 5, 9", RelicByPhase[1], RelicByPhase[5])
	}
}
