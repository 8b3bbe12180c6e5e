// Package platoon analyzes guild-wide unit coverage against territory battle
// platoon requirements: who owns what at which relic level, where the guild
// cannot fill slots, and which units are owned by too few members.
package platoon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Path is one of the three territory battle paths.
type Path string

const (
	PathDarkSide  Path = "dark_side"
	PathNeutral   Path = "neutral"
	PathLightSide Path = "light_side"
)

// UnitKind distinguishes character and ship requirements.
type UnitKind string

const (
	KindCharacter UnitKind = "character"
	KindShip      UnitKind = "ship"
)

// Requirement is a single platoon slot demand: how many copies of a unit at a
// minimum relic level a location needs.
type Requirement struct {
	UnitID   string   `toml:"unit_id" json:"unit_id"`
	UnitName string   `toml:"unit_name" json:"unit_name"`
	MinRelic int      `toml:"min_relic" json:"min_relic"`
	Path     Path     `toml:"path" json:"path"`
	Location string   `toml:"territory" json:"territory"`
	Slots    int      `toml:"count" json:"count"`
	Kind     UnitKind `toml:"unit_type" json:"unit_type"`
}

// RequirementList is the externally authored platoon requirement file.
type RequirementList struct {
	Version      string        `toml:"version" json:"version"`
	LastUpdated  string        `toml:"last_updated" json:"last_updated"`
	Notes        string        `toml:"notes,omitempty" json:"notes,omitempty"`
	Requirements []Requirement `toml:"requirements" json:"requirements"`
}

// RelicByPhase maps a battle phase to the minimum relic level its platoons
// demand.
var RelicByPhase = map[int]int{
	1: 5,
	2: 6,
	3: 7,
	4: 8,
	5: 9,
}

// LocationPhase maps each location to its phase. Bonus locations carry a
// "b" suffix.
var LocationPhase = map[string]string{
	"Coruscant": "1",
	"Mustafar":  "1",
	"Corellia":  "1",

	"Bracca":   "2",
	"Geonosis": "2",
	"Felucia":  "2",

	"Kashyyyk": "3",
	"Dathomir": "3",
	"Tatooine": "3",
	"Zeffo":    "3b",

	"Lothal":                       "4",
	"Kessel":                       "4",
	"Haven-class Medical Station": "4",
	"Mandalore":                    "4b",

	"Scarif":   "5",
	"Malachor": "5",
	"Vandor":   "5",

	"Ring of Kafrene": "6",
	"Hoth":            "6",
	"Death Star":      "6",
}

// LoadRequirements reads a requirement list from path. TOML is the primary
// format; files ending in .json are decoded as JSON for compatibility with
// exported data.
func LoadRequirements(path string) (*RequirementList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements %s: %w", path, err)
	}

	var list RequirementList
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing requirements %s: %w", path, err)
		}
	} else {
		if err := toml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing requirements %s: %w", path, err)
		}
	}

	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("requirements %s: %w", path, err)
	}
	return &list, nil
}

// Validate checks every requirement for sane bounds: relic levels within
// [0, 9] and at least one slot.
func (l *RequirementList) Validate() error {
	for i, req := range l.Requirements {
		if req.UnitID == "" {
			return fmt.Errorf("requirement %d: missing unit_id", i)
		}
		if req.MinRelic < 0 || req.MinRelic > 9 {
			return fmt.Errorf("requirement %d (%s): min_relic %d out of range [0, 9]", i, req.UnitID, req.MinRelic)
		}
		if req.Slots < 1 {
			return fmt.Errorf("requirement %d (%s): count %d must be at least 1", i, req.UnitID, req.Slots)
		}
	}
	return nil
}

// phaseOrder lists battle phases in schedule order. Bonus planets open after
// their base phase, so a cutoff of "3" does not include "3b".
var phaseOrder = []string{"1", "2", "3", "3b", "4", "4b", "5", "5b", "6"}

// FilterByMaxPhase returns a copy of the list keeping only requirements whose
// location has opened by maxPhase in the schedule. Locations missing from
// LocationPhase are dropped. An unrecognized maxPhase leaves the list
// unfiltered.
func (l *RequirementList) FilterByMaxPhase(maxPhase string) *RequirementList {
	idx := -1
	for i, p := range phaseOrder {
		if p == maxPhase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return l
	}

	included := make(map[string]bool, idx+1)
	for _, p := range phaseOrder[:idx+1] {
		included[p] = true
	}

	filtered := &RequirementList{
		Version:     l.Version,
		LastUpdated: l.LastUpdated,
		Notes:       l.Notes,
	}
	for _, req := range l.Requirements {
		if included[LocationPhase[req.Location]] {
			filtered.Requirements = append(filtered.Requirements, req)
		}
	}
	return filtered
}
