package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swgoh-tools/holotable/internal/platoon"
)

// GuildReport renders the coverage, gap, and bottleneck analyses.
type GuildReport struct{}

// NewGuildReport creates a guild report renderer.
func NewGuildReport() *GuildReport {
	return &GuildReport{}
}

// RenderHeader produces the guild identity card.
func (r *GuildReport) RenderHeader(matrix *platoon.CoverageMatrix) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render(matrix.GuildName))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("guild %s | %d members | %d units tracked",
		matrix.GuildID, matrix.MemberCount, len(matrix.Units))))
	b.WriteString("\n")
	return b.String()
}

// RenderLocationSummary produces per-location slot coverage, grouped by path.
func (r *GuildReport) RenderLocationSummary(summary map[platoon.LocationKey]platoon.SlotSummary) string {
	keys := make([]platoon.LocationKey, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		return keys[i].Location < keys[j].Location
	})

	var b strings.Builder
	b.WriteString(styleHeading.Render("SLOT COVERAGE BY LOCATION"))
	b.WriteString("\n")

	var lastPath platoon.Path
	for _, key := range keys {
		if key.Path != lastPath {
			b.WriteString("\n" + pathLabel(key.Path) + "\n")
			lastPath = key.Path
		}
		entry := summary[key]
		style := styleHealthy
		if entry.CoveredSlots < entry.TotalSlots {
			style = styleWarning
		}
		b.WriteString(fmt.Sprintf("  %-30s %s\n", key.Location,
			style.Render(fmt.Sprintf("%d/%d slots", entry.CoveredSlots, entry.TotalSlots))))
	}
	return b.String()
}

// RenderUnitCoverage shows how many members clear each relic threshold for
// every character demanded on a path. The unit pool is filtered to the
// path's alignment first, so a unit nobody can actually deploy there renders
// muted.
func (r *GuildReport) RenderUnitCoverage(matrix *platoon.CoverageMatrix, reqs *platoon.RequirementList) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("UNIT COVERAGE BY RELIC THRESHOLD"))
	b.WriteString("\n")

	for _, path := range []platoon.Path{platoon.PathDarkSide, platoon.PathNeutral, platoon.PathLightSide} {
		pool := platoon.FilterCharacters(platoon.FilterByPath(matrix, path))

		seen := make(map[string]bool)
		var ids []string
		for _, req := range reqs.Requirements {
			if req.Path != path || req.Kind == platoon.KindShip || seen[req.UnitID] {
				continue
			}
			seen[req.UnitID] = true
			ids = append(ids, req.UnitID)
		}
		if len(ids) == 0 {
			continue
		}

		b.WriteString("\n" + pathLabel(path) + "\n")
		for _, id := range ids {
			name := id
			cov, deployable := pool[id]
			if deployable {
				name = cov.UnitName
			}

			summary := matrix.CoverageSummary(id)
			cells := make([]string, 0, 5)
			for relic := 5; relic <= 9; relic++ {
				cells = append(cells, fmt.Sprintf("R%d:%-3d", relic, summary[relic]))
			}

			line := fmt.Sprintf("  %-30s %s", name, strings.Join(cells, " "))
			if !deployable {
				line = styleMuted.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// RenderCriticalGaps lists only the requirements short of the critical floor,
// with the members who do qualify.
func (r *GuildReport) RenderCriticalGaps(gaps []platoon.Gap) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("CRITICAL SHORTAGES"))
	b.WriteString("\n")

	if len(gaps) == 0 {
		b.WriteString(styleHealthy.Render("no requirement is critically short"))
		b.WriteString("\n")
		return b.String()
	}

	for _, gap := range gaps {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styleCritical.Render(fmt.Sprintf("[%s]", gap.Severity)),
			gap.UnitName,
			styleMuted.Render(fmt.Sprintf("R%d+ at %s/%s needs %d", gap.MinRelic, gap.Path, gap.Location, gap.SlotsNeeded)),
		))
		if len(gap.PlayerNames) == 0 {
			b.WriteString("      nobody qualifies\n")
		} else {
			b.WriteString("      qualified: " + strings.Join(gap.PlayerNames, ", ") + "\n")
		}
	}
	return b.String()
}

// RenderGaps produces the shortfall list. Critical gaps lead.
func (r *GuildReport) RenderGaps(gaps []platoon.Gap) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("UNFILLABLE PLATOON SLOTS"))
	b.WriteString("\n")

	if len(gaps) == 0 {
		b.WriteString(styleHealthy.Render("every requirement can be filled"))
		b.WriteString("\n")
		return b.String()
	}

	ordered := make([]platoon.Gap, len(gaps))
	copy(ordered, gaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity < ordered[j].Severity
	})

	for _, gap := range ordered {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			severityStyle(gap.Severity).Render(fmt.Sprintf("[%s]", gap.Severity)),
			gap.UnitName,
			styleMuted.Render(fmt.Sprintf("R%d+ at %s/%s", gap.MinRelic, gap.Path, gap.Location)),
		))
		b.WriteString(fmt.Sprintf("      %d of %d slots unfillable (%d players available)\n",
			gap.SlotsUnfillable, gap.SlotsNeeded, gap.PlayersAvailable))
	}
	return b.String()
}

// RenderBottlenecks produces the scarce-unit list, scarcest first.
func (r *GuildReport) RenderBottlenecks(units []platoon.ScarceUnit) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("SCARCE UNITS"))
	b.WriteString("\n")

	if len(units) == 0 {
		b.WriteString(styleHealthy.Render("no unit is owned by three or fewer members"))
		b.WriteString("\n")
		return b.String()
	}

	for _, u := range units {
		owner := fmt.Sprintf("%d owners", u.OwnerCount)
		switch {
		case u.IsSoleOwner():
			owner = "SOLE OWNER: " + u.OwnerNames[0]
		case u.OwnerCount == 0:
			owner = "NO OWNERS"
		}

		style := styleWarning
		if u.IsCritical() {
			style = styleCritical
		}

		b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(owner),
			fmt.Sprintf("%s (R%d+)", u.UnitName, u.MinRelic)))
		b.WriteString(styleMuted.Render(fmt.Sprintf("      %d slots across %s",
			u.TotalSlots, strings.Join(u.Locations, ", "))))
		b.WriteString("\n")
		if u.OwnerCount > 1 {
			b.WriteString(styleMuted.Render("      owned by " + strings.Join(u.OwnerNames, ", ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func pathLabel(p platoon.Path) string {
	switch p {
	case platoon.PathDarkSide:
		return styleCritical.Render("DARK SIDE")
	case platoon.PathLightSide:
		return styleHealthy.Render("LIGHT SIDE")
	default:
		return styleWarning.Render("NEUTRAL")
	}
}
