package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swgoh-tools/holotable/internal/roster"
)

// SalvageDisplayNames maps the default tracked salvage ids to their in-game
// names.
var SalvageDisplayNames = map[string]string{
	"172Salvage": "Mk 7 Kyrotech Shock Prod Prototype Salvage",
	"173Salvage": "Mk 9 Kyrotech Battle Computer Prototype Salvage",
	"174Salvage": "Mk 5 Kyrotech Power Cell Prototype Salvage",
}

// SalvageReport renders the ranked per-character salvage needs.
type SalvageReport struct {
	// DisplayNames maps salvage ids to readable names; unknown ids render
	// as the raw id.
	DisplayNames map[string]string
}

// NewSalvageReport creates a report using the default display names.
func NewSalvageReport() *SalvageReport {
	return &SalvageReport{DisplayNames: SalvageDisplayNames}
}

// Render produces the full report for a player's ranked needs.
func (r *SalvageReport) Render(results []roster.CharacterNeed) string {
	var b strings.Builder

	if len(results) == 0 {
		b.WriteString("No characters need tracked salvage.\n")
		return b.String()
	}

	b.WriteString(styleHeading.Render("CHARACTERS WITH HIGHEST SALVAGE REQUIREMENTS"))
	b.WriteString("\n\n")

	grandTotal := 0
	for rank, row := range results {
		grandTotal += row.Total

		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styleRank.Render(fmt.Sprintf("#%d.", rank+1)),
			row.Name,
			styleMuted.Render(fmt.Sprintf("(currently G%d)", row.CurrentTier)),
		))
		b.WriteString(fmt.Sprintf("    total salvage: %s\n", styleTotal.Render(fmt.Sprintf("%d", row.Total))))

		for _, line := range r.breakdown(row) {
			b.WriteString("      - " + line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styleHeading.Render(fmt.Sprintf(
		"%d characters need salvage, %d pieces total", len(results), grandTotal)))
	b.WriteString("\n")
	return b.String()
}

// breakdown lists one character's needs, largest first, with stable order
// for equal counts.
func (r *SalvageReport) breakdown(row roster.CharacterNeed) []string {
	type entry struct {
		id    string
		count int
	}
	entries := make([]entry, 0, len(row.Needs))
	for id, count := range row.Needs {
		entries = append(entries, entry{id: id, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.id
		if display, ok := r.DisplayNames[e.id]; ok {
			name = display
		}
		lines = append(lines, fmt.Sprintf("%s: %d", name, e.count))
	}
	return lines
}
