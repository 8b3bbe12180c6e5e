// Package gear reduces craftable gear recipes to the raw salvage materials
// they ultimately consume, and rolls those needs up across a character's
// remaining gear tiers.
package gear

// CurrencySentinel is the ingredient id the gear API uses for credit costs.
// It contributes no material and is skipped during resolution.
const CurrencySentinel = "GRIND"

// NeedMap maps a tracked salvage id to the number of pieces required.
// Counts are never negative; keys are restricted to the tracked salvage set.
type NeedMap map[string]int

// Add accumulates every count from other into n.
func (n NeedMap) Add(other NeedMap) {
	for id, count := range other {
		n[id] += count
	}
}

// AddScaled accumulates other into n with every count multiplied by factor.
func (n NeedMap) AddScaled(other NeedMap, factor int) {
	for id, count := range other {
		n[id] += count * factor
	}
}

// Total returns the sum of all counts.
func (n NeedMap) Total() int {
	total := 0
	for _, count := range n {
		total += count
	}
	return total
}

// Clone returns an independent copy of n.
func (n NeedMap) Clone() NeedMap {
	out := make(NeedMap, len(n))
	for id, count := range n {
		out[id] = count
	}
	return out
}
