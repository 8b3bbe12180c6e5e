package gear

import "github.com/swgoh-tools/holotable/internal/swgoh"

// Calculator rolls salvage needs up across a character's gear ladder, from
// the current tier through the configured maximum.
type Calculator struct {
	resolver *Resolver
	maxTier  int
}

// NewCalculator creates a calculator that resolves gear through resolver and
// stops counting at maxTier.
func NewCalculator(resolver *Resolver, maxTier int) *Calculator {
	return &Calculator{resolver: resolver, maxTier: maxTier}
}

// Compute sums the tracked salvage needed to take a character from
// currentTier to the maximum tier. At the current tier, gear already equipped
// offsets the requirement copy-for-copy: equipped holds the gear ids sitting
// in obtained slots right now, and duplicates in it satisfy duplicate
// requirements. Tiers above the current one count in full, tiers below it and
// beyond the maximum not at all.
func (c *Calculator) Compute(ladder []swgoh.GearTier, currentTier int, equipped []string) (NeedMap, error) {
	total := NeedMap{}
	if currentTier >= c.maxTier {
		return total, nil
	}

	equippedCount := make(map[string]int, len(equipped))
	for _, id := range equipped {
		equippedCount[id]++
	}

	for _, tier := range ladder {
		if tier.Tier < currentTier || tier.Tier > c.maxTier {
			continue
		}

		// seen tracks occurrences per gear id within the current tier so
		// that two copies equipped satisfy only two required copies.
		var seen map[string]int
		if tier.Tier == currentTier {
			seen = make(map[string]int)
		}

		for _, gearID := range tier.Gear {
			if seen != nil {
				seen[gearID]++
				if seen[gearID] <= equippedCount[gearID] {
					continue
				}
			}
			needs, err := c.resolver.Resolve(gearID)
			if err != nil {
				return nil, err
			}
			total.Add(needs)
		}
	}

	return total, nil
}
