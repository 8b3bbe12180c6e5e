package gear

import (
	"errors"
	"fmt"

	"github.com/swgoh-tools/holotable/internal/swgoh"
)

// ErrCyclicRecipe is returned when a gear recipe's ingredient graph contains
// a cycle. The catalog is expected to be acyclic; a cycle means corrupt data
// and resolution fails fast instead of recursing unbounded.
var ErrCyclicRecipe = errors.New("cyclic gear recipe")

// Resolver reduces a gear id to the raw salvage quantities required to craft
// it. Results are memoized per gear id; the catalog is immutable for the life
// of the resolver, so the memo never goes stale.
type Resolver struct {
	catalog map[string]swgoh.GearPiece
	tracked map[string]bool
	memo    map[string]NeedMap
}

// NewResolver creates a resolver over a gear catalog. Only salvage ids in
// tracked ever appear in resolved NeedMaps; everything else reduces through.
func NewResolver(catalog map[string]swgoh.GearPiece, tracked []string) *Resolver {
	trackedSet := make(map[string]bool, len(tracked))
	for _, id := range tracked {
		trackedSet[id] = true
	}
	return &Resolver{
		catalog: catalog,
		tracked: trackedSet,
		memo:    make(map[string]NeedMap),
	}
}

// Resolve returns the tracked salvage required to craft one copy of gearID.
// An id missing from the catalog resolves to an empty map: stale rosters
// routinely reference gear the catalog no longer lists, and that must not
// abort a whole analysis. Returns ErrCyclicRecipe if the recipe graph loops.
func (r *Resolver) Resolve(gearID string) (NeedMap, error) {
	return r.resolve(gearID, make(map[string]bool))
}

// resolve walks the recipe tree below gearID. path holds the ids on the
// current recursion path for cycle detection; the memo is keyed by id alone,
// which is safe because a finished subtree is path-independent.
func (r *Resolver) resolve(gearID string, path map[string]bool) (NeedMap, error) {
	if cached, ok := r.memo[gearID]; ok {
		return cached.Clone(), nil
	}
	if path[gearID] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicRecipe, gearID)
	}

	piece, ok := r.catalog[gearID]
	if !ok {
		return NeedMap{}, nil
	}

	path[gearID] = true
	defer delete(path, gearID)

	needs := NeedMap{}
	if len(piece.Ingredients) == 0 {
		// A piece with no ingredients is itself a raw material.
		if r.tracked[gearID] {
			needs[gearID] = 1
		}
	} else {
		for _, ing := range piece.Ingredients {
			if ing.Gear == CurrencySentinel {
				continue
			}
			if r.tracked[ing.Gear] {
				needs[ing.Gear] += ing.Amount
				continue
			}
			sub, err := r.resolve(ing.Gear, path)
			if err != nil {
				return nil, err
			}
			// Shared sub-ingredients are summed once per parent path,
			// scaled by how many copies this parent consumes.
			needs.AddScaled(sub, ing.Amount)
		}
	}

	r.memo[gearID] = needs.Clone()
	return needs, nil
}
