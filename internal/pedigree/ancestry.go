// Package pedigree computes population-genetics metrics over the ancestry
// graph: diversity statistics, Wright's inbreeding coefficient, completeness
// and loop detection. Every walk is depth-bounded so malformed or cyclic
// data terminates with a partial result instead of recursing forever.
package pedigree

import "felogen/internal/model"

// Population is the read surface the analytics need from the registry.
type Population interface {
	Get(id string) (model.Individual, bool)
	All() []model.Individual
	Males() []model.Individual
	Females() []model.Individual
	Offspring(parentID string) []model.Individual
}

// Depth bounds for the recursive walks.
const (
	ancestorDepth     = 10
	contributionDepth = 20
	circularDepth     = 20
)

// AncestorSet collects every known ancestor id of the individual up to the
// given depth. Unknown ids terminate their line silently.
func AncestorSet(pop Population, id string, depth int) map[string]struct{} {
	out := make(map[string]struct{})
	collectAncestors(pop, id, depth, out)
	return out
}

func collectAncestors(pop Population, id string, depth int, out map[string]struct{}) {
	if depth <= 0 {
		return
	}
	ind, ok := pop.Get(id)
	if !ok {
		return
	}
	if ind.SireID != "" {
		out[ind.SireID] = struct{}{}
		collectAncestors(pop, ind.SireID, depth-1, out)
	}
	if ind.DamID != "" {
		out[ind.DamID] = struct{}{}
		collectAncestors(pop, ind.DamID, depth-1, out)
	}
}

// HasAncestor reports whether ancestorID appears anywhere in the
// individual's ancestry within maxDepth hops. An individual is considered
// its own ancestor at depth zero, which makes founder-contribution counts
// include the founder itself.
func HasAncestor(pop Population, id, ancestorID string, maxDepth int) bool {
	return hasAncestor(pop, id, ancestorID, 0, maxDepth)
}

func hasAncestor(pop Population, id, ancestorID string, depth, maxDepth int) bool {
	if depth > maxDepth {
		return false
	}
	if id == ancestorID {
		return true
	}
	ind, ok := pop.Get(id)
	if !ok {
		return false
	}
	if ind.SireID != "" {
		if ind.SireID == ancestorID || hasAncestor(pop, ind.SireID, ancestorID, depth+1, maxDepth) {
			return true
		}
	}
	if ind.DamID != "" {
		if ind.DamID == ancestorID || hasAncestor(pop, ind.DamID, ancestorID, depth+1, maxDepth) {
			return true
		}
	}
	return false
}

// IsCircular reports whether the individual appears in its own ancestry.
// The immediate self-parent case is a separate validation finding; this
// walk only flags returns at one generation or deeper.
func IsCircular(pop Population, id string) bool {
	return isOwnAncestor(pop, id, id, 0)
}

func isOwnAncestor(pop Population, id, target string, depth int) bool {
	if depth > circularDepth {
		return false
	}
	ind, ok := pop.Get(id)
	if !ok {
		return false
	}
	if depth > 0 && (ind.SireID == target || ind.DamID == target) {
		return true
	}
	if ind.SireID != "" && isOwnAncestor(pop, ind.SireID, target, depth+1) {
		return true
	}
	if ind.DamID != "" && isOwnAncestor(pop, ind.DamID, target, depth+1) {
		return true
	}
	return false
}
