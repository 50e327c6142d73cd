package breeding

import "felogen/internal/model"

// Lookup resolves an individual by id. Dangling ids resolve to absent and
// are treated as unknown ancestors.
type Lookup interface {
	Get(id string) (model.Individual, bool)
}

const DefaultRelatednessGenerations = 3

// CheckRelatedness reports whether two individuals are kin within
// maxGenerations hops: either one is an ancestor of the other, or their
// ancestor sets share a member other than the pair themselves. The walk is
// depth-bounded and tolerates cyclic or corrupt pedigree data.
func CheckRelatedness(reg Lookup, id1, id2 string, maxGenerations int) bool {
	if id1 == "" || id2 == "" || id1 == id2 {
		return false
	}

	a1 := ancestorClosure(reg, id1, maxGenerations)
	a2 := ancestorClosure(reg, id2, maxGenerations)

	if _, ok := a1[id2]; ok {
		return true
	}
	if _, ok := a2[id1]; ok {
		return true
	}
	for id := range a1 {
		if id == id1 || id == id2 {
			continue
		}
		if _, ok := a2[id]; ok {
			return true
		}
	}
	return false
}

// ancestorClosure collects every ancestor id referenced within the
// generation bound, the start individual excluded. Parent ids count even
// when the parent record itself is missing.
func ancestorClosure(reg Lookup, id string, maxGenerations int) map[string]struct{} {
	out := make(map[string]struct{})
	collectAncestors(reg, id, 0, maxGenerations, out)
	return out
}

func collectAncestors(reg Lookup, id string, depth, maxDepth int, out map[string]struct{}) {
	if depth >= maxDepth {
		return
	}
	ind, ok := reg.Get(id)
	if !ok {
		return
	}
	if ind.SireID != "" {
		out[ind.SireID] = struct{}{}
		collectAncestors(reg, ind.SireID, depth+1, maxDepth, out)
	}
	if ind.DamID != "" {
		out[ind.DamID] = struct{}{}
		collectAncestors(reg, ind.DamID, depth+1, maxDepth, out)
	}
}
