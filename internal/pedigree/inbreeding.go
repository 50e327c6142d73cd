package pedigree

import (
	"math"
	"sort"
	"sync"

	"felogen/internal/model"
)

// DefaultInbredThreshold is first-cousin level inbreeding.
const DefaultInbredThreshold = 0.0625

const pathDepth = 10

// InbreedingCalculator computes Wright's coefficient F with an explicit
// per-individual cache. The cache is owned here, not shared globally; the
// registry invalidates it through InvalidateCache on every population
// mutation, since one parentage edit can change F for arbitrarily many
// descendants.
type InbreedingCalculator struct {
	Pop Population

	mu         sync.Mutex
	cache      map[string]float64
	inProgress map[string]bool
}

func NewInbreedingCalculator(pop Population) *InbreedingCalculator {
	return &InbreedingCalculator{
		Pop:        pop,
		cache:      make(map[string]float64),
		inProgress: make(map[string]bool),
	}
}

// InvalidateCache drops every memoized coefficient. Selective eviction
// would need the full descendant closure of the edited individual, which
// costs more than recomputing.
func (c *InbreedingCalculator) InvalidateCache() {
	c.mu.Lock()
	c.cache = make(map[string]float64)
	c.mu.Unlock()
}

// Coefficient returns Wright's F for the individual: the summed path
// contributions 0.5^(len(sirePath)+len(damPath)) * (1+F_ancestor) over all
// simple path pairs to each common ancestor of the parents. Zero when
// either parent is unknown or the parents share no ancestors.
func (c *InbreedingCalculator) Coefficient(id string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coefficient(id)
}

// coefficient holds the lock for the whole recursive computation; the
// inProgress set breaks mutual recursion on corrupt cyclic pedigrees.
func (c *InbreedingCalculator) coefficient(id string) float64 {
	if f, ok := c.cache[id]; ok {
		return f
	}
	if c.inProgress[id] {
		return 0
	}

	ind, ok := c.Pop.Get(id)
	if !ok || ind.SireID == "" || ind.DamID == "" {
		return 0
	}

	common := commonAncestors(c.Pop, ind.SireID, ind.DamID, ancestorDepth)
	if len(common) == 0 {
		c.cache[id] = 0
		return 0
	}

	c.inProgress[id] = true
	defer delete(c.inProgress, id)

	f := 0.0
	for ancestorID := range common {
		sirePaths := findAllPaths(c.Pop, ind.SireID, ancestorID, nil, 0)
		damPaths := findAllPaths(c.Pop, ind.DamID, ancestorID, nil, 0)
		ancestorF := c.coefficient(ancestorID)

		for _, ps := range sirePaths {
			for _, pd := range damPaths {
				n := len(ps) + len(pd)
				f += math.Pow(0.5, float64(n)) * (1 + ancestorF)
			}
		}
	}

	c.cache[id] = f
	return f
}

// CommonAncestors returns the sorted intersection of the two individuals'
// bounded ancestor sets.
func (c *InbreedingCalculator) CommonAncestors(id1, id2 string) []string {
	common := commonAncestors(c.Pop, id1, id2, ancestorDepth)
	ids := make([]string, 0, len(common))
	for id := range common {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindInbred reports every individual with both parents known whose F
// exceeds the threshold, sorted descending by coefficient.
func (c *InbreedingCalculator) FindInbred(threshold float64) []model.InbredRecord {
	var out []model.InbredRecord
	for _, ind := range c.Pop.All() {
		if ind.SireID == "" || ind.DamID == "" {
			continue
		}
		f := c.Coefficient(ind.ID)
		if f <= threshold {
			continue
		}
		out = append(out, model.InbredRecord{
			ID:              ind.ID,
			Name:            ind.Name,
			Coefficient:     f,
			CommonAncestors: c.CommonAncestors(ind.SireID, ind.DamID),
			Relationship:    DescribeRelationship(f),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coefficient != out[j].Coefficient {
			return out[i].Coefficient > out[j].Coefficient
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DescribeRelationship buckets a coefficient into its closest mating
// relationship.
func DescribeRelationship(f float64) string {
	switch {
	case f >= 0.25:
		return "Parent-offspring or sibling mating"
	case f >= 0.125:
		return "Half-sibling or grandparent-grandchild mating"
	case f >= 0.0625:
		return "First cousin mating"
	case f >= 0.03125:
		return "Second cousin mating"
	default:
		return "Distant relationship"
	}
}

func commonAncestors(pop Population, id1, id2 string, depth int) map[string]struct{} {
	a1 := AncestorSet(pop, id1, depth)
	a2 := AncestorSet(pop, id2, depth)
	common := make(map[string]struct{})
	for id := range a1 {
		if _, ok := a2[id]; ok {
			common[id] = struct{}{}
		}
	}
	return common
}

// findAllPaths enumerates all simple paths from start up to target. A path
// is the node sequence excluding the target, so its length equals the
// generation count.
func findAllPaths(pop Population, start, target string, current []string, depth int) [][]string {
	if depth > pathDepth {
		return nil
	}
	if start == target {
		path := make([]string, len(current))
		copy(path, current)
		return [][]string{path}
	}
	ind, ok := pop.Get(start)
	if !ok {
		return nil
	}

	var paths [][]string
	if ind.SireID != "" && !contains(current, ind.SireID) {
		paths = append(paths, findAllPaths(pop, ind.SireID, target, append(current, start), depth+1)...)
	}
	if ind.DamID != "" && !contains(current, ind.DamID) {
		paths = append(paths, findAllPaths(pop, ind.DamID, target, append(current, start), depth+1)...)
	}
	return paths
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
