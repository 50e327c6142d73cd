package pedigree

import (
	"sort"

	"felogen/internal/model"
)

// DefaultCompletenessGenerations is how far back completeness is scored
// unless the caller asks otherwise.
const DefaultCompletenessGenerations = 5

// Completeness scores how much of the individual's pedigree is recorded
// over the given number of generations: known ancestors against the full
// binary tree of 2^1+...+2^N slots, plus a per-generation breakdown.
func Completeness(pop Population, id string, generations int) model.Completeness {
	expected := 0
	for i := 1; i <= generations; i++ {
		expected += 1 << i
	}
	known := len(AncestorSet(pop, id, generations))

	result := model.Completeness{
		ID:                id,
		Generations:       generations,
		ExpectedAncestors: expected,
		KnownAncestors:    known,
	}
	if expected > 0 {
		result.Index = float64(known) / float64(expected)
	}

	for gen := 1; gen <= generations; gen++ {
		slots := 1 << gen
		actual := len(ancestorsAtGeneration(pop, id, gen))
		entry := model.GenerationCompleteness{
			Generation: gen,
			Expected:   slots,
			Actual:     actual,
		}
		entry.Percentage = float64(actual) / float64(slots) * 100
		result.ByGeneration = append(result.ByGeneration, entry)
	}
	return result
}

// ancestorsAtGeneration walks exactly gen hops up both parent lines. An
// ancestor occupying multiple slots at the same generation is counted once.
func ancestorsAtGeneration(pop Population, id string, gen int) map[string]struct{} {
	if gen == 0 {
		return map[string]struct{}{id: {}}
	}
	ind, ok := pop.Get(id)
	if !ok {
		return nil
	}

	out := make(map[string]struct{})
	if gen == 1 {
		if ind.SireID != "" {
			out[ind.SireID] = struct{}{}
		}
		if ind.DamID != "" {
			out[ind.DamID] = struct{}{}
		}
		return out
	}
	if ind.SireID != "" {
		for a := range ancestorsAtGeneration(pop, ind.SireID, gen-1) {
			out[a] = struct{}{}
		}
	}
	if ind.DamID != "" {
		for a := range ancestorsAtGeneration(pop, ind.DamID, gen-1) {
			out[a] = struct{}{}
		}
	}
	return out
}

// FindLoops reports every ancestor of the individual that is reachable
// through more than one distinct line, with the number of paths.
func FindLoops(pop Population, id string) []model.PedigreeLoop {
	var out []model.PedigreeLoop
	for ancestorID := range AncestorSet(pop, id, ancestorDepth) {
		paths := countPaths(pop, id, ancestorID, 0)
		if paths <= 1 {
			continue
		}
		name := ""
		if ancestor, ok := pop.Get(ancestorID); ok {
			name = ancestor.Name
		}
		out = append(out, model.PedigreeLoop{
			AncestorID:  ancestorID,
			Name:        name,
			Occurrences: paths,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].AncestorID < out[j].AncestorID
	})
	return out
}

// countPaths counts the distinct depth-bounded descent lines from the
// individual to the ancestor.
func countPaths(pop Population, id, ancestorID string, depth int) int {
	if depth > pathDepth {
		return 0
	}
	if id == ancestorID {
		return 1
	}
	ind, ok := pop.Get(id)
	if !ok {
		return 0
	}

	count := 0
	if ind.SireID != "" {
		count += countPaths(pop, ind.SireID, ancestorID, depth+1)
	}
	if ind.DamID != "" {
		count += countPaths(pop, ind.DamID, ancestorID, depth+1)
	}
	return count
}
