package genedef

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"felogen/internal/model"
)

// Store holds gene definitions keyed by gene id. Lookups on unknown ids
// return explicit absent results; dominance and description resolution fall
// back to defaults rather than failing on incomplete data.
type Store struct {
	mu    sync.RWMutex
	genes map[string]model.GeneDefinition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{genes: make(map[string]model.GeneDefinition)}
}

// NewDefaultStore returns a store preloaded with the built-in gene catalog.
func NewDefaultStore() *Store {
	s := NewStore()
	for _, def := range defaultCatalog() {
		s.genes[def.ID] = def
	}
	return s
}

func (s *Store) Get(geneID string) (model.GeneDefinition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.genes[geneID]
	return def, ok
}

// GeneIDs returns all gene ids in sorted order.
func (s *Store) GeneIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := maps.Keys(s.genes)
	slices.Sort(ids)
	return ids
}

// Dominant resolves which of the given alleles expresses. Rank defaults to 0
// for alleles without an entry; ties resolve to the first argument. A single
// allele resolves to itself, and an unknown gene resolves to the first
// allele given.
func (s *Store) Dominant(geneID string, alleles []string) string {
	if len(alleles) == 0 {
		return ""
	}
	if len(alleles) == 1 {
		return alleles[0]
	}

	s.mu.RLock()
	def, ok := s.genes[geneID]
	s.mu.RUnlock()
	if !ok {
		return alleles[0]
	}

	if def.Dominance[alleles[0]] >= def.Dominance[alleles[1]] {
		return alleles[0]
	}
	return alleles[1]
}

// Describe returns the human-readable description of an allele, or the raw
// symbol when none is registered.
func (s *Store) Describe(geneID, allele string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if def, ok := s.genes[geneID]; ok {
		if desc, ok := def.Descriptions[allele]; ok {
			return desc
		}
	}
	return allele
}

func (s *Store) IsXLinked(geneID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.genes[geneID].XLinked
}

// PigmentContribution returns the numeric contribution of one allele at an
// eye-pigment or lipochrome locus, 0 for anything else.
func (s *Store) PigmentContribution(geneID, allele string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.genes[geneID]
	if !ok || def.PigmentContribution == nil {
		return 0
	}
	return def.PigmentContribution[allele]
}

// Add registers or replaces a gene definition. No referential-integrity
// checking against in-use genotypes happens here; that is the validator's
// concern.
func (s *Store) Add(def model.GeneDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.genes[def.ID] = def
}

// Update replaces an existing definition and reports whether it was present.
func (s *Store) Update(def model.GeneDefinition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.genes[def.ID]; !ok {
		return false
	}
	s.genes[def.ID] = def
	return true
}

// Remove deletes a definition and reports whether it was present.
func (s *Store) Remove(geneID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.genes[geneID]; !ok {
		return false
	}
	delete(s.genes, geneID)
	return true
}

// Snapshot returns a copy of the full catalog keyed by gene id.
func (s *Store) Snapshot() map[string]model.GeneDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.GeneDefinition, len(s.genes))
	for id, def := range s.genes {
		out[id] = def
	}
	return out
}
