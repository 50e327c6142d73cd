package storage

import (
	"context"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"felogen/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	individuals map[string]model.Individual
	litters     map[string]model.LitterRecord
	catalog     map[string]model.GeneDefinition
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.individuals = make(map[string]model.Individual)
	s.litters = make(map[string]model.LitterRecord)
	s.catalog = nil
	return nil
}

func (s *MemoryStore) SaveIndividual(_ context.Context, ind model.Individual) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.individuals[ind.ID] = ind
	return nil
}

func (s *MemoryStore) GetIndividual(_ context.Context, id string) (model.Individual, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ind, ok := s.individuals[id]
	return ind, ok, nil
}

func (s *MemoryStore) ListIndividuals(_ context.Context) ([]model.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := maps.Keys(s.individuals)
	slices.Sort(ids)
	out := make([]model.Individual, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.individuals[id])
	}
	return out, nil
}

func (s *MemoryStore) DeleteIndividual(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.individuals, id)
	return nil
}

func (s *MemoryStore) SaveGeneCatalog(_ context.Context, catalog map[string]model.GeneDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]model.GeneDefinition, len(catalog))
	for id, def := range catalog {
		copied[id] = def
	}
	s.catalog = copied
	return nil
}

func (s *MemoryStore) GetGeneCatalog(_ context.Context) (map[string]model.GeneDefinition, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil, false, nil
	}
	copied := make(map[string]model.GeneDefinition, len(s.catalog))
	for id, def := range s.catalog {
		copied[id] = def
	}
	return copied, true, nil
}

func (s *MemoryStore) SaveLitter(_ context.Context, litter model.LitterRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.litters[litter.ID] = litter
	return nil
}

func (s *MemoryStore) ListLitters(_ context.Context) ([]model.LitterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := maps.Keys(s.litters)
	slices.Sort(ids)
	out := make([]model.LitterRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.litters[id])
	}
	return out, nil
}
