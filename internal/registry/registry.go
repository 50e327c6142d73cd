// Package registry holds the in-memory population and is the single writer
// for individual records. Analytics caches subscribe to mutation events so a
// parentage edit invalidates downstream coefficients.
package registry

import (
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"felogen/internal/model"
)

type Registry struct {
	mu       sync.RWMutex
	cats     map[string]model.Individual
	onMutate []func()
}

func New() *Registry {
	return &Registry{cats: make(map[string]model.Individual)}
}

// OnMutate registers a hook invoked after every population change. Used to
// invalidate pedigree coefficient caches.
func (r *Registry) OnMutate(fn func()) {
	r.mu.Lock()
	r.onMutate = append(r.onMutate, fn)
	r.mu.Unlock()
}

// Add inserts or replaces the individual under its id.
func (r *Registry) Add(ind model.Individual) {
	r.mu.Lock()
	r.cats[ind.ID] = ind
	hooks := r.onMutate
	r.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Update replaces an existing record; it reports false when the id is
// unknown.
func (r *Registry) Update(ind model.Individual) bool {
	r.mu.Lock()
	_, ok := r.cats[ind.ID]
	if ok {
		r.cats[ind.ID] = ind
	}
	hooks := r.onMutate
	r.mu.Unlock()
	if ok {
		for _, fn := range hooks {
			fn()
		}
	}
	return ok
}

// Remove deletes the record. Descendants keep their dangling parent ids;
// walks treat those as unknown ancestors.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	_, ok := r.cats[id]
	delete(r.cats, id)
	hooks := r.onMutate
	r.mu.Unlock()
	if ok {
		for _, fn := range hooks {
			fn()
		}
	}
	return ok
}

func (r *Registry) Get(id string) (model.Individual, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ind, ok := r.cats[id]
	return ind, ok
}

// All returns every individual in id order.
func (r *Registry) All() []model.Individual {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := maps.Keys(r.cats)
	slices.Sort(ids)
	out := make([]model.Individual, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.cats[id])
	}
	return out
}

func (r *Registry) Males() []model.Individual {
	return r.filter(func(ind model.Individual) bool { return ind.Sex == model.Male })
}

func (r *Registry) Females() []model.Individual {
	return r.filter(func(ind model.Individual) bool { return ind.Sex == model.Female })
}

// Offspring returns every individual naming the given id as sire or dam.
func (r *Registry) Offspring(parentID string) []model.Individual {
	return r.filter(func(ind model.Individual) bool {
		return ind.SireID == parentID || ind.DamID == parentID
	})
}

// Parents resolves both parents; either may be absent.
func (r *Registry) Parents(id string) (sire, dam model.Individual, sireOK, damOK bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ind, ok := r.cats[id]
	if !ok {
		return model.Individual{}, model.Individual{}, false, false
	}
	sire, sireOK = r.cats[ind.SireID]
	dam, damOK = r.cats[ind.DamID]
	return sire, dam, sireOK, damOK
}

// Search matches the query case-insensitively against id and name.
func (r *Registry) Search(query string) []model.Individual {
	query = strings.ToLower(query)
	return r.filter(func(ind model.Individual) bool {
		return strings.Contains(strings.ToLower(ind.ID+" "+ind.Name), query)
	})
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cats)
}

func (r *Registry) Clear() {
	r.mu.Lock()
	r.cats = make(map[string]model.Individual)
	hooks := r.onMutate
	r.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Load replaces the whole population, used when restoring from storage.
func (r *Registry) Load(inds []model.Individual) {
	r.mu.Lock()
	r.cats = make(map[string]model.Individual, len(inds))
	for _, ind := range inds {
		r.cats[ind.ID] = ind
	}
	hooks := r.onMutate
	r.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

func (r *Registry) filter(keep func(model.Individual) bool) []model.Individual {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := maps.Keys(r.cats)
	slices.Sort(ids)
	out := make([]model.Individual, 0, len(ids))
	for _, id := range ids {
		if ind := r.cats[id]; keep(ind) {
			out = append(out, ind)
		}
	}
	return out
}
