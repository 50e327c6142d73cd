package registry

import (
	"testing"

	"felogen/internal/model"
)

func seed(r *Registry) {
	r.Add(model.Individual{ID: "cat-1", Name: "Astra", Sex: model.Female})
	r.Add(model.Individual{ID: "cat-2", Name: "Bandit", Sex: model.Male})
	r.Add(model.Individual{ID: "cat-3", Name: "Comet", Sex: model.Male, SireID: "cat-2", DamID: "cat-1"})
}

func TestCRUDAndLookups(t *testing.T) {
	r := New()
	seed(r)

	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	if _, ok := r.Get("cat-2"); !ok {
		t.Fatal("cat-2 should resolve")
	}
	if got := len(r.Males()); got != 2 {
		t.Fatalf("males = %d, want 2", got)
	}
	if got := len(r.Females()); got != 1 {
		t.Fatalf("females = %d, want 1", got)
	}

	if !r.Update(model.Individual{ID: "cat-2", Name: "Bandito", Sex: model.Male}) {
		t.Fatal("update of existing id must succeed")
	}
	if r.Update(model.Individual{ID: "ghost"}) {
		t.Fatal("update of unknown id must fail")
	}

	if !r.Remove("cat-3") || r.Remove("cat-3") {
		t.Fatal("remove should succeed once")
	}
}

func TestOffspringAndParents(t *testing.T) {
	r := New()
	seed(r)

	kids := r.Offspring("cat-1")
	if len(kids) != 1 || kids[0].ID != "cat-3" {
		t.Fatalf("offspring of cat-1 = %v", kids)
	}

	sire, dam, sireOK, damOK := r.Parents("cat-3")
	if !sireOK || !damOK || sire.ID != "cat-2" || dam.ID != "cat-1" {
		t.Fatalf("parents = %v/%v (%v/%v)", sire.ID, dam.ID, sireOK, damOK)
	}

	// Dangling sire id resolves as absent.
	r.Remove("cat-2")
	_, _, sireOK, damOK = r.Parents("cat-3")
	if sireOK || !damOK {
		t.Fatalf("after sire removal: sireOK=%v damOK=%v", sireOK, damOK)
	}
}

func TestAllIsSortedByID(t *testing.T) {
	r := New()
	r.Add(model.Individual{ID: "c"})
	r.Add(model.Individual{ID: "a"})
	r.Add(model.Individual{ID: "b"})

	all := r.All()
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "c" {
		t.Fatalf("All() not sorted: %v", all)
	}
}

func TestSearch(t *testing.T) {
	r := New()
	seed(r)

	if got := r.Search("band"); len(got) != 1 || got[0].ID != "cat-2" {
		t.Fatalf("search by name = %v", got)
	}
	if got := r.Search("CAT-"); len(got) != 3 {
		t.Fatalf("search must be case-insensitive, got %d hits", len(got))
	}
}

func TestMutationHooksFire(t *testing.T) {
	r := New()
	fired := 0
	r.OnMutate(func() { fired++ })

	r.Add(model.Individual{ID: "x"})
	r.Update(model.Individual{ID: "x", Name: "X"})
	r.Remove("x")
	r.Update(model.Individual{ID: "ghost"}) // no-op, no event
	r.Remove("ghost")                       // no-op, no event

	if fired != 3 {
		t.Fatalf("expected 3 mutation events, got %d", fired)
	}
}
