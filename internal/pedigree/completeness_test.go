package pedigree

import (
	"testing"

	"felogen/internal/model"
	"felogen/internal/registry"
)

func TestCompletenessTwoKnownGenerations(t *testing.T) {
	reg := registry.New()
	reg.Add(model.Individual{ID: "gp", Sex: model.Male})
	reg.Add(model.Individual{ID: "gq", Sex: model.Female})
	reg.Add(model.Individual{ID: "s", Sex: model.Male, SireID: "gp", DamID: "gq"})
	reg.Add(model.Individual{ID: "d", Sex: model.Female})
	reg.Add(model.Individual{ID: "c", Sex: model.Female, SireID: "s", DamID: "d"})

	result := Completeness(reg, "c", 3)
	if result.ExpectedAncestors != 2+4+8 {
		t.Fatalf("expected ancestors = %d", result.ExpectedAncestors)
	}
	// Known: s, d, gp, gq.
	if result.KnownAncestors != 4 {
		t.Fatalf("known ancestors = %d, want 4", result.KnownAncestors)
	}
	if !approx(result.Index, 4.0/14.0) {
		t.Fatalf("index = %v", result.Index)
	}

	if len(result.ByGeneration) != 3 {
		t.Fatalf("generations = %d", len(result.ByGeneration))
	}
	gen1, gen2, gen3 := result.ByGeneration[0], result.ByGeneration[1], result.ByGeneration[2]
	if gen1.Actual != 2 || gen1.Expected != 2 || !approx(gen1.Percentage, 100) {
		t.Fatalf("gen1 = %+v", gen1)
	}
	if gen2.Actual != 2 || gen2.Expected != 4 || !approx(gen2.Percentage, 50) {
		t.Fatalf("gen2 = %+v", gen2)
	}
	if gen3.Actual != 0 || gen3.Expected != 8 {
		t.Fatalf("gen3 = %+v", gen3)
	}
}

func TestCompletenessUnknownIndividual(t *testing.T) {
	reg := registry.New()
	result := Completeness(reg, "ghost", 2)
	if result.KnownAncestors != 0 || result.Index != 0 {
		t.Fatalf("ghost completeness = %+v", result)
	}
}

func TestFindLoopsOnDiamondPedigree(t *testing.T) {
	reg := registry.New()
	reg.Add(model.Individual{ID: "p", Name: "Primus", Sex: model.Male})
	reg.Add(model.Individual{ID: "q", Sex: model.Female})
	reg.Add(model.Individual{ID: "s", Sex: model.Male, SireID: "p", DamID: "q"})
	reg.Add(model.Individual{ID: "d", Sex: model.Female, SireID: "p", DamID: "q"})
	reg.Add(model.Individual{ID: "c", Sex: model.Female, SireID: "s", DamID: "d"})

	loops := FindLoops(reg, "c")
	if len(loops) != 2 {
		t.Fatalf("loops = %+v", loops)
	}
	for _, loop := range loops {
		if loop.Occurrences != 2 {
			t.Fatalf("loop %s occurrences = %d, want 2", loop.AncestorID, loop.Occurrences)
		}
	}
	if loops[0].AncestorID != "p" || loops[0].Name != "Primus" {
		t.Fatalf("first loop = %+v", loops[0])
	}

	// Single-line ancestors are not loops.
	if got := FindLoops(reg, "s"); len(got) != 0 {
		t.Fatalf("unexpected loops %+v", got)
	}
}

func TestIsCircular(t *testing.T) {
	reg := registry.New()
	reg.Add(model.Individual{ID: "a", Sex: model.Male, SireID: "b"})
	reg.Add(model.Individual{ID: "b", Sex: model.Male, SireID: "c"})
	reg.Add(model.Individual{ID: "c", Sex: model.Male, SireID: "a"})
	reg.Add(model.Individual{ID: "sane", Sex: model.Female, DamID: "ghost"})

	for _, id := range []string{"a", "b", "c"} {
		if !IsCircular(reg, id) {
			t.Fatalf("%s is in a cycle and must be flagged", id)
		}
	}
	if IsCircular(reg, "sane") {
		t.Fatal("acyclic individual flagged as circular")
	}
}
