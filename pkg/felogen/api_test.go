package felogen

import (
	"context"
	"errors"
	"testing"

	"felogen/internal/genedef"
	"felogen/internal/model"
	"felogen/internal/validation"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory", Seed: 42})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client
}

func registerFounder(t *testing.T, c *Client, id string, sex model.Sex) model.Individual {
	t.Helper()
	ind, err := c.breeder.RandomFounder(sex)
	if err != nil {
		t.Fatalf("random founder: %v", err)
	}
	ind.ID = id
	if _, err := c.AddIndividual(context.Background(), ind); err != nil {
		t.Fatalf("add %s: %v", id, err)
	}
	return ind
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	registerFounder(t, client, "sire", model.Male)
	registerFounder(t, client, "dam", model.Female)

	if got := client.ListIndividuals(); len(got) != 2 {
		t.Fatalf("expected 2 individuals, got %d", len(got))
	}

	ind, err := client.GetIndividual("sire")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ind.Sex != model.Male {
		t.Fatalf("unexpected sex: %s", ind.Sex)
	}

	if _, err := client.GetIndividual("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := client.RemoveIndividual(ctx, "dam"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := client.ListIndividuals(); len(got) != 1 {
		t.Fatalf("expected 1 individual after remove, got %d", len(got))
	}
}

func TestClientAddRejectsInvalidIndividual(t *testing.T) {
	client := newTestClient(t)

	report, err := client.AddIndividual(context.Background(), model.Individual{
		ID:       "bad",
		Sex:      "neither",
		Genotype: model.Genotype{"red": {"O", "O", "O"}},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if report == nil || !report.HasErrors() {
		t.Fatalf("expected error findings, got %+v", report)
	}
	if len(client.ListIndividuals()) != 0 {
		t.Fatal("invalid individual must not be registered")
	}
}

func TestClientBreedRecordsLitter(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	registerFounder(t, client, "sire", model.Male)
	registerFounder(t, client, "dam", model.Female)

	result, err := client.Breed(ctx, BreedRequest{
		SireID:     "sire",
		DamID:      "dam",
		LitterSize: 4,
		BirthDate:  "2026-05-01",
	})
	if err != nil {
		t.Fatalf("breed: %v", err)
	}

	if len(result.Kits) != 4 {
		t.Fatalf("expected 4 kits, got %d", len(result.Kits))
	}
	for _, kit := range result.Kits {
		if kit.SireID != "sire" || kit.DamID != "dam" {
			t.Fatalf("kit parents not recorded: %+v", kit)
		}
		if _, err := client.GetIndividual(kit.ID); err != nil {
			t.Fatalf("kit %s not registered: %v", kit.ID, err)
		}
	}

	litters, err := client.Litters(ctx)
	if err != nil {
		t.Fatalf("litters: %v", err)
	}
	if len(litters) != 1 || len(litters[0].OffspringIDs) != 4 {
		t.Fatalf("unexpected litter history: %+v", litters)
	}
	if litters[0].BirthDate != "2026-05-01" {
		t.Fatalf("unexpected litter date: %s", litters[0].BirthDate)
	}
}

func TestClientBreedBlocksCloseKinUnlessAllowed(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	registerFounder(t, client, "sire", model.Male)
	registerFounder(t, client, "dam", model.Female)

	result, err := client.Breed(ctx, BreedRequest{SireID: "sire", DamID: "dam", LitterSize: 6})
	if err != nil {
		t.Fatalf("breed: %v", err)
	}

	var daughter string
	for _, kit := range result.Kits {
		if kit.Sex == model.Female {
			daughter = kit.ID
			break
		}
	}
	if daughter == "" {
		t.Skip("no female kit at this seed")
	}

	if _, err := client.Breed(ctx, BreedRequest{SireID: "sire", DamID: daughter, LitterSize: 1}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected close-kin pairing to be blocked, got %v", err)
	}

	allowed, err := client.Breed(ctx, BreedRequest{
		SireID:       "sire",
		DamID:        daughter,
		LitterSize:   1,
		AllowRelated: true,
	})
	if err != nil {
		t.Fatalf("allowed breed: %v", err)
	}
	if len(allowed.Kits) != 1 {
		t.Fatalf("expected 1 kit, got %d", len(allowed.Kits))
	}
	found := false
	for _, f := range allowed.Report.Errors() {
		if f.Code == validation.CodeCloseInbreeding {
			found = true
		}
	}
	if !found {
		t.Fatal("close-inbreeding finding should still be reported")
	}
}

func TestClientPhenotypeFixesWhitePercentage(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	ind := registerFounder(t, client, "cat", model.Female)
	ind.Genotype[genedef.GeneWhite] = []string{genedef.AlleleWhiteSpotting, "w"}
	if !client.pop.Update(ind) {
		t.Fatal("update failed")
	}

	first, err := client.Phenotype(ctx, "cat")
	if err != nil {
		t.Fatalf("phenotype: %v", err)
	}
	if first.Coat == "" || first.EyeColor == "" {
		t.Fatalf("incomplete summary: %+v", first)
	}
	if first.WhitePercentage < 1 || first.WhitePercentage > 50 {
		t.Fatalf("single spotting allele out of range: %d", first.WhitePercentage)
	}

	for i := 0; i < 5; i++ {
		again, err := client.Phenotype(ctx, "cat")
		if err != nil {
			t.Fatalf("phenotype: %v", err)
		}
		if again.WhitePercentage != first.WhitePercentage {
			t.Fatalf("white percentage drifted: %d vs %d", again.WhitePercentage, first.WhitePercentage)
		}
	}

	stored, ok, err := client.store.GetIndividual(ctx, "cat")
	if err != nil || !ok {
		t.Fatalf("stored individual: ok=%v err=%v", ok, err)
	}
	if stored.WhitePercentage == nil || *stored.WhitePercentage != first.WhitePercentage {
		t.Fatalf("sampled percentage not persisted: %+v", stored.WhitePercentage)
	}
}

func TestClientPedigreeQueries(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	registerFounder(t, client, "sire", model.Male)
	registerFounder(t, client, "dam", model.Female)
	result, err := client.Breed(ctx, BreedRequest{SireID: "sire", DamID: "dam", LitterSize: 2})
	if err != nil {
		t.Fatalf("breed: %v", err)
	}
	kit := result.Kits[0].ID

	related, err := client.Relatedness(kit, result.Kits[1].ID, 0)
	if err != nil {
		t.Fatalf("relatedness: %v", err)
	}
	if !related {
		t.Fatal("full siblings must be related")
	}

	f, err := client.InbreedingCoefficient(kit)
	if err != nil {
		t.Fatalf("inbreeding: %v", err)
	}
	if f != 0 {
		t.Fatalf("founder cross must be outbred, got %f", f)
	}

	completeness, err := client.Completeness(kit, 0)
	if err != nil {
		t.Fatalf("completeness: %v", err)
	}
	if completeness.KnownAncestors != 2 {
		t.Fatalf("expected 2 known ancestors, got %d", completeness.KnownAncestors)
	}

	loops, err := client.PedigreeLoops(kit)
	if err != nil {
		t.Fatalf("loops: %v", err)
	}
	if len(loops) != 0 {
		t.Fatalf("expected no loops, got %+v", loops)
	}

	report := client.DiversityReport()
	if report.Population.Total != 4 {
		t.Fatalf("expected population of 4, got %d", report.Population.Total)
	}
	if report.Status == "" {
		t.Fatal("expected diversity status")
	}
}

func TestClientGeneAdmin(t *testing.T) {
	client := newTestClient(t)

	client.AddGene(model.GeneDefinition{
		ID:      "fold",
		Name:    "Ear Fold",
		Alleles: []string{"Fd", "fd"},
	})
	if _, ok := client.Genes()["fold"]; !ok {
		t.Fatal("added gene missing from catalog")
	}

	if err := client.RemoveGene("fold"); err != nil {
		t.Fatalf("remove gene: %v", err)
	}
	if err := client.RemoveGene("fold"); !errors.Is(err, ErrGeneNotFound) {
		t.Fatalf("expected ErrGeneNotFound, got %v", err)
	}
}

func TestClientSaveAndReload(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	registerFounder(t, client, "cat", model.Female)
	client.AddGene(model.GeneDefinition{ID: "fold", Alleles: []string{"Fd", "fd"}})
	if err := client.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	inds, err := client.store.ListIndividuals(ctx)
	if err != nil {
		t.Fatalf("list stored: %v", err)
	}
	if len(inds) != 1 || inds[0].ID != "cat" {
		t.Fatalf("unexpected stored individuals: %+v", inds)
	}

	catalog, ok, err := client.store.GetGeneCatalog(ctx)
	if err != nil || !ok {
		t.Fatalf("stored catalog: ok=%v err=%v", ok, err)
	}
	if _, ok := catalog["fold"]; !ok {
		t.Fatal("admin gene missing from stored catalog")
	}
}
