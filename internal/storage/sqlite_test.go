//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"felogen/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "felogen.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteStoreIndividualLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	ind := testIndividual("cat-1", model.Female)
	ind.Name = "Cinder"
	if err := store.SaveIndividual(ctx, ind); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveIndividual(ctx, testIndividual("cat-0", model.Male)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetIndividual(ctx, "cat-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "Cinder" || got.Sex != model.Female {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	all, err := store.ListIndividuals(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "cat-0" {
		t.Fatalf("expected id-sorted listing, got %+v", all)
	}

	ind.Name = "Ember"
	if err := store.SaveIndividual(ctx, ind); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _, err = store.GetIndividual(ctx, "cat-1")
	if err != nil || got.Name != "Ember" {
		t.Fatalf("expected upsert to win: %+v err=%v", got, err)
	}

	if err := store.DeleteIndividual(ctx, "cat-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.GetIndividual(ctx, "cat-1"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestSQLiteStoreCatalogAndLitters(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	if _, ok, err := store.GetGeneCatalog(ctx); err != nil || ok {
		t.Fatalf("expected empty catalog: ok=%v err=%v", ok, err)
	}

	catalog := map[string]model.GeneDefinition{
		"agouti": {ID: "agouti", Alleles: []string{"A", "a", "Apb"}},
	}
	if err := store.SaveGeneCatalog(ctx, catalog); err != nil {
		t.Fatalf("save catalog: %v", err)
	}
	got, ok, err := store.GetGeneCatalog(ctx)
	if err != nil || !ok {
		t.Fatalf("get catalog: ok=%v err=%v", ok, err)
	}
	if got["agouti"].ID != "agouti" || len(got["agouti"].Alleles) != 3 {
		t.Fatalf("catalog mismatch: %+v", got)
	}

	litter := model.LitterRecord{
		VersionedRecord: CurrentVersion(),
		ID:              "litter-1",
		SireID:          "cat-0",
		DamID:           "cat-1",
		OffspringIDs:    []string{"kit-1"},
	}
	if err := store.SaveLitter(ctx, litter); err != nil {
		t.Fatalf("save litter: %v", err)
	}
	litters, err := store.ListLitters(ctx)
	if err != nil {
		t.Fatalf("list litters: %v", err)
	}
	if len(litters) != 1 || litters[0].DamID != "cat-1" {
		t.Fatalf("litter mismatch: %+v", litters)
	}
}
