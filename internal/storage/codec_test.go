package storage

import (
	"errors"
	"testing"

	"felogen/internal/model"
)

func TestIndividualRoundtrip(t *testing.T) {
	ind := model.Individual{
		VersionedRecord: CurrentVersion(),
		ID:              "cat-1",
		Name:            "Ash",
		Sex:             model.Female,
		Genotype: model.Genotype{
			"eumelanin": {"B", "b"},
			"red":       {"O", "o"},
		},
		BirthDate:  "2024-03-01",
		SireID:     "cat-0",
		BuildValue: 42,
		SizeValue:  61,
	}

	data, err := EncodeIndividual(ind)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeIndividual(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.ID != ind.ID || got.Name != ind.Name || got.Sex != ind.Sex {
		t.Fatalf("identity fields mismatch: %+v", got)
	}
	if got.BirthDate != ind.BirthDate || got.SireID != ind.SireID || got.DamID != "" {
		t.Fatalf("lineage fields mismatch: %+v", got)
	}
	if got.BuildValue != 42 || got.SizeValue != 61 {
		t.Fatalf("trait values mismatch: %+v", got)
	}
	if len(got.Genotype["eumelanin"]) != 2 || got.Genotype["eumelanin"][1] != "b" {
		t.Fatalf("genotype mismatch: %v", got.Genotype)
	}
	if got.WhitePercentage != nil {
		t.Fatalf("expected unsampled white percentage, got %v", *got.WhitePercentage)
	}
}

func TestDecodeIndividualRejectsVersionMismatch(t *testing.T) {
	ind := model.Individual{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 99, CodecVersion: CurrentCodecVersion},
		ID:              "cat-1",
		Sex:             model.Male,
	}

	data, err := EncodeIndividual(ind)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := DecodeIndividual(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestLitterRoundtrip(t *testing.T) {
	litter := model.LitterRecord{
		VersionedRecord: CurrentVersion(),
		ID:              "litter-1",
		SireID:          "cat-1",
		DamID:           "cat-2",
		OffspringIDs:    []string{"kit-1", "kit-2", "kit-3"},
		BirthDate:       "2025-06-15",
	}

	data, err := EncodeLitter(litter)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeLitter(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.ID != litter.ID || got.SireID != litter.SireID || got.DamID != litter.DamID {
		t.Fatalf("litter fields mismatch: %+v", got)
	}
	if len(got.OffspringIDs) != 3 || got.OffspringIDs[2] != "kit-3" {
		t.Fatalf("offspring mismatch: %v", got.OffspringIDs)
	}
}

func TestDecodeLitterRejectsVersionMismatch(t *testing.T) {
	litter := model.LitterRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: 99},
		ID:              "litter-1",
	}

	data, err := EncodeLitter(litter)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := DecodeLitter(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestGeneCatalogRoundtrip(t *testing.T) {
	catalog := map[string]model.GeneDefinition{
		"eumelanin": {
			ID:      "eumelanin",
			Name:    "Eumelanin",
			Alleles: []string{"B", "b", "bl"},
			Dominance: map[string]int{
				"B": 3, "b": 2, "bl": 1,
			},
			Weights: map[string]float64{
				"B": 0.7, "b": 0.2, "bl": 0.1,
			},
		},
		"red": {
			ID:      "red",
			Name:    "Red",
			Alleles: []string{"O", "o"},
			XLinked: true,
		},
	}

	data, err := EncodeGeneCatalog(catalog)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeGeneCatalog(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 genes, got %d", len(got))
	}

	// The id is not serialized; the decoder must restore it from the key.
	if got["red"].ID != "red" || !got["red"].XLinked {
		t.Fatalf("red gene mismatch: %+v", got["red"])
	}
	if got["eumelanin"].Dominance["bl"] != 1 || got["eumelanin"].Weights["B"] != 0.7 {
		t.Fatalf("eumelanin gene mismatch: %+v", got["eumelanin"])
	}
}
