package genedef

import (
	"encoding/json"
	"fmt"

	"felogen/internal/model"
)

// EncodeCatalog serialises the catalog as the external gene document:
// a JSON object mapping gene id to definition.
func EncodeCatalog(s *Store) ([]byte, error) {
	return json.MarshalIndent(s.Snapshot(), "", "  ")
}

// DecodeCatalog parses a gene document and returns a store holding it.
// Definitions referencing alleles outside their own allele set are rejected.
func DecodeCatalog(data []byte) (*Store, error) {
	var raw map[string]model.GeneDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode gene document: %w", err)
	}

	s := NewStore()
	for id, def := range raw {
		def.ID = id
		if err := checkAlleleClosure(def); err != nil {
			return nil, fmt.Errorf("gene %s: %w", id, err)
		}
		s.genes[id] = def
	}
	return s, nil
}

func checkAlleleClosure(def model.GeneDefinition) error {
	known := make(map[string]struct{}, len(def.Alleles))
	for _, a := range def.Alleles {
		known[a] = struct{}{}
	}
	for a := range def.Dominance {
		if _, ok := known[a]; !ok {
			return fmt.Errorf("dominance references unknown allele %q", a)
		}
	}
	for a := range def.Descriptions {
		if _, ok := known[a]; !ok {
			return fmt.Errorf("description references unknown allele %q", a)
		}
	}
	for a := range def.Weights {
		if _, ok := known[a]; !ok {
			return fmt.Errorf("weight references unknown allele %q", a)
		}
	}
	for a := range def.PigmentContribution {
		if _, ok := known[a]; !ok {
			return fmt.Errorf("pigment contribution references unknown allele %q", a)
		}
	}
	return nil
}
