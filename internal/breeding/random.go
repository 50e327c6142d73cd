package breeding

import (
	"math"

	"github.com/google/uuid"

	"felogen/internal/model"
)

// RandomFounder generates an unrelated individual with alleles drawn by
// natural frequency weight per locus. Build and size are drawn from a
// triangular distribution centred on the population average, with the male
// size bump applied.
func (e *Engine) RandomFounder(sex model.Sex) (model.Individual, error) {
	if e == nil || e.Rand == nil {
		return model.Individual{}, ErrNoRand
	}
	if sex == "" {
		sex = model.Male
		if e.Rand.Intn(2) == 1 {
			sex = model.Female
		}
	}

	genotype := make(model.Genotype)
	for _, geneID := range e.Genes.GeneIDs() {
		def, ok := e.Genes.Get(geneID)
		if !ok || len(def.Alleles) == 0 {
			continue
		}

		weights := make([]float64, len(def.Alleles))
		for i, a := range def.Alleles {
			w := def.Weights[a]
			if w == 0 {
				w = 1
			}
			weights[i] = w
		}

		if def.XLinked && sex == model.Male {
			genotype[geneID] = []string{def.Alleles[weightedIndex(e.Rand, weights)]}
			continue
		}
		genotype[geneID] = []string{
			def.Alleles[weightedIndex(e.Rand, weights)],
			def.Alleles[weightedIndex(e.Rand, weights)],
		}
	}

	size := int(e.triangular(0, 100, 50))
	if sex == model.Male {
		size = clamp(size+3+e.Rand.Intn(6), 0, 100)
	}

	return model.Individual{
		ID:         uuid.NewString(),
		Sex:        sex,
		Genotype:   genotype,
		BuildValue: int(e.triangular(0, 100, 50)),
		SizeValue:  size,
	}, nil
}

// triangular samples from the triangular distribution on [lo, hi] with mode.
func (e *Engine) triangular(lo, hi, mode float64) float64 {
	u := e.Rand.Float64()
	cut := (mode - lo) / (hi - lo)
	if u < cut {
		return lo + math.Sqrt(u*(hi-lo)*(mode-lo))
	}
	return hi - math.Sqrt((1-u)*(hi-lo)*(hi-mode))
}

// NewIndividualID mints an identifier in the same namespace breeding uses.
func NewIndividualID() string {
	return uuid.NewString()
}
