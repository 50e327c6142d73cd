package breeding

import (
	"errors"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"felogen/internal/genedef"
	"felogen/internal/model"
)

var (
	ErrNoRand      = errors.New("random source is required")
	ErrEmptyLitter = errors.New("litter size must be >= 1")
)

// Engine produces offspring genotypes by Mendelian segregation. Missing
// parental data degrades to the gene's first defined allele rather than
// failing; sex/relationship validity is the validator's concern, not ours.
type Engine struct {
	Genes *genedef.Store
	Rand  *rand.Rand
}

// LitterRequest describes one breeding event.
type LitterRequest struct {
	Sire        model.Individual
	Dam         model.Individual
	LitterSize  int
	RarityBoost float64
	// ForceSex pins every kitten's sex; empty means uniform random per kitten.
	ForceSex  model.Sex
	BirthDate string
}

// Breed generates LitterSize independent offspring of the two parents.
func (e *Engine) Breed(req LitterRequest) ([]model.Individual, error) {
	if e == nil || e.Rand == nil {
		return nil, ErrNoRand
	}
	if req.LitterSize < 1 {
		return nil, ErrEmptyLitter
	}

	litter := make([]model.Individual, 0, req.LitterSize)
	for i := 0; i < req.LitterSize; i++ {
		sex := req.ForceSex
		if sex == "" {
			sex = model.Male
			if e.Rand.Intn(2) == 1 {
				sex = model.Female
			}
		}

		genotype := e.inherit(req.Sire, req.Dam, sex)
		if req.RarityBoost > 1.0 {
			e.applyRarityMutations(genotype, req.RarityBoost)
		}

		litter = append(litter, model.Individual{
			ID:         uuid.NewString(),
			Sex:        sex,
			Genotype:   genotype,
			BirthDate:  req.BirthDate,
			SireID:     req.Sire.ID,
			DamID:      req.Dam.ID,
			BuildValue: e.blendBuild(req.Sire, req.Dam),
			SizeValue:  e.blendSize(req.Sire, req.Dam, sex),
		})
	}
	return litter, nil
}

// inherit draws one offspring genotype. X-linked loci follow the sex rules:
// males take a single allele from the dam, females take the sire's single
// allele plus one of the dam's pair.
func (e *Engine) inherit(sire, dam model.Individual, sex model.Sex) model.Genotype {
	genotype := make(model.Genotype)

	for _, geneID := range e.Genes.GeneIDs() {
		if geneID == "build" || geneID == "size" {
			continue
		}
		def, ok := e.Genes.Get(geneID)
		if !ok || len(def.Alleles) == 0 {
			continue
		}

		if def.XLinked {
			if sex == model.Male {
				genotype[geneID] = []string{e.pickAllele(dam.Genotype[geneID], def)}
			} else {
				fromSire := def.Alleles[0]
				if alleles := sire.Genotype[geneID]; len(alleles) > 0 {
					fromSire = alleles[0]
				}
				genotype[geneID] = []string{fromSire, e.pickAllele(dam.Genotype[geneID], def)}
			}
			continue
		}

		genotype[geneID] = []string{
			e.pickAllele(sire.Genotype[geneID], def),
			e.pickAllele(dam.Genotype[geneID], def),
		}
	}
	return genotype
}

// pickAllele draws uniformly from a parent's alleles, falling back to the
// gene's first defined allele when the parent carries no data for the locus.
func (e *Engine) pickAllele(parental []string, def model.GeneDefinition) string {
	if len(parental) == 0 {
		return def.Alleles[0]
	}
	return parental[e.Rand.Intn(len(parental))]
}

// applyRarityMutations replaces inherited alleles, each with probability
// min(0.4, (boost-1)/4), by a draw weighted toward alleles with low natural
// frequency: weight = (max(base)-base+1) * boost.
func (e *Engine) applyRarityMutations(genotype model.Genotype, boost float64) {
	probability := math.Min(0.4, (boost-1)/4)

	for geneID, alleles := range genotype {
		def, ok := e.Genes.Get(geneID)
		if !ok || len(def.Alleles) == 0 {
			continue
		}

		weights := make([]float64, len(def.Alleles))
		maxWeight := 0.0
		for i, a := range def.Alleles {
			w := def.Weights[a]
			if w == 0 {
				w = 1
			}
			weights[i] = w
			if w > maxWeight {
				maxWeight = w
			}
		}
		for i := range weights {
			weights[i] = (maxWeight - weights[i] + 1) * boost
		}

		for i := range alleles {
			if e.Rand.Float64() < probability {
				alleles[i] = def.Alleles[weightedIndex(e.Rand, weights)]
			}
		}
	}
}

func (e *Engine) blendBuild(sire, dam model.Individual) int {
	avg := float64(sire.BuildValue+dam.BuildValue) / 2
	return clamp(int(math.Round(avg))+e.Rand.Intn(11)-5, 0, 100)
}

func (e *Engine) blendSize(sire, dam model.Individual, sex model.Sex) int {
	avg := float64(sire.SizeValue+dam.SizeValue) / 2
	size := clamp(int(math.Round(avg))+e.Rand.Intn(11)-5, 0, 100)
	if sex == model.Male {
		size = clamp(size+3+e.Rand.Intn(6), 0, 100)
	}
	return size
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
