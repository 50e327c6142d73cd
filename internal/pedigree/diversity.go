package pedigree

import (
	"sort"

	"felogen/internal/genedef"
	"felogen/internal/model"
)

// DefaultRareThreshold is the allele frequency below which an allele is
// reported as rare.
const DefaultRareThreshold = 0.05

// DiversityAnalyzer computes diversity metrics over the current population
// snapshot. It holds no state of its own; every call re-reads the
// population.
type DiversityAnalyzer struct {
	Pop   Population
	Genes *genedef.Store
}

// AlleleFrequencies tallies every allele occurrence per gene. Genes with no
// observations in the population are omitted entirely.
func (a *DiversityAnalyzer) AlleleFrequencies() []model.AlleleFrequency {
	out := make([]model.AlleleFrequency, 0, len(a.Genes.GeneIDs()))
	for _, geneID := range a.Genes.GeneIDs() {
		if freq, ok := a.alleleFrequency(geneID); ok {
			out = append(out, freq)
		}
	}
	return out
}

// AlleleFrequency tallies a single gene; ok is false when no individual
// carries data for it.
func (a *DiversityAnalyzer) AlleleFrequency(geneID string) (model.AlleleFrequency, bool) {
	if _, ok := a.Genes.Get(geneID); !ok {
		return model.AlleleFrequency{}, false
	}
	return a.alleleFrequency(geneID)
}

func (a *DiversityAnalyzer) alleleFrequency(geneID string) (model.AlleleFrequency, bool) {
	counts := make(map[string]int)
	total := 0
	for _, ind := range a.Pop.All() {
		for _, allele := range ind.Genotype[geneID] {
			counts[allele]++
			total++
		}
	}
	if total == 0 {
		return model.AlleleFrequency{}, false
	}

	freqs := make(map[string]float64, len(counts))
	for allele, count := range counts {
		freqs[allele] = float64(count) / float64(total)
	}
	return model.AlleleFrequency{
		GeneID:        geneID,
		Counts:        counts,
		Frequencies:   freqs,
		TotalAlleles:  total,
		UniqueAlleles: len(counts),
	}, true
}

// Heterozygosity computes observed and expected heterozygosity per
// autosomal locus. X-linked genes are skipped: hemizygous males would skew
// the observed rate.
func (a *DiversityAnalyzer) Heterozygosity() []model.HeterozygosityStats {
	var out []model.HeterozygosityStats
	for _, geneID := range a.Genes.GeneIDs() {
		if a.Genes.IsXLinked(geneID) {
			continue
		}
		freq, ok := a.alleleFrequency(geneID)
		if !ok {
			continue
		}

		het, hom := 0, 0
		for _, ind := range a.Pop.All() {
			alleles := ind.Genotype[geneID]
			if len(alleles) != 2 {
				continue
			}
			if alleles[0] != alleles[1] {
				het++
			} else {
				hom++
			}
		}
		if het+hom == 0 {
			continue
		}

		observed := float64(het) / float64(het+hom)
		expected := 1.0
		for _, f := range freq.Frequencies {
			expected -= f * f
		}

		fixation := 0.0
		if expected > 0 {
			fixation = (expected - observed) / expected
		}
		out = append(out, model.HeterozygosityStats{
			GeneID:        geneID,
			Observed:      observed,
			Expected:      expected,
			Heterozygotes: het,
			Homozygotes:   hom,
			FixationIndex: fixation,
		})
	}
	return out
}

// PopulationSize reports census counts and the effective size, both over
// the whole population and restricted to individuals with offspring.
func (a *DiversityAnalyzer) PopulationSize() model.PopulationSize {
	males := a.Pop.Males()
	females := a.Pop.Females()

	breedingMales, breedingFemales := 0, 0
	for _, m := range males {
		if len(a.Pop.Offspring(m.ID)) > 0 {
			breedingMales++
		}
	}
	for _, f := range females {
		if len(a.Pop.Offspring(f.ID)) > 0 {
			breedingFemales++
		}
	}

	size := model.PopulationSize{
		Total:           len(males) + len(females),
		Males:           len(males),
		Females:         len(females),
		BreedingMales:   breedingMales,
		BreedingFemales: breedingFemales,
	}
	size.EffectiveSize = effectiveSize(len(males), len(females))
	size.BreedingEffectiveSize = effectiveSize(breedingMales, breedingFemales)
	if len(females) > 0 {
		size.SexRatio = float64(len(males)) / float64(len(females))
	}
	return size
}

// effectiveSize applies Ne = 4*Nm*Nf/(Nm+Nf); zero when either sex is
// absent.
func effectiveSize(males, females int) float64 {
	if males == 0 || females == 0 {
		return 0
	}
	return 4 * float64(males) * float64(females) / float64(males+females)
}

// RareAlleles lists every allele below the threshold with its carriers,
// sorted ascending by frequency.
func (a *DiversityAnalyzer) RareAlleles(threshold float64) []model.RareAllele {
	var out []model.RareAllele
	for _, freq := range a.AlleleFrequencies() {
		for allele, f := range freq.Frequencies {
			if f >= threshold {
				continue
			}
			out = append(out, model.RareAllele{
				GeneID:     freq.GeneID,
				Allele:     allele,
				Frequency:  f,
				Count:      freq.Counts[allele],
				CarrierIDs: a.carriers(freq.GeneID, allele),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency < out[j].Frequency
		}
		if out[i].GeneID != out[j].GeneID {
			return out[i].GeneID < out[j].GeneID
		}
		return out[i].Allele < out[j].Allele
	})
	return out
}

func (a *DiversityAnalyzer) carriers(geneID, allele string) []string {
	var ids []string
	for _, ind := range a.Pop.All() {
		for _, candidate := range ind.Genotype[geneID] {
			if candidate == allele {
				ids = append(ids, ind.ID)
				break
			}
		}
	}
	return ids
}

// FounderContributions reports, for every individual with no recorded
// parents, the share of the population carrying it in their ancestry.
func (a *DiversityAnalyzer) FounderContributions() []model.FounderContribution {
	population := a.Pop.All()

	var out []model.FounderContribution
	for _, founder := range population {
		if founder.SireID != "" || founder.DamID != "" {
			continue
		}

		descendants := 0
		for _, ind := range population {
			if HasAncestor(a.Pop, ind.ID, founder.ID, contributionDepth) {
				descendants++
			}
		}

		contribution := model.FounderContribution{
			FounderID:   founder.ID,
			Name:        founder.Name,
			Descendants: descendants,
			TotalCats:   len(population),
		}
		if len(population) > 0 {
			contribution.Percentage = float64(descendants) / float64(len(population)) * 100
		}
		out = append(out, contribution)
	}
	return out
}

// DiversityReport aggregates all diversity metrics with a coarse overall
// assessment.
type DiversityReport struct {
	Population         model.PopulationSize
	Heterozygosity     []model.HeterozygosityStats
	Frequencies        []model.AlleleFrequency
	RareAlleles        []model.RareAllele
	Founders           []model.FounderContribution
	MeanHeterozygosity float64
	Status             string
}

func (a *DiversityAnalyzer) Report() DiversityReport {
	report := DiversityReport{
		Population:     a.PopulationSize(),
		Heterozygosity: a.Heterozygosity(),
		Frequencies:    a.AlleleFrequencies(),
		RareAlleles:    a.RareAlleles(DefaultRareThreshold),
		Founders:       a.FounderContributions(),
	}

	if len(report.Heterozygosity) > 0 {
		sum := 0.0
		for _, h := range report.Heterozygosity {
			sum += h.Observed
		}
		report.MeanHeterozygosity = sum / float64(len(report.Heterozygosity))
	}
	report.Status = assessDiversity(report.MeanHeterozygosity, report.Population.EffectiveSize)
	return report
}

func assessDiversity(meanHet, ne float64) string {
	switch {
	case meanHet > 0.5 && ne > 50:
		return "Excellent - High genetic diversity"
	case meanHet > 0.35 && ne > 30:
		return "Good - Moderate genetic diversity"
	case meanHet > 0.2 && ne > 15:
		return "Fair - Consider increasing diversity"
	default:
		return "Poor - Low genetic diversity, intervention recommended"
	}
}
