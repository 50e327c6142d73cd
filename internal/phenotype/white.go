package phenotype

import (
	"felogen/internal/genedef"
	"felogen/internal/model"
)

// WhitePercentage resolves the individual's white-marking coverage. The
// value is drawn once and memoized on the individual, so repeat calls (and
// the coat description built on them) are stable.
func (e *Engine) WhitePercentage(ind *model.Individual) int {
	if ind.WhitePercentage != nil {
		return *ind.WhitePercentage
	}

	pct := e.drawWhitePercentage(ind.Genotype)
	ind.WhitePercentage = &pct
	return pct
}

func (e *Engine) drawWhitePercentage(genotype model.Genotype) int {
	alleles := genotype[genedef.GeneWhite]
	if hasAllele(alleles, genedef.AlleleDominantWhite) {
		return 100
	}

	wsCount := 0
	for _, a := range alleles {
		if a == genedef.AlleleWhiteSpotting {
			wsCount++
		}
	}

	switch wsCount {
	case 0:
		return 0
	case 1:
		// One copy: 1-50%, biased low. Three weight bands over the range.
		return 1 + weightedBandDraw(e.Rand, []bandSpec{{15, 3}, {15, 2}, {20, 1}})
	default:
		// Two copies: 50-99%, biased high, mirroring the single-copy bands.
		return 50 + weightedBandDraw(e.Rand, []bandSpec{{15, 1}, {15, 2}, {20, 3}})
	}
}

// WhiteDescription maps the percentage to its display term. Fully colored
// coats return the empty string.
func (e *Engine) WhiteDescription(ind *model.Individual) string {
	switch pct := e.WhitePercentage(ind); {
	case pct == 0:
		return ""
	case pct == 100:
		return "White"
	case pct < 35:
		return "with Low White"
	case pct < 65:
		return "Bicolor"
	default:
		return "with High White"
	}
}

type bandSpec struct {
	width  int
	weight int
}

// weightedBandDraw picks an offset into the concatenated bands, where every
// value inside a band shares that band's weight.
func weightedBandDraw(rng randSource, bands []bandSpec) int {
	total := 0
	for _, b := range bands {
		total += b.width * b.weight
	}
	target := rng.Intn(total)
	offset := 0
	for _, b := range bands {
		span := b.width * b.weight
		if target < span {
			return offset + target/b.weight
		}
		target -= span
		offset += b.width
	}
	return offset - 1
}

// randSource is the slice of *rand.Rand the draws need.
type randSource interface {
	Intn(n int) int
	Float64() float64
}
