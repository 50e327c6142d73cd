package phenotype

import (
	"felogen/internal/genedef"
	"felogen/internal/model"
)

var eyePigmentGenes = []string{
	genedef.GeneEyePigment1,
	genedef.GeneEyePigment2,
	genedef.GeneEyePigment3,
}

// CalculateEyeColor samples an eye color from the genotype. The result is
// probabilistic and intentionally not memoized; callers that need stability
// cache it themselves.
func (e *Engine) CalculateEyeColor(ind *model.Individual) string {
	genotype := ind.Genotype

	if hasAllele(genotype[genedef.GeneWhite], genedef.AlleleDominantWhite) {
		switch chance := e.Rand.Float64(); {
		case chance < 0.50:
			return "Blue"
		case chance < 0.70:
			return "Odd-Eyed (One Blue, One Copper)"
		case chance < 0.85:
			return "Copper"
		default:
			return "Green"
		}
	}

	wsCount := 0
	for _, a := range genotype[genedef.GeneWhite] {
		if a == genedef.AlleleWhiteSpotting {
			wsCount++
		}
	}
	// Two partial-white copies can force a blue or odd-eyed outcome; on the
	// complementary path the ordinary rules below still apply.
	if wsCount == 2 && e.Rand.Float64() < 0.35 {
		return pick(e.Rand,
			"Blue",
			"Odd-Eyed (One Blue, One Green)",
			"Odd-Eyed (One Blue, One Copper)",
		)
	}

	restriction := genotype[genedef.GeneColorRestriction]
	if isHomozygous(restriction, genedef.AlleleAlbino) {
		switch chance := e.Rand.Float64(); {
		case chance < 0.70:
			return "Pale Blue"
		case chance < 0.90:
			return "Lilac-Blue"
		default:
			return "Pink"
		}
	}

	if hasAllele(restriction, genedef.AllelePoint) {
		if hasAllele(restriction, genedef.AlleleSepia) {
			return e.minkEyeColor(genotype)
		}
		return e.colorpointEyeColor(genotype)
	}
	if isHomozygous(restriction, genedef.AlleleSepia) {
		return e.sepiaEyeColor(genotype)
	}
	return e.polygenicEyeColor(genotype)
}

// PigmentScore sums the melanin contributions of the three eye-pigment loci.
func (e *Engine) PigmentScore(genotype model.Genotype) float64 {
	score := 0.0
	for _, geneID := range eyePigmentGenes {
		for _, a := range genotype[geneID] {
			score += e.Genes.PigmentContribution(geneID, a)
		}
	}
	return score
}

// LipochromeScore sums the yellow-pigment contribution of the lipochrome
// locus.
func (e *Engine) LipochromeScore(genotype model.Genotype) float64 {
	score := 0.0
	for _, a := range genotype[genedef.GeneLipochrome] {
		score += e.Genes.PigmentContribution(genedef.GeneLipochrome, a)
	}
	return score
}

func (e *Engine) colorpointEyeColor(genotype model.Genotype) string {
	switch score := e.PigmentScore(genotype); {
	case score < 1.0:
		return "Pale Blue"
	case score < 2.0:
		return "Blue"
	case score < 3.0:
		return "Deep Blue"
	default:
		return "Sapphire Blue"
	}
}

func (e *Engine) minkEyeColor(genotype model.Genotype) string {
	switch score := e.PigmentScore(genotype); {
	case score < 1.5:
		return "Pale Aqua"
	case score < 2.5:
		return "Aqua"
	case score < 3.5:
		return "Blue-Green"
	default:
		return "Deep Aqua"
	}
}

func (e *Engine) sepiaEyeColor(genotype model.Genotype) string {
	pigment := e.PigmentScore(genotype)

	if e.LipochromeScore(genotype) >= 1.5 {
		switch {
		case pigment < 2.0:
			return "Golden"
		case pigment < 3.5:
			return "Deep Golden"
		default:
			return "Copper"
		}
	}
	switch {
	case pigment < 1.5:
		return pick(e.Rand, "Greenish-Blue", "Pale Yellow-Green")
	case pigment < 2.5:
		return pick(e.Rand, "Yellow-Green", "Golden-Green")
	case pigment < 3.5:
		return pick(e.Rand, "Yellow", "Golden")
	default:
		return pick(e.Rand, "Orange", "Deep Orange")
	}
}

func (e *Engine) polygenicEyeColor(genotype model.Genotype) string {
	pigment := e.PigmentScore(genotype)

	if e.LipochromeScore(genotype) >= 1.5 {
		switch {
		case pigment < 2.0:
			return "Gold"
		case pigment < 3.5:
			return "Copper"
		default:
			return "Deep Copper"
		}
	}

	switch {
	case pigment < 0.8:
		return pick(e.Rand, "Blue", "Blue-Grey", "Grey-Blue")
	case pigment < 1.8:
		return pick(e.Rand, "Yellow-Green", "Gooseberry Green", "Green", "Pale Green")
	case pigment < 2.8:
		if e.Rand.Float64() < 0.15 {
			return pick(e.Rand,
				"Dichroic (Green with Yellow Ring)",
				"Dichroic (Hazel with Green Flecks)",
				"Sectoral Heterochromia (Green and Yellow)",
			)
		}
		return pick(e.Rand, "Yellow", "Lemon Yellow", "Hazel", "Green-Hazel", "Green")
	case pigment < 3.8:
		return pick(e.Rand, "Amber", "Light Brown", "Hazel-Brown", "Brown")
	default:
		return pick(e.Rand, "Dark Brown", "Deep Brown")
	}
}

func pick(rng randSource, options ...string) string {
	return options[rng.Intn(len(options))]
}
