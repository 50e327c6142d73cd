// Package phenotype derives visible traits from a genotype: a deterministic
// coat description, a probabilistic eye color, and a memoized white-marking
// percentage.
package phenotype

import (
	"math/rand"
	"strings"

	"felogen/internal/genedef"
	"felogen/internal/model"
)

// Engine renders phenotypes against a gene catalog. Rand is consumed only by
// the stochastic traits (eye color, white percentage); the coat pipeline
// itself is deterministic.
type Engine struct {
	Genes *genedef.Store
	Rand  *rand.Rand
}

// RedExpression is the sex-resolved state of the X-linked red locus.
type RedExpression int

const (
	NonRed RedExpression = iota
	Red
	Tortie
)

// Coat is the structured intermediate the deterministic pipeline fills in
// before rendering. Overrides set Special and leave the rest empty.
type Coat struct {
	Fur     string // Longhair or Shorthair
	Special string // White or Albino; short-circuits every other field

	Overlay     string // Silver, Golden, or empty
	Color       string // eumelanin, phaeomelanin, or breed-named color
	Smoke       bool
	Pattern     string // empty for solid coats
	Category    string // Tabby, Torbie, Tortoiseshell, or empty
	Karpati     bool
	Restriction string // Mink, Point, Sepia, or empty
	White       string // white-marking descriptor, empty when 0%
}

// Render flattens the intermediate into the display string, joining the
// non-empty parts with single spaces.
func (c Coat) Render() string {
	if c.Special != "" {
		return c.Fur + " " + c.Special
	}

	parts := []string{c.Fur}

	var phrase []string
	if c.Overlay != "" {
		phrase = append(phrase, c.Overlay)
	}
	phrase = append(phrase, c.Color)
	if c.Smoke {
		phrase = append(phrase, "Smoke")
	}
	if c.Pattern != "" {
		phrase = append(phrase, c.Pattern)
	}
	if c.Category != "" {
		phrase = append(phrase, c.Category)
	}
	parts = append(parts, strings.Join(phrase, " "))

	if c.Karpati {
		parts = append(parts, "with Karpati")
	}
	if c.Restriction != "" {
		parts = append(parts, c.Restriction)
	}
	if c.White != "" {
		parts = append(parts, c.White)
	}
	return strings.Join(parts, " ")
}

// CalculatePhenotype returns the full coat description. The result is stable
// across calls for a given individual: the only stochastic input, the white
// percentage, is memoized on the individual at first use.
func (e *Engine) CalculatePhenotype(ind *model.Individual) string {
	return e.DescribeCoat(ind).Render()
}

// DescribeCoat runs the override-then-compose pipeline and returns the
// structured result.
func (e *Engine) DescribeCoat(ind *model.Individual) Coat {
	coat := Coat{Fur: e.furLength(ind.Genotype)}

	if hasAllele(ind.Genotype[genedef.GeneWhite], genedef.AlleleDominantWhite) {
		coat.Special = "White"
		return coat
	}
	if isHomozygous(ind.Genotype[genedef.GeneColorRestriction], genedef.AlleleAlbino) {
		coat.Special = "Albino"
		return coat
	}

	e.composeColorPattern(&coat, ind)
	coat.Karpati = hasAllele(ind.Genotype[genedef.GeneKarpati], genedef.AlleleKarpati)
	e.applyRestriction(&coat, ind.Genotype)

	if white := e.WhiteDescription(ind); white != "" && white != "White" {
		coat.White = white
	}
	return coat
}

// RedExpressionOf resolves the red locus for the individual's sex: males by
// their single allele, females by the zygosity of their pair.
func (e *Engine) RedExpressionOf(ind *model.Individual) RedExpression {
	alleles := ind.Genotype[genedef.GeneRed]
	if len(alleles) == 0 {
		return NonRed
	}
	if ind.Sex == model.Male {
		if alleles[0] == genedef.AlleleRed {
			return Red
		}
		return NonRed
	}
	if hasAllele(alleles, genedef.AlleleRed) && hasAllele(alleles, genedef.AlleleNonRed) {
		return Tortie
	}
	if len(alleles) == 2 && alleles[0] == genedef.AlleleRed && alleles[1] == genedef.AlleleRed {
		return Red
	}
	return NonRed
}

func (e *Engine) composeColorPattern(coat *Coat, ind *model.Individual) {
	genotype := ind.Genotype

	eumelanin := e.eumelanin(genotype)
	phaeomelanin := "Red"
	if e.dominant(genedef.GeneDilution, genotype, "D") == genedef.AlleleDilute {
		diluted := map[string]string{"Black": "Blue", "Chocolate": "Lilac", "Cinnamon": "Fawn"}
		if d, ok := diluted[eumelanin]; ok {
			eumelanin = d
		}
		phaeomelanin = "Cream"
	}

	hasSilver := hasAllele(genotype[genedef.GeneInhibitor], genedef.AlleleSilver)
	hasWideband := e.widebandLevel(genotype) >= 1 && !hasSilver
	isSolid := isHomozygous(genotype[genedef.GeneAgouti], genedef.AlleleSolid)

	overlay := ""
	if hasSilver {
		overlay = "Silver"
	} else if hasWideband {
		overlay = "Golden"
	}

	switch e.RedExpressionOf(ind) {
	case Red:
		coat.Overlay = overlay
		coat.Color = phaeomelanin
		coat.Pattern = e.resolveTabbyPattern(genotype, true)
		coat.Category = "Tabby"

	case Tortie:
		if isSolid {
			coat.Color = eumelanin
			coat.Smoke = hasSilver
			coat.Category = "Tortoiseshell"
			return
		}
		pattern := e.resolveTabbyPattern(genotype, false)
		coat.Overlay = overlay
		coat.Color = breedNamedColor(eumelanin, pattern)
		coat.Pattern = pattern
		coat.Category = "Torbie"

	default:
		if isSolid {
			coat.Color = eumelanin
			coat.Smoke = hasSilver
			return
		}
		pattern := e.resolveTabbyPattern(genotype, false)
		coat.Overlay = overlay
		coat.Color = breedNamedColor(eumelanin, pattern)
		coat.Pattern = pattern
		coat.Category = "Tabby"
	}
}

// resolveTabbyPattern crosses the agouti, ticked, tabby, spotted and bengal
// loci into a single pattern name. Charcoal expression is suppressed on red
// coats.
func (e *Engine) resolveTabbyPattern(genotype model.Genotype, isRed bool) string {
	agouti := e.dominant(genedef.GeneAgouti, genotype, "A")
	ticked := e.dominant(genedef.GeneTicked, genotype, "ta")

	if agouti == genedef.AlleleCharcoal && !isRed {
		if ticked == genedef.AlleleTickedTabby {
			return "Midnight Charcoal"
		}
		return "Twilight Charcoal"
	}
	if ticked == genedef.AlleleTickedTabby {
		return "Ticked"
	}

	tabby := e.dominant(genedef.GeneTabby, genotype, "Mc")
	spotted := e.dominant(genedef.GeneSpotted, genotype, "sp")
	hasBengal := hasAllele(genotype[genedef.GeneBengal], genedef.AlleleBengalMarble)

	if tabby == genedef.AlleleClassic {
		if spotted == genedef.AlleleSpottedTabby {
			if hasBengal {
				return "Rosetted"
			}
			return "Spotted"
		}
		if hasBengal {
			return "Marbled"
		}
		return "Classic"
	}
	if spotted == genedef.AlleleSpottedTabby {
		if hasBengal {
			return "Broken Braided"
		}
		return "Broken Mackerel"
	}
	if hasBengal {
		return "Braided"
	}
	return "Mackerel"
}

// applyRestriction layers the color-restriction locus on the composed coat.
// Pointed coats rename a black base to Seal per show convention.
func (e *Engine) applyRestriction(coat *Coat, genotype model.Genotype) {
	alleles := genotype[genedef.GeneColorRestriction]
	if hasAllele(alleles, genedef.AlleleSepia) && hasAllele(alleles, genedef.AllelePoint) {
		coat.Restriction = "Mink"
		return
	}
	switch e.dominant(genedef.GeneColorRestriction, genotype, "C") {
	case genedef.AllelePoint:
		if coat.Color == "Black" {
			coat.Color = "Seal"
		}
		coat.Restriction = "Point"
	case genedef.AlleleSepia:
		coat.Restriction = "Sepia"
	}
}

// breedNamedColor applies the ticked-breed naming convention.
func breedNamedColor(color, pattern string) string {
	if pattern == "Ticked" {
		switch color {
		case "Black":
			return "Ruddy"
		case "Cinnamon":
			return "Sorrel"
		}
	}
	return color
}

// BuildCategory maps the hidden build score to its body-type label.
func BuildCategory(value int) string {
	switch {
	case value <= 15:
		return "Extreme Cobby"
	case value <= 30:
		return "Cobby"
	case value <= 45:
		return "Semi-Cobby"
	case value <= 55:
		return "Average"
	case value <= 70:
		return "Semi-Foreign"
	case value <= 85:
		return "Foreign"
	default:
		return "Extreme Foreign"
	}
}

// SizeCategory maps the hidden size score to its size label.
func SizeCategory(value int) string {
	switch {
	case value <= 20:
		return "Toy"
	case value <= 40:
		return "Small"
	case value <= 60:
		return "Medium"
	case value <= 80:
		return "Large"
	default:
		return "Giant"
	}
}

func (e *Engine) furLength(genotype model.Genotype) string {
	if e.dominant(genedef.GeneFurLength, genotype, "L") == genedef.AlleleLonghair {
		return "Longhair"
	}
	return "Shorthair"
}

func (e *Engine) eumelanin(genotype model.Genotype) string {
	switch e.dominant(genedef.GeneBaseColor, genotype, "B") {
	case "b":
		return "Chocolate"
	case "bl":
		return "Cinnamon"
	default:
		return "Black"
	}
}

// dominant resolves a locus through the catalog, substituting a fallback
// allele when the genotype carries no data for it.
func (e *Engine) dominant(geneID string, genotype model.Genotype, fallback string) string {
	alleles := genotype[geneID]
	if len(alleles) == 0 {
		alleles = []string{fallback}
	}
	return e.Genes.Dominant(geneID, alleles)
}

func (e *Engine) widebandLevel(genotype model.Genotype) int {
	level := 0
	for _, a := range genotype[genedef.GeneWideBand] {
		if a == genedef.AlleleWideBand {
			level++
		}
	}
	return level
}

func hasAllele(alleles []string, want string) bool {
	for _, a := range alleles {
		if a == want {
			return true
		}
	}
	return false
}

func isHomozygous(alleles []string, want string) bool {
	return len(alleles) == 2 && alleles[0] == want && alleles[1] == want
}
