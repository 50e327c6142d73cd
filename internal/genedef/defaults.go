package genedef

import "felogen/internal/model"

// Gene ids of the built-in catalog. The engines resolve phenotype rules
// against these ids; admin-added genes are carried and inherited but have no
// phenotype rules of their own.
const (
	GeneFurLength        = "fur_length"
	GeneWhite            = "white"
	GeneColorRestriction = "color_restriction"
	GeneRed              = "red"
	GeneBaseColor        = "base_color"
	GeneDilution         = "dilution"
	GeneInhibitor        = "inhibitor"
	GeneWideBand         = "wide_band"
	GeneAgouti           = "agouti"
	GeneTicked           = "ticked"
	GeneTabby            = "tabby"
	GeneSpotted          = "spotted"
	GeneBengal           = "bengal"
	GeneKarpati          = "karpati"
	GeneEyePigment1      = "eye_pigment_1"
	GeneEyePigment2      = "eye_pigment_2"
	GeneEyePigment3      = "eye_pigment_3"
	GeneLipochrome       = "lipochrome"
)

// Allele symbols referenced by the phenotype rules.
const (
	AlleleLonghair      = "l"
	AlleleDominantWhite = "Wd"
	AlleleWhiteSpotting = "Ws"
	AlleleAlbino        = "c"
	AllelePoint         = "cs"
	AlleleSepia         = "cb"
	AlleleRed           = "O"
	AlleleNonRed        = "o"
	AlleleCharcoal      = "Apb"
	AlleleSolid         = "a"
	AlleleTickedTabby   = "Ta"
	AlleleClassic       = "mc"
	AlleleSpottedTabby  = "Sp"
	AlleleBengalMarble  = "Bm"
	AlleleKarpati       = "K"
	AlleleSilver        = "I"
	AlleleWideBand      = "Wb"
	AlleleDilute        = "d"
)

func defaultCatalog() []model.GeneDefinition {
	return []model.GeneDefinition{
		{
			ID: GeneFurLength, Name: "Fur Length",
			Alleles:      []string{"L", "l"},
			Dominance:    map[string]int{"L": 1, "l": 0},
			Descriptions: map[string]string{"L": "Shorthair", "l": "Longhair"},
			Weights:      map[string]float64{"L": 70, "l": 30},
		},
		{
			ID: GeneWhite, Name: "White",
			Alleles:      []string{"Wd", "Ws", "w"},
			Dominance:    map[string]int{"Wd": 2, "Ws": 1, "w": 0},
			Descriptions: map[string]string{"Wd": "Dominant White", "Ws": "White Spotting", "w": "No White"},
			Weights:      map[string]float64{"Wd": 2, "Ws": 20, "w": 78},
		},
		{
			ID: GeneColorRestriction, Name: "Color Restriction",
			Alleles:      []string{"C", "cs", "cb", "c"},
			Dominance:    map[string]int{"C": 3, "cb": 2, "cs": 1, "c": 0},
			Descriptions: map[string]string{"C": "Full Color", "cs": "Colorpoint", "cb": "Sepia", "c": "Albino"},
			Weights:      map[string]float64{"C": 80, "cs": 10, "cb": 6, "c": 4},
		},
		{
			ID: GeneRed, Name: "Red", XLinked: true,
			Alleles:      []string{"O", "o"},
			Dominance:    map[string]int{"O": 1, "o": 0},
			Descriptions: map[string]string{"O": "Red", "o": "Non-Red"},
			Weights:      map[string]float64{"O": 25, "o": 75},
		},
		{
			ID: GeneBaseColor, Name: "Base Color",
			Alleles:      []string{"B", "b", "bl"},
			Dominance:    map[string]int{"B": 2, "b": 1, "bl": 0},
			Descriptions: map[string]string{"B": "Black", "b": "Chocolate", "bl": "Cinnamon"},
			Weights:      map[string]float64{"B": 70, "b": 20, "bl": 10},
		},
		{
			ID: GeneDilution, Name: "Dilution",
			Alleles:      []string{"D", "d"},
			Dominance:    map[string]int{"D": 1, "d": 0},
			Descriptions: map[string]string{"D": "Dense", "d": "Dilute"},
			Weights:      map[string]float64{"D": 65, "d": 35},
		},
		{
			ID: GeneInhibitor, Name: "Inhibitor",
			Alleles:      []string{"I", "i"},
			Dominance:    map[string]int{"I": 1, "i": 0},
			Descriptions: map[string]string{"I": "Silver", "i": "Non-Silver"},
			Weights:      map[string]float64{"I": 10, "i": 90},
		},
		{
			ID: GeneWideBand, Name: "Wide Band",
			Alleles:      []string{"Wb", "wb"},
			Dominance:    map[string]int{"Wb": 1, "wb": 0},
			Descriptions: map[string]string{"Wb": "Wide Band", "wb": "Normal Band"},
			Weights:      map[string]float64{"Wb": 15, "wb": 85},
		},
		{
			ID: GeneAgouti, Name: "Agouti",
			Alleles:      []string{"A", "Apb", "a"},
			Dominance:    map[string]int{"A": 2, "Apb": 1, "a": 0},
			Descriptions: map[string]string{"A": "Agouti", "Apb": "Charcoal", "a": "Solid"},
			Weights:      map[string]float64{"A": 50, "Apb": 5, "a": 45},
		},
		{
			ID: GeneTicked, Name: "Ticked",
			Alleles:      []string{"Ta", "ta"},
			Dominance:    map[string]int{"Ta": 1, "ta": 0},
			Descriptions: map[string]string{"Ta": "Ticked", "ta": "Non-Ticked"},
			Weights:      map[string]float64{"Ta": 10, "ta": 90},
		},
		{
			ID: GeneTabby, Name: "Tabby",
			Alleles:      []string{"Mc", "mc"},
			Dominance:    map[string]int{"Mc": 1, "mc": 0},
			Descriptions: map[string]string{"Mc": "Mackerel", "mc": "Classic"},
			Weights:      map[string]float64{"Mc": 60, "mc": 40},
		},
		{
			ID: GeneSpotted, Name: "Spotted",
			Alleles:      []string{"Sp", "sp"},
			Dominance:    map[string]int{"Sp": 1, "sp": 0},
			Descriptions: map[string]string{"Sp": "Spotted", "sp": "Non-Spotted"},
			Weights:      map[string]float64{"Sp": 20, "sp": 80},
		},
		{
			ID: GeneBengal, Name: "Bengal Marble",
			Alleles:      []string{"Bm", "bm"},
			Dominance:    map[string]int{"Bm": 1, "bm": 0},
			Descriptions: map[string]string{"Bm": "Bengal Marble", "bm": "Normal"},
			Weights:      map[string]float64{"Bm": 5, "bm": 95},
		},
		{
			ID: GeneKarpati, Name: "Karpati",
			Alleles:      []string{"K", "k"},
			Dominance:    map[string]int{"K": 1, "k": 0},
			Descriptions: map[string]string{"K": "Karpati", "k": "Non-Karpati"},
			Weights:      map[string]float64{"K": 2, "k": 98},
		},
		eyePigmentGene(GeneEyePigment1, "Eye Pigment 1"),
		eyePigmentGene(GeneEyePigment2, "Eye Pigment 2"),
		eyePigmentGene(GeneEyePigment3, "Eye Pigment 3"),
		{
			ID: GeneLipochrome, Name: "Lipochrome",
			Alleles:             []string{"Lp", "lp"},
			Dominance:           map[string]int{"Lp": 1, "lp": 0},
			Descriptions:        map[string]string{"Lp": "High Lipochrome", "lp": "Low Lipochrome"},
			Weights:             map[string]float64{"Lp": 30, "lp": 70},
			PigmentContribution: map[string]float64{"Lp": 1.0, "lp": 0.1},
		},
	}
}

func eyePigmentGene(id, name string) model.GeneDefinition {
	return model.GeneDefinition{
		ID: id, Name: name,
		Alleles:             []string{"E", "e"},
		Dominance:           map[string]int{"E": 1, "e": 0},
		Descriptions:        map[string]string{"E": "High Melanin", "e": "Low Melanin"},
		Weights:             map[string]float64{"E": 50, "e": 50},
		PigmentContribution: map[string]float64{"E": 0.7, "e": 0.1},
	}
}
