package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Genotype maps a gene id to its ordered allele tokens. Autosomal loci and
// X-linked loci on females hold two alleles; X-linked loci on males hold one.
type Genotype map[string][]string

// Clone returns a deep copy so callers can mutate freely.
func (g Genotype) Clone() Genotype {
	if g == nil {
		return nil
	}
	out := make(Genotype, len(g))
	for gene, alleles := range g {
		out[gene] = append([]string(nil), alleles...)
	}
	return out
}

// Has reports whether any copy of allele is present at the locus.
func (g Genotype) Has(gene, allele string) bool {
	for _, a := range g[gene] {
		if a == allele {
			return true
		}
	}
	return false
}

// Count returns the number of copies of allele at the locus.
func (g Genotype) Count(gene, allele string) int {
	n := 0
	for _, a := range g[gene] {
		if a == allele {
			n++
		}
	}
	return n
}

// GeneDefinition describes one locus: its allele set, dominance ranking,
// human descriptions, natural frequency weights, and X-linkage. Pigment
// contributions are present only on eye-pigment and lipochrome loci.
type GeneDefinition struct {
	ID                  string             `json:"-"`
	Name                string             `json:"name"`
	Alleles             []string           `json:"alleles"`
	Dominance           map[string]int     `json:"dominance"`
	Descriptions        map[string]string  `json:"descriptions"`
	Weights             map[string]float64 `json:"weights"`
	XLinked             bool               `json:"x_linked"`
	PigmentContribution map[string]float64 `json:"pigment_contribution,omitempty"`
}

// Individual is one cat in the pedigree. Sire and dam references are weak:
// they may name individuals that were never registered or have been removed,
// and consumers must treat such references as unknown ancestors.
type Individual struct {
	VersionedRecord
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Sex        Sex      `json:"sex"`
	Genotype   Genotype `json:"genotype"`
	BirthDate  string   `json:"birth_date,omitempty"`
	SireID     string   `json:"sire_id,omitempty"`
	DamID      string   `json:"dam_id,omitempty"`
	BuildValue int      `json:"build_value"`
	SizeValue  int      `json:"size_value"`

	// WhitePercentage is lazily assigned by the phenotype engine and then
	// fixed for the individual's lifetime. nil means not yet sampled.
	WhitePercentage *int `json:"white_percentage,omitempty"`
}

// LitterRecord documents one breeding event.
type LitterRecord struct {
	VersionedRecord
	ID           string   `json:"id"`
	SireID       string   `json:"sire_id"`
	DamID        string   `json:"dam_id"`
	OffspringIDs []string `json:"offspring_ids"`
	BirthDate    string   `json:"birth_date"`
}

// AlleleFrequency summarises one gene across the population.
type AlleleFrequency struct {
	GeneID        string
	Counts        map[string]int
	Frequencies   map[string]float64
	TotalAlleles  int
	UniqueAlleles int
}

// HeterozygosityStats holds observed/expected heterozygosity for one locus.
type HeterozygosityStats struct {
	GeneID        string
	Observed      float64
	Expected      float64
	Heterozygotes int
	Homozygotes   int
	FixationIndex float64
}

// PopulationSize reports census and effective population sizes.
type PopulationSize struct {
	Total                 int
	Males                 int
	Females               int
	EffectiveSize         float64
	BreedingMales         int
	BreedingFemales       int
	BreedingEffectiveSize float64
	SexRatio              float64
}

// RareAllele is an allele below the rarity threshold, with its carriers.
type RareAllele struct {
	GeneID     string
	Allele     string
	Frequency  float64
	Count      int
	CarrierIDs []string
}

// FounderContribution reports how much of the population descends from one
// founder.
type FounderContribution struct {
	FounderID   string
	Name        string
	Descendants int
	TotalCats   int
	Percentage  float64
}

// InbredRecord is one individual above the inbreeding threshold.
type InbredRecord struct {
	ID              string
	Name            string
	Coefficient     float64
	CommonAncestors []string
	Relationship    string
}

// GenerationCompleteness is the ancestor coverage at exactly one generation.
type GenerationCompleteness struct {
	Generation int
	Expected   int
	Actual     int
	Percentage float64
}

// Completeness is the pedigree completeness index for one individual.
type Completeness struct {
	ID                string
	Generations       int
	ExpectedAncestors int
	KnownAncestors    int
	Index             float64
	ByGeneration      []GenerationCompleteness
}

// PedigreeLoop marks an ancestor reachable through more than one line.
type PedigreeLoop struct {
	AncestorID  string
	Name        string
	Occurrences int
}
