package validation

import (
	"fmt"
	"strings"
	"time"

	"felogen/internal/breeding"
	"felogen/internal/genedef"
	"felogen/internal/model"
	"felogen/internal/pedigree"
)

// Lookup resolves individuals by id, typically the registry.
type Lookup interface {
	Get(id string) (model.Individual, bool)
}

// IndividualValidator checks one individual's attributes, genotype arity
// and parent references.
type IndividualValidator struct {
	Genes *genedef.Store
	// Pop is optional; parent checks are skipped without it.
	Pop Lookup
}

func (v *IndividualValidator) Validate(ind model.Individual) *Report {
	report := &Report{}
	v.checkAttributes(ind, report)
	v.checkGenotype(ind, report)
	if v.Pop != nil {
		v.checkParents(ind, report)
	}
	v.checkTraits(ind, report)
	return report
}

func (v *IndividualValidator) checkAttributes(ind model.Individual, report *Report) {
	if ind.Sex != model.Male && ind.Sex != model.Female {
		report.AddError("sex",
			fmt.Sprintf("invalid sex %q, must be %q or %q", ind.Sex, model.Male, model.Female),
			CodeInvalidSex)
	}
	if ind.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", ind.BirthDate); err != nil {
			report.AddError("birth_date",
				fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", ind.BirthDate),
				CodeInvalidDate)
		}
	}
}

func (v *IndividualValidator) checkGenotype(ind model.Individual, report *Report) {
	if len(ind.Genotype) == 0 {
		report.AddError("genotype", "individual has no genetic data", CodeNoGenes)
		return
	}

	for geneID, alleles := range ind.Genotype {
		def, ok := v.Genes.Get(geneID)
		if !ok {
			report.AddError(geneID, fmt.Sprintf("unknown gene %q", geneID), CodeUnknownGene)
			continue
		}

		expected := 2
		if def.XLinked && ind.Sex == model.Male {
			expected = 1
		}
		if len(alleles) != expected {
			report.AddError(geneID,
				fmt.Sprintf("gene %q needs %d allele(s) for sex %s, has %d",
					geneID, expected, ind.Sex, len(alleles)),
				CodeWrongAlleleCount)
			continue
		}

		for _, allele := range alleles {
			if !containsString(def.Alleles, allele) {
				report.AddError(geneID,
					fmt.Sprintf("invalid allele %q for gene %q, valid: %s",
						allele, geneID, strings.Join(def.Alleles, ", ")),
					CodeInvalidAllele)
			}
		}
	}

	var missing []string
	for _, geneID := range v.Genes.GeneIDs() {
		if _, ok := ind.Genotype[geneID]; !ok {
			missing = append(missing, geneID)
		}
	}
	if len(missing) > 0 {
		report.AddWarning("genotype",
			fmt.Sprintf("missing %d gene(s): %s", len(missing), strings.Join(missing, ", ")),
			CodeMissingGenes)
	}
}

func (v *IndividualValidator) checkParents(ind model.Individual, report *Report) {
	if ind.SireID != "" {
		v.checkParent(ind, ind.SireID, "sire_id", model.Male, report)
	}
	if ind.DamID != "" {
		v.checkParent(ind, ind.DamID, "dam_id", model.Female, report)
	}

	if ind.ID != "" {
		if ind.SireID == ind.ID {
			report.AddError("sire_id", "individual cannot be its own sire", CodeSelfParent)
		}
		if ind.DamID == ind.ID {
			report.AddError("dam_id", "individual cannot be its own dam", CodeSelfParent)
		}
	}
	if ind.SireID != "" && ind.SireID == ind.DamID {
		report.AddError("parents", "sire and dam cannot be the same individual", CodeSameParents)
	}
}

func (v *IndividualValidator) checkParent(ind model.Individual, parentID, field string, wantSex model.Sex, report *Report) {
	parent, ok := v.Pop.Get(parentID)
	if !ok {
		report.AddError(field, fmt.Sprintf("parent %s not found", parentID), CodeParentNotFound)
		return
	}
	if parent.Sex != wantSex {
		report.AddError(field,
			fmt.Sprintf("parent %s has sex %s, expected %s", parentID, parent.Sex, wantSex),
			CodeWrongParentSex)
	}
	if ind.BirthDate != "" && parent.BirthDate != "" && ind.BirthDate <= parent.BirthDate {
		report.AddError("birth_date",
			fmt.Sprintf("birth date %s is not after parent's %s", ind.BirthDate, parent.BirthDate),
			CodeImpossibleBirth)
	}
}

func (v *IndividualValidator) checkTraits(ind model.Individual, report *Report) {
	if ind.BuildValue < 0 || ind.BuildValue > 100 {
		report.AddError("build_value",
			fmt.Sprintf("build value must be in [0,100], got %d", ind.BuildValue),
			CodeInvalidBuildValue)
	}
	if ind.SizeValue < 0 || ind.SizeValue > 100 {
		report.AddError("size_value",
			fmt.Sprintf("size value must be in [0,100], got %d", ind.SizeValue),
			CodeInvalidSizeValue)
	}
	if ind.WhitePercentage != nil && (*ind.WhitePercentage < 0 || *ind.WhitePercentage > 100) {
		report.AddError("white_percentage",
			fmt.Sprintf("white percentage must be in [0,100], got %d", *ind.WhitePercentage),
			CodeInvalidWhiteValue)
	}
}

// PairValidator checks a prospective breeding pair before the engine runs.
type PairValidator struct {
	Pop Lookup
	// MaxGenerations bounds the kinship warning; the close-inbreeding
	// error always checks one generation.
	MaxGenerations int
}

func (v *PairValidator) Validate(sireID, damID string) *Report {
	report := &Report{}

	sire, ok := v.Pop.Get(sireID)
	if !ok {
		report.AddError("sire_id", fmt.Sprintf("sire %s not found", sireID), CodeNotFound)
		return report
	}
	dam, ok := v.Pop.Get(damID)
	if !ok {
		report.AddError("dam_id", fmt.Sprintf("dam %s not found", damID), CodeNotFound)
		return report
	}

	if sire.Sex != model.Male {
		report.AddError("sire_id",
			fmt.Sprintf("sire must be male, got %s", sire.Sex), CodeWrongSex)
	}
	if dam.Sex != model.Female {
		report.AddError("dam_id",
			fmt.Sprintf("dam must be female, got %s", dam.Sex), CodeWrongSex)
	}
	if sireID == damID {
		report.AddError("pair", "cannot breed an individual with itself", CodeSameIndividual)
		return report
	}

	generations := v.MaxGenerations
	if generations <= 0 {
		generations = breeding.DefaultRelatednessGenerations
	}
	if breeding.CheckRelatedness(v.Pop, sireID, damID, generations) {
		report.AddWarning("pair",
			fmt.Sprintf("pair is related within %d generations", generations),
			CodeInbreedingDetected)
	}
	if breeding.CheckRelatedness(v.Pop, sireID, damID, 1) {
		report.AddError("pair",
			"pair is parent-offspring or sibling (close inbreeding)",
			CodeCloseInbreeding)
	}
	return report
}

// PopulationValidator checks whole-population integrity: per-individual
// findings, dangling parent references and circular pedigrees.
type PopulationValidator struct {
	Genes *genedef.Store
	Pop   pedigree.Population
}

func (v *PopulationValidator) Validate() *Report {
	report := &Report{}
	individual := &IndividualValidator{Genes: v.Genes, Pop: v.Pop}

	for _, ind := range v.Pop.All() {
		report.Merge(ind.ID, individual.Validate(ind))
	}
	v.checkDanglingRefs(report)
	v.checkCircular(report)
	return report
}

func (v *PopulationValidator) checkDanglingRefs(report *Report) {
	for _, ind := range v.Pop.All() {
		if ind.SireID != "" {
			if _, ok := v.Pop.Get(ind.SireID); !ok {
				report.AddWarning(ind.ID,
					fmt.Sprintf("references unknown sire %s", ind.SireID),
					CodeOrphanedParentRef)
			}
		}
		if ind.DamID != "" {
			if _, ok := v.Pop.Get(ind.DamID); !ok {
				report.AddWarning(ind.ID,
					fmt.Sprintf("references unknown dam %s", ind.DamID),
					CodeOrphanedParentRef)
			}
		}
	}
}

func (v *PopulationValidator) checkCircular(report *Report) {
	for _, ind := range v.Pop.All() {
		if pedigree.IsCircular(v.Pop, ind.ID) {
			report.AddError(ind.ID,
				"individual is its own ancestor (circular pedigree)",
				CodeCircularPedigree)
		}
	}
}

// CheckDuplicateIDs scans raw records, as loaded from storage, for id
// collisions the keyed registry would otherwise mask.
func CheckDuplicateIDs(inds []model.Individual, report *Report) {
	seen := make(map[string]int)
	for _, ind := range inds {
		seen[ind.ID]++
	}
	for _, ind := range inds {
		if seen[ind.ID] > 1 {
			report.AddError("registry",
				fmt.Sprintf("duplicate id %s appears %d times", ind.ID, seen[ind.ID]),
				CodeDuplicateID)
			seen[ind.ID] = 0
		}
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
