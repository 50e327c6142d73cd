// Package validation checks individuals, breeding pairs and whole
// populations for structural problems. The engines themselves degrade
// silently on bad data; everything a caller should be told about surfaces
// here as a finding instead of an error return.
package validation

import "fmt"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes.
const (
	CodeInvalidSex         = "INVALID_SEX"
	CodeInvalidDate        = "INVALID_DATE"
	CodeNoGenes            = "NO_GENES"
	CodeUnknownGene        = "UNKNOWN_GENE"
	CodeWrongAlleleCount   = "WRONG_ALLELE_COUNT"
	CodeInvalidAllele      = "INVALID_ALLELE"
	CodeMissingGenes       = "MISSING_GENES"
	CodeParentNotFound     = "PARENT_NOT_FOUND"
	CodeWrongParentSex     = "WRONG_PARENT_SEX"
	CodeImpossibleBirth    = "IMPOSSIBLE_BIRTH_DATE"
	CodeSelfParent         = "SELF_PARENT"
	CodeSameParents        = "SAME_PARENTS"
	CodeInvalidBuildValue  = "INVALID_BUILD_VALUE"
	CodeInvalidSizeValue   = "INVALID_SIZE_VALUE"
	CodeInvalidWhiteValue  = "INVALID_WHITE_PERCENTAGE"
	CodeWrongSex           = "WRONG_SEX"
	CodeSameIndividual     = "SAME_INDIVIDUAL"
	CodeNotFound           = "NOT_FOUND"
	CodeInbreedingDetected = "INBREEDING_DETECTED"
	CodeCloseInbreeding    = "CLOSE_INBREEDING"
	CodeOrphanedParentRef  = "ORPHANED_PARENT_REF"
	CodeCircularPedigree   = "CIRCULAR_PEDIGREE"
	CodeDuplicateID        = "DUPLICATE_ID"
)

// Finding is a single validation result.
type Finding struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s - %s", f.Severity, f.Field, f.Message)
}

// Report collects findings from one validation run.
type Report struct {
	Findings []Finding `json:"findings"`
}

func (r *Report) add(field, message string, severity Severity, code string) {
	r.Findings = append(r.Findings, Finding{Field: field, Message: message, Severity: severity, Code: code})
}

func (r *Report) AddError(field, message, code string) {
	r.add(field, message, SeverityError, code)
}

func (r *Report) AddWarning(field, message, code string) {
	r.add(field, message, SeverityWarning, code)
}

func (r *Report) AddInfo(field, message, code string) {
	r.add(field, message, SeverityInfo, code)
}

func (r *Report) Errors() []Finding {
	return r.bySeverity(SeverityError)
}

func (r *Report) Warnings() []Finding {
	return r.bySeverity(SeverityWarning)
}

func (r *Report) bySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Valid reports whether the run produced no errors; warnings do not fail
// validation.
func (r *Report) Valid() bool {
	return !r.HasErrors()
}

func (r *Report) Summary() string {
	return fmt.Sprintf("validation: %d error(s), %d warning(s)", len(r.Errors()), len(r.Warnings()))
}

// Merge appends another report's findings, prefixing each field.
func (r *Report) Merge(prefix string, other *Report) {
	for _, f := range other.Findings {
		f.Field = prefix + ": " + f.Field
		r.Findings = append(r.Findings, f)
	}
}
