package typosquat

import "strings"

// Family identifies the transformation that produced a candidate
type Family string

const (
	FamilyOmission      Family = "omission"
	FamilyDoubling      Family = "doubling"
	FamilyTransposition Family = "transposition"
	FamilyAdjacentKey   Family = "adjacent_key"
	FamilyHomoglyph     Family = "homoglyph"
	FamilySuffixSwap    Family = "suffix_swap"

	// LLMFamilyPrefix marks families produced outside the generator
	LLMFamilyPrefix = "llm_"
)

// DefaultConfidence is used for families missing from the confidence table
const DefaultConfidence = 0.5

// familyConfidence reflects how plausible a human is to make each class of mistake
var familyConfidence = map[Family]float64{
	FamilyOmission:      0.8,
	FamilyTransposition: 0.85,
	FamilyAdjacentKey:   0.7,
	FamilyDoubling:      0.6,
	FamilyHomoglyph:     0.5,
	FamilySuffixSwap:    0.4,
}

// ConfidenceFor returns the fixed confidence weight of a family
func ConfidenceFor(f Family) float64 {
	if v, ok := familyConfidence[f]; ok {
		return v
	}
	return DefaultConfidence
}

// IsExternal reports whether the family was produced by an LLM collaborator
func (f Family) IsExternal() bool {
	return strings.HasPrefix(string(f), LLMFamilyPrefix)
}

// Candidate is one proposed misspelled domain and its provenance.
// Candidates are never mutated after creation; later stages keep
// their results alongside them.
type Candidate struct {
	Domain     string  `json:"domain"`     // ex: gogle.com
	Original   string  `json:"original"`   // brand as passed by the caller ex: Google
	Suffix     string  `json:"suffix"`     // ex: .com
	Family     Family  `json:"family"`     // ex: omission
	Confidence float64 `json:"confidence"` // 0.0-1.0
}

// Name returns the domain without its suffix
func (c *Candidate) Name() string {
	return strings.TrimSuffix(c.Domain, c.Suffix)
}
