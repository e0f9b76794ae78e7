package validation

// Validator runs the validation pipeline over drafts. A Validator is
// immutable and safe for concurrent use; each run allocates its own lookup
// structures and shares no state with other runs.
type Validator struct {
	datatypes []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithDatatypes overrides the allowed property datatype vocabulary.
func WithDatatypes(datatypes []string) Option {
	return func(v *Validator) {
		if len(datatypes) > 0 {
			v.datatypes = datatypes
		}
	}
}

// NewValidator creates a Validator with the default datatype vocabulary.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{datatypes: DefaultDatatypes}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks one draft against a canonical snapshot and assembles the
// report. The pipeline is a single linear path: references, inheritance
// cycles, datatypes, breaking changes, then semver aggregation. Stages run
// unconditionally over the same inputs and never short-circuit each other;
// a reference error does not suppress cycle detection. Draft data-quality
// problems are always findings, never returned errors.
func (v *Validator) Validate(draft *DraftPayload, snap Snapshot) *Report {
	if draft == nil {
		draft = &DraftPayload{}
	}
	lk := NewLookup(draft, snap)

	var findings []Finding
	findings = append(findings, checkReferences(draft, lk)...)
	findings = append(findings, checkInheritance(lk)...)
	findings = append(findings, checkDatatypes(draft, v.datatypes)...)
	findings = append(findings, checkBreakingChanges(draft, lk)...)

	return newReport(findings)
}
