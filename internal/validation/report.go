package validation

// Report is the outcome of one validation run. Findings are partitioned by
// severity in the order the pipeline produced them. The JSON shape is a
// stable contract consumed by the API layer and persisted alongside drafts.
type Report struct {
	IsValid         bool        `json:"is_valid"`
	Errors          []Finding   `json:"errors"`
	Warnings        []Finding   `json:"warnings"`
	Info            []Finding   `json:"info"`
	SuggestedSemver SemverLevel `json:"suggested_semver"`
	SemverReasons   []string    `json:"semver_reasons"`
}

// newReport partitions findings by severity and fills the semver
// suggestion. Slices are always non-nil so the serialized report carries
// empty arrays rather than nulls.
func newReport(findings []Finding) *Report {
	r := &Report{
		Errors:   []Finding{},
		Warnings: []Finding{},
		Info:     []Finding{},
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.Errors = append(r.Errors, f)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, f)
		default:
			r.Info = append(r.Info, f)
		}
	}
	r.SuggestedSemver, r.SemverReasons = aggregateSemver(findings)
	r.IsValid = len(r.Errors) == 0
	return r
}
