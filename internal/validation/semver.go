package validation

import "fmt"

// aggregateSemver reduces all findings into one version-bump suggestion.
// The highest suggested level wins (major > minor > patch), with the
// reasons taken from the findings at the winning level. A draft carrying
// any error-severity finding is forced down to patch: an invalid draft is
// not ready for a meaningful version-bump classification.
func aggregateSemver(findings []Finding) (SemverLevel, []string) {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return SemverPatch, []string{"draft has unresolved validation errors"}
		}
	}

	highest := SemverLevel("")
	for _, f := range findings {
		if f.SuggestedSemver.rank() > highest.rank() {
			highest = f.SuggestedSemver
		}
	}
	if highest == "" {
		return SemverPatch, []string{"No breaking changes detected"}
	}

	var reasons []string
	for _, f := range findings {
		if f.SuggestedSemver != highest {
			continue
		}
		reasons = append(reasons, semverReason(f))
	}
	return highest, reasons
}

// semverReason renders one finding as an aggregate reason string.
func semverReason(f Finding) string {
	if f.OldValue != "" && f.NewValue != "" {
		return fmt.Sprintf("%s: %s (%s -> %s)", f.Code, f.EntityID, f.OldValue, f.NewValue)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.EntityID)
}
