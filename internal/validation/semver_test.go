package validation

import (
	"reflect"
	"testing"
)

func TestAggregateSemverHighestWins(t *testing.T) {
	findings := []Finding{
		{Code: CodePropertyAdded, EntityID: "Person", Severity: SeverityInfo, SuggestedSemver: SemverMinor},
		{Code: CodeDatatypeChanged, EntityID: "has_age", Severity: SeverityWarning, SuggestedSemver: SemverMajor, OldValue: "Text", NewValue: "Number"},
		{Code: CodeEntityModified, EntityID: "core", Severity: SeverityInfo, SuggestedSemver: SemverPatch},
	}

	level, reasons := aggregateSemver(findings)
	if level != SemverMajor {
		t.Errorf("level = %s, want major", level)
	}
	want := []string{"DATATYPE_CHANGED: has_age (Text -> Number)"}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %v, want %v", reasons, want)
	}
}

func TestAggregateSemverMinorWhenNoMajor(t *testing.T) {
	findings := []Finding{
		{Code: CodeEntityAdded, EntityID: "X", Severity: SeverityInfo, SuggestedSemver: SemverMinor},
		{Code: CodeEntityModified, EntityID: "Y", Severity: SeverityInfo, SuggestedSemver: SemverPatch},
	}

	level, reasons := aggregateSemver(findings)
	if level != SemverMinor {
		t.Errorf("level = %s, want minor", level)
	}
	if !reflect.DeepEqual(reasons, []string{"ENTITY_ADDED: X"}) {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestAggregateSemverNoHintsDefaultsToPatch(t *testing.T) {
	level, reasons := aggregateSemver(nil)
	if level != SemverPatch {
		t.Errorf("level = %s, want patch", level)
	}
	if !reflect.DeepEqual(reasons, []string{"No breaking changes detected"}) {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestAggregateSemverErrorOverride(t *testing.T) {
	findings := []Finding{
		{Code: CodeDatatypeChanged, EntityID: "p", Severity: SeverityWarning, SuggestedSemver: SemverMajor},
		{Code: CodeMissingParent, EntityID: "X", Severity: SeverityError},
	}

	level, reasons := aggregateSemver(findings)
	if level != SemverPatch {
		t.Errorf("an invalid draft must be forced to patch, got %s", level)
	}
	if len(reasons) != 1 || reasons[0] != "draft has unresolved validation errors" {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestAggregateSemverMultipleReasonsAtWinningLevel(t *testing.T) {
	findings := []Finding{
		{Code: CodePropertyRemoved, EntityID: "Person", Severity: SeverityWarning, SuggestedSemver: SemverMajor, OldValue: "has_age"},
		{Code: CodeEntityRemoved, EntityID: "has_fax", Severity: SeverityWarning, SuggestedSemver: SemverMajor},
	}

	level, reasons := aggregateSemver(findings)
	if level != SemverMajor {
		t.Fatalf("level = %s, want major", level)
	}
	if len(reasons) != 2 {
		t.Fatalf("reasons = %v, want 2 entries", reasons)
	}
	if reasons[0] != "PROPERTY_REMOVED: Person" {
		t.Errorf("reasons[0] = %q", reasons[0])
	}
	if reasons[1] != "ENTITY_REMOVED: has_fax" {
		t.Errorf("reasons[1] = %q", reasons[1])
	}
}
