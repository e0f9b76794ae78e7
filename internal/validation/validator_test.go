package validation

import (
	"bytes"
	"encoding/json"
	"testing"
)

// Scenario: a draft-introduced two-node inheritance cycle.
func TestValidateInheritanceCycle(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "B"}},
			{EntityID: "B", Definition: Definition{"parent": "A"}},
		},
	}

	report := NewValidator().Validate(draft, EmptySnapshot{})

	var cycleErrors []Finding
	for _, f := range report.Errors {
		if f.Code == CodeCircularInheritance {
			cycleErrors = append(cycleErrors, f)
		}
	}
	if len(cycleErrors) != 2 {
		t.Fatalf("expected a cycle finding per node, got %d: %+v", len(cycleErrors), cycleErrors)
	}
	for _, f := range cycleErrors {
		if want := "circular inheritance detected: A -> B -> A"; f.Message != want {
			t.Errorf("message = %q, want %q", f.Message, want)
		}
	}
	if report.IsValid {
		t.Error("report with cycle errors must be invalid")
	}
}

// Scenario: a property with a datatype outside the vocabulary.
func TestValidateInvalidDatatype(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "P", Definition: Definition{"datatype": "Paragraph"}},
		},
	}

	report := NewValidator().Validate(draft, EmptySnapshot{})

	count := 0
	for _, f := range report.Errors {
		if f.Code == CodeInvalidDatatype {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one INVALID_DATATYPE error, got %d", count)
	}
}

// Scenario: a canonical property's datatype changes Text -> Number.
func TestValidateDatatypeChangeSuggestsMajor(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "P", Definition: Definition{"datatype": "Number"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"P": Definition{"datatype": "Text"}},
	}

	report := NewValidator().Validate(draft, snap)

	if !report.IsValid {
		t.Fatalf("draft has no errors, report: %+v", report)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(report.Warnings), report.Warnings)
	}
	w := report.Warnings[0]
	if w.Code != CodeDatatypeChanged || w.OldValue != "Text" || w.NewValue != "Number" || w.SuggestedSemver != SemverMajor {
		t.Errorf("unexpected warning: %+v", w)
	}
	if report.SuggestedSemver != SemverMajor {
		t.Errorf("suggested_semver = %s, want major", report.SuggestedSemver)
	}
}

// Scenario: a missing parent invalidates the draft and forces the
// suggestion down to patch.
func TestValidateMissingParentErrorOverride(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "X", Definition: Definition{"parent": "Ghost"}},
		},
	}

	report := NewValidator().Validate(draft, EmptySnapshot{})

	if report.IsValid {
		t.Error("is_valid must be false")
	}
	found := false
	for _, f := range report.Errors {
		if f.Code == CodeMissingParent {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MISSING_PARENT error, got %+v", report.Errors)
	}
	if report.SuggestedSemver != SemverPatch {
		t.Errorf("suggested_semver = %s, want patch", report.SuggestedSemver)
	}
	if len(report.SemverReasons) != 1 || report.SemverReasons[0] != "draft has unresolved validation errors" {
		t.Errorf("semver_reasons = %v", report.SemverReasons)
	}
}

// Scenario: cardinality relaxed single -> multiple, nothing else.
func TestValidateCardinalityRelaxedSuggestsMinor(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "P", Definition: Definition{"datatype": "Text", "cardinality": "multiple"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"P": Definition{"datatype": "Text", "cardinality": "single"}},
	}

	report := NewValidator().Validate(draft, snap)

	if !report.IsValid {
		t.Fatalf("unexpected errors: %+v", report.Errors)
	}
	if len(report.Info) != 1 || report.Info[0].Code != CodeCardinalityRelaxed {
		t.Fatalf("expected one CARDINALITY_RELAXED info finding, got %+v", report.Info)
	}
	if report.SuggestedSemver != SemverMinor {
		t.Errorf("suggested_semver = %s, want minor", report.SuggestedSemver)
	}
}

// A reference error must not suppress the other stages: the cycle and
// datatype checks still run over the same draft.
func TestValidateStagesNeverShortCircuit(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "Ghost"}},
			{EntityID: "B", Definition: Definition{"parent": "C"}},
			{EntityID: "C", Definition: Definition{"parent": "B"}},
		},
		Properties: []DraftEntity{
			{EntityID: "P", Definition: Definition{"datatype": "Paragraph"}},
		},
	}

	report := NewValidator().Validate(draft, EmptySnapshot{})

	codes := map[string]int{}
	for _, f := range report.Errors {
		codes[f.Code]++
	}
	if codes[CodeMissingParent] != 1 {
		t.Errorf("MISSING_PARENT count = %d, want 1", codes[CodeMissingParent])
	}
	if codes[CodeCircularInheritance] != 2 {
		t.Errorf("CIRCULAR_INHERITANCE count = %d, want 2", codes[CodeCircularInheritance])
	}
	if codes[CodeInvalidDatatype] != 1 {
		t.Errorf("INVALID_DATATYPE count = %d, want 1", codes[CodeInvalidDatatype])
	}
}

func TestValidateIdempotent(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Person", Definition: Definition{
				"parent":     "Agent",
				"properties": []any{"has_name", "ghost_prop"},
			}},
			{EntityID: "Agent", Definition: Definition{"parent": "Person"}},
		},
		Properties: []DraftEntity{
			{EntityID: "has_name", Definition: Definition{"datatype": "Text"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"has_name": Definition{"datatype": "Page"}},
	}

	v := NewValidator()
	first, err := json.Marshal(v.Validate(draft, snap))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(v.Validate(draft, snap))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("reports differ between runs:\n%s\n%s", first, again)
		}
	}
}

func TestValidateNilDraftAndEmptyCollections(t *testing.T) {
	v := NewValidator()

	report := v.Validate(nil, EmptySnapshot{})
	if !report.IsValid {
		t.Error("empty draft must be valid")
	}
	if report.SuggestedSemver != SemverPatch {
		t.Errorf("suggested_semver = %s, want patch", report.SuggestedSemver)
	}

	report = v.Validate(&DraftPayload{}, nil)
	if !report.IsValid {
		t.Error("nil snapshot must be treated as empty, not crash")
	}
}

func TestValidateReportJSONShape(t *testing.T) {
	report := NewValidator().Validate(&DraftPayload{}, EmptySnapshot{})

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"is_valid", "errors", "warnings", "info", "suggested_semver", "semver_reasons"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing %q: %s", key, raw)
		}
	}
	if _, ok := decoded["errors"].([]any); !ok {
		t.Errorf("errors must serialize as an array, got %s", raw)
	}
}

// Every finding references an id the merged lookup can resolve; the
// engine never invents phantom ids.
func TestValidateFindingsReferenceRealEntities(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "B", "properties": []any{"nope"}}},
			{EntityID: "B", Definition: Definition{"parent": "A"}},
		},
		Properties: []DraftEntity{
			{EntityID: "P", Definition: Definition{"datatype": "Paragraph"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})
	report := NewValidator().Validate(draft, EmptySnapshot{})

	all := append(append(append([]Finding{}, report.Errors...), report.Warnings...), report.Info...)
	for _, f := range all {
		if !lk.Exists(f.EntityType, f.EntityID) {
			t.Errorf("finding references phantom id %s/%s", f.EntityType, f.EntityID)
		}
	}
}
