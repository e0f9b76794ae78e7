package validation

import "testing"

func TestBreakingEntityAdded(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_name", Definition: Definition{"datatype": "Text"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Code != CodeEntityAdded || f.Severity != SeverityInfo || f.SuggestedSemver != SemverMinor {
		t.Errorf("unexpected finding: %+v", f)
	}
}

func TestBreakingEntityRemoved(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_legacy", Deleted: true},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"has_legacy": Definition{"datatype": "Text"}},
	}
	lk := NewLookup(draft, snap)

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Code != CodeEntityRemoved || f.Severity != SeverityWarning || f.SuggestedSemver != SemverMajor {
		t.Errorf("unexpected finding: %+v", f)
	}
}

func TestBreakingDeleteOfUnknownEntityIsNoOp(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "never_existed", Deleted: true},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	if findings := checkBreakingChanges(draft, lk); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestBreakingDatatypeChanged(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_age", Definition: Definition{"datatype": "Number"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"has_age": Definition{"datatype": "Text"}},
	}
	lk := NewLookup(draft, snap)

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(findings), findings)
	}
	f := findings[0]
	if f.Code != CodeDatatypeChanged || f.Severity != SeverityWarning || f.SuggestedSemver != SemverMajor {
		t.Errorf("unexpected finding: %+v", f)
	}
	if f.OldValue != "Text" || f.NewValue != "Number" {
		t.Errorf("old/new = %q/%q, want Text/Number", f.OldValue, f.NewValue)
	}
}

func TestBreakingCardinality(t *testing.T) {
	tests := []struct {
		name        string
		old, new    string
		wantCode    string
		wantSev     Severity
		wantSemver  SemverLevel
		wantNothing bool
	}{
		{name: "restricted", old: "multiple", new: "single", wantCode: CodeCardinalityRestricted, wantSev: SeverityWarning, wantSemver: SemverMajor},
		{name: "relaxed", old: "single", new: "multiple", wantCode: CodeCardinalityRelaxed, wantSev: SeverityInfo, wantSemver: SemverMinor},
		{name: "unchanged", old: "single", new: "single", wantNothing: true},
		{name: "unset to single", old: "", new: "single", wantNothing: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def := Definition{"datatype": "Text"}
			if tc.new != "" {
				def["cardinality"] = tc.new
			}
			oldDef := Definition{"datatype": "Text"}
			if tc.old != "" {
				oldDef["cardinality"] = tc.old
			}
			draft := &DraftPayload{
				Properties: []DraftEntity{{EntityID: "p", Definition: def}},
			}
			snap := fakeSnapshot{EntityTypeProperty: {"p": oldDef}}
			lk := NewLookup(draft, snap)

			findings := checkBreakingChanges(draft, lk)
			if tc.wantNothing {
				if len(findings) != 0 {
					t.Fatalf("expected no findings, got %+v", findings)
				}
				return
			}
			if len(findings) != 1 {
				t.Fatalf("expected 1 finding, got %d: %+v", len(findings), findings)
			}
			f := findings[0]
			if f.Code != tc.wantCode || f.Severity != tc.wantSev || f.SuggestedSemver != tc.wantSemver {
				t.Errorf("unexpected finding: %+v", f)
			}
		})
	}
}

func TestBreakingCategoryPropertyListDiff(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Person", Definition: Definition{
				"properties": []any{"has_name", "has_email"},
			}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {
			"Person": Definition{"properties": []any{"has_name", "has_age"}},
		},
	}
	lk := NewLookup(draft, snap)

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 2 {
		t.Fatalf("expected removed + added findings, got %d: %+v", len(findings), findings)
	}

	removed := findings[0]
	if removed.Code != CodePropertyRemoved || removed.Severity != SeverityWarning || removed.SuggestedSemver != SemverMajor {
		t.Errorf("unexpected removed finding: %+v", removed)
	}
	if removed.OldValue != "has_age" {
		t.Errorf("removed.OldValue = %q, want has_age", removed.OldValue)
	}

	added := findings[1]
	if added.Code != CodePropertyAdded || added.Severity != SeverityInfo || added.SuggestedSemver != SemverMinor {
		t.Errorf("unexpected added finding: %+v", added)
	}
	if added.NewValue != "has_email" {
		t.Errorf("added.NewValue = %q, want has_email", added.NewValue)
	}
}

func TestBreakingLabelDescriptionOnlyIsPatch(t *testing.T) {
	draft := &DraftPayload{
		Modules: []DraftEntity{
			{EntityID: "core", Definition: Definition{
				"label":        "Core module",
				"category_ids": []any{"Person"},
			}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeModule: {
			"core": Definition{"label": "Core", "category_ids": []any{"Person"}},
		},
	}
	lk := NewLookup(draft, snap)

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(findings), findings)
	}
	f := findings[0]
	if f.Code != CodeEntityModified || f.Severity != SeverityInfo || f.SuggestedSemver != SemverPatch {
		t.Errorf("unexpected finding: %+v", f)
	}
}

func TestBreakingLabelChangeAlongsideStructuralChangeIsNotPatch(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "p", Definition: Definition{"label": "New", "datatype": "Number"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"p": Definition{"label": "Old", "datatype": "Text"}},
	}
	lk := NewLookup(draft, snap)

	findings := checkBreakingChanges(draft, lk)
	if len(findings) != 1 {
		t.Fatalf("expected only the datatype finding, got %d: %+v", len(findings), findings)
	}
	if findings[0].Code != CodeDatatypeChanged {
		t.Errorf("unexpected finding: %+v", findings[0])
	}
}

func TestBreakingUnchangedEntityProducesNothing(t *testing.T) {
	def := Definition{"datatype": "Text", "label": "Name"}
	draft := &DraftPayload{
		Properties: []DraftEntity{{EntityID: "p", Definition: def}},
	}
	snap := fakeSnapshot{EntityTypeProperty: {"p": def}}
	lk := NewLookup(draft, snap)

	if findings := checkBreakingChanges(draft, lk); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestBreakingCanonicalAbsenceFromDraftIsNotDeletion(t *testing.T) {
	// Drafts are partial: canonical entities not mentioned by the draft
	// must never be classified.
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "touched", Definition: Definition{"datatype": "Text"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {
			"touched":   Definition{"datatype": "Text"},
			"untouched": Definition{"datatype": "Text"},
		},
	}
	lk := NewLookup(draft, snap)

	for _, f := range checkBreakingChanges(draft, lk) {
		if f.EntityID == "untouched" {
			t.Errorf("untouched canonical entity must not be classified: %+v", f)
		}
	}
}
