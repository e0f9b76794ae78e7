package validation

import "testing"

func TestCheckReferencesAllRuleKinds(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Person", Definition: Definition{
				"parent":     "Ghost",
				"properties": []any{"has_name", "no_such_prop"},
				"subobjects": []any{"no_such_sub"},
			}},
		},
		Properties: []DraftEntity{
			{EntityID: "has_name", Definition: Definition{"datatype": "Text"}},
		},
		Modules: []DraftEntity{
			{EntityID: "core", Definition: Definition{
				"category_ids": []any{"Person", "Missing"},
				"dependencies": []any{"absent_module"},
			}},
		},
		Profiles: []DraftEntity{
			{EntityID: "default", Definition: Definition{
				"module_ids": []any{"core", "absent_module"},
			}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkReferences(draft, lk)

	wantCodes := []string{
		CodeMissingParent,
		CodeMissingProperty,
		CodeMissingSubobject,
		CodeMissingCategory,
		CodeMissingModule,
		CodeMissingModule,
	}
	if len(findings) != len(wantCodes) {
		t.Fatalf("got %d findings, want %d: %+v", len(findings), len(wantCodes), findings)
	}
	for i, code := range wantCodes {
		if findings[i].Code != code {
			t.Errorf("finding[%d].Code = %s, want %s", i, findings[i].Code, code)
		}
		if findings[i].Severity != SeverityError {
			t.Errorf("finding[%d].Severity = %s, want error", i, findings[i].Severity)
		}
	}
}

func TestCheckReferencesResolvedAcrossDraftAndCanonical(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Employee", Definition: Definition{
				"parent":     "Person",
				"properties": []any{"has_name"},
			}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {"Person": Definition{}},
		EntityTypeProperty: {"has_name": Definition{"datatype": "Text"}},
	}
	lk := NewLookup(draft, snap)

	if findings := checkReferences(draft, lk); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestCheckReferencesDuplicatesNotMerged(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Person", Definition: Definition{
				"properties": []any{"ghost", "ghost"},
			}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkReferences(draft, lk)
	if len(findings) != 2 {
		t.Fatalf("repeated offending ids must each produce a finding, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Code != CodeMissingProperty || f.Field != "properties" {
			t.Errorf("unexpected finding: %+v", f)
		}
	}
}

func TestCheckReferencesUnsetParentIgnored(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Root", Definition: Definition{"label": "Root"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	if findings := checkReferences(draft, lk); len(findings) != 0 {
		t.Errorf("unset parent must not be flagged, got %+v", findings)
	}
}
