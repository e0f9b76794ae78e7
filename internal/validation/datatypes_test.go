package validation

import (
	"strings"
	"testing"
)

func TestCheckDatatypesInvalidValue(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_bio", Definition: Definition{"datatype": "Paragraph"}},
		},
	}

	findings := checkDatatypes(draft, DefaultDatatypes)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Code != CodeInvalidDatatype || f.Severity != SeverityError {
		t.Errorf("unexpected finding: %+v", f)
	}
	if f.Field != "datatype" {
		t.Errorf("field = %q, want datatype", f.Field)
	}
	if !strings.Contains(f.Message, `"Paragraph"`) {
		t.Errorf("message must name the offending value: %q", f.Message)
	}
	if !strings.Contains(f.Message, "Text") || !strings.Contains(f.Message, "Number") {
		t.Errorf("message must list the allowed set: %q", f.Message)
	}
}

func TestCheckDatatypesValidAndUnsetSkipped(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_name", Definition: Definition{"datatype": "Text"}},
			{EntityID: "has_count", Definition: Definition{"datatype": "Number"}},
			{EntityID: "untyped", Definition: Definition{"label": "Untyped"}},
		},
	}

	if findings := checkDatatypes(draft, DefaultDatatypes); len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestCheckDatatypesCustomVocabulary(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "p1", Definition: Definition{"datatype": "Custom"}},
			{EntityID: "p2", Definition: Definition{"datatype": "Text"}},
		},
	}

	findings := checkDatatypes(draft, []string{"Custom"})
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].EntityID != "p2" {
		t.Errorf("expected p2 flagged under the custom vocabulary, got %+v", findings[0])
	}
}
