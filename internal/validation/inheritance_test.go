package validation

import "testing"

func TestCheckInheritanceNoCycle(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Employee", Definition: Definition{"parent": "Person"}},
			{EntityID: "Person", Definition: Definition{"parent": "Agent"}},
			{EntityID: "Agent", Definition: Definition{}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	if findings := checkInheritance(lk); len(findings) != 0 {
		t.Errorf("acyclic graph must produce no findings, got %+v", findings)
	}
}

func TestCheckInheritanceTwoNodeCycle(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "B"}},
			{EntityID: "B", Definition: Definition{"parent": "A"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkInheritance(lk)
	if len(findings) != 2 {
		t.Fatalf("expected one finding per cycle node, got %d: %+v", len(findings), findings)
	}
	wantPath := "A -> B -> A"
	seen := map[string]bool{}
	for _, f := range findings {
		if f.Code != CodeCircularInheritance || f.Severity != SeverityError {
			t.Errorf("unexpected finding: %+v", f)
		}
		if want := "circular inheritance detected: " + wantPath; f.Message != want {
			t.Errorf("message = %q, want %q", f.Message, want)
		}
		seen[f.EntityID] = true
	}
	if !seen["A"] || !seen["B"] {
		t.Errorf("cycle findings must reference both nodes, got %v", seen)
	}
}

func TestCheckInheritanceSelfParent(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Recursive", Definition: Definition{"parent": "Recursive"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkInheritance(lk)
	if len(findings) != 1 {
		t.Fatalf("self-parent is a 1-edge cycle, got %d findings", len(findings))
	}
	if want := "circular inheritance detected: Recursive -> Recursive"; findings[0].Message != want {
		t.Errorf("message = %q, want %q", findings[0].Message, want)
	}
}

func TestCheckInheritanceDraftIntroducesCycleOverCanonical(t *testing.T) {
	// Canonically Person -> Agent is acyclic; the draft repoints Agent's
	// parent to Person, closing the loop through a canonical edge.
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Agent", Definition: Definition{"parent": "Person"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {
			"Person": Definition{"parent": "Agent"},
			"Agent":  Definition{},
		},
	}
	lk := NewLookup(draft, snap)

	findings := checkInheritance(lk)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %+v", len(findings), findings)
	}
}

func TestCheckInheritanceDraftRemovesCanonicalEdge(t *testing.T) {
	// Canonical state has a cycle; the draft clears one parent, so the
	// merged graph is acyclic.
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {
			"A": Definition{"parent": "B"},
			"B": Definition{"parent": "A"},
		},
	}
	lk := NewLookup(draft, snap)

	if findings := checkInheritance(lk); len(findings) != 0 {
		t.Errorf("draft override should have broken the cycle, got %+v", findings)
	}
}

func TestCheckInheritanceUnresolvedParentIsNotAnEdge(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "X", Definition: Definition{"parent": "Ghost"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	if findings := checkInheritance(lk); len(findings) != 0 {
		t.Errorf("missing parents are not nodes, got %+v", findings)
	}
}

func TestCheckInheritanceTwoIndependentCycles(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "B"}},
			{EntityID: "B", Definition: Definition{"parent": "A"}},
			{EntityID: "C", Definition: Definition{"parent": "C"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkInheritance(lk)
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings across both cycles, got %d", len(findings))
	}
}

func TestCheckInheritanceChainIntoCycleReportsCycleOnly(t *testing.T) {
	// D hangs off the A/B cycle but is not itself on it.
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "A", Definition: Definition{"parent": "B"}},
			{EntityID: "B", Definition: Definition{"parent": "A"}},
			{EntityID: "D", Definition: Definition{"parent": "A"}},
		},
	}
	lk := NewLookup(draft, EmptySnapshot{})

	findings := checkInheritance(lk)
	for _, f := range findings {
		if f.EntityID == "D" {
			t.Errorf("D is not on the cycle and must not be reported: %+v", findings)
		}
	}
	if len(findings) != 2 {
		t.Fatalf("expected findings for A and B only, got %d", len(findings))
	}
}
