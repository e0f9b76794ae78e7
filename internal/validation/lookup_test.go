package validation

import (
	"reflect"
	"testing"
)

// fakeSnapshot is an in-memory Snapshot for tests.
type fakeSnapshot map[EntityType]map[string]Definition

func (s fakeSnapshot) IDs(t EntityType) []string {
	ids := make([]string, 0, len(s[t]))
	for id := range s[t] {
		ids = append(ids, id)
	}
	return ids
}

func (s fakeSnapshot) Definition(t EntityType, id string) (Definition, bool) {
	def, ok := s[t][id]
	return def, ok
}

func TestLookupExistsUnion(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{{EntityID: "Person", Definition: Definition{}}},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {"Organization": Definition{}},
	}
	lk := NewLookup(draft, snap)

	if !lk.Exists(EntityTypeCategory, "Person") {
		t.Error("draft-only id should exist")
	}
	if !lk.Exists(EntityTypeCategory, "Organization") {
		t.Error("canonical-only id should exist")
	}
	if lk.Exists(EntityTypeCategory, "Ghost") {
		t.Error("unknown id should not exist")
	}
	if lk.Exists(EntityTypeProperty, "Person") {
		t.Error("ids are scoped per entity type")
	}
}

func TestLookupDraftShadowsCanonical(t *testing.T) {
	draft := &DraftPayload{
		Properties: []DraftEntity{
			{EntityID: "has_name", Definition: Definition{"datatype": "Number"}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeProperty: {"has_name": Definition{"datatype": "Text"}},
	}
	lk := NewLookup(draft, snap)

	def, ok := lk.Effective(EntityTypeProperty, "has_name")
	if !ok {
		t.Fatal("effective definition not found")
	}
	if got := def.StringField("datatype"); got != "Number" {
		t.Errorf("effective datatype = %q, want draft value %q", got, "Number")
	}

	canonical, ok := lk.Canonical(EntityTypeProperty, "has_name")
	if !ok {
		t.Fatal("canonical definition not found")
	}
	if got := canonical.StringField("datatype"); got != "Text" {
		t.Errorf("canonical datatype = %q, want %q", got, "Text")
	}
}

func TestLookupEffectiveFallsBackToCanonical(t *testing.T) {
	snap := fakeSnapshot{
		EntityTypeCategory: {"Person": Definition{"label": "Person"}},
	}
	lk := NewLookup(&DraftPayload{}, snap)

	def, ok := lk.Effective(EntityTypeCategory, "Person")
	if !ok {
		t.Fatal("canonical definition should resolve")
	}
	if def.StringField("label") != "Person" {
		t.Errorf("unexpected definition: %v", def)
	}

	if _, ok := lk.Effective(EntityTypeCategory, "Ghost"); ok {
		t.Error("absent id should not resolve")
	}
}

func TestLookupMergedIDsSorted(t *testing.T) {
	draft := &DraftPayload{
		Categories: []DraftEntity{
			{EntityID: "Zebra", Definition: Definition{}},
			{EntityID: "Person", Definition: Definition{}},
		},
	}
	snap := fakeSnapshot{
		EntityTypeCategory: {"Person": Definition{}, "Animal": Definition{}},
	}
	lk := NewLookup(draft, snap)

	got := lk.MergedIDs(EntityTypeCategory)
	want := []string{"Animal", "Person", "Zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergedIDs = %v, want %v", got, want)
	}
}

func TestLookupNilInputs(t *testing.T) {
	lk := NewLookup(nil, nil)
	if lk.Exists(EntityTypeCategory, "anything") {
		t.Error("empty lookup should resolve nothing")
	}
	if ids := lk.MergedIDs(EntityTypeModule); len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}
}
