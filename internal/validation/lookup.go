package validation

import "sort"

// Lookup is the merged canonical+draft view of the ontology. Draft
// definitions shadow canonical ones for the same id; an id exists when it
// is present in either set. A Lookup is built once per validation run and
// has no side effects.
type Lookup struct {
	draft map[EntityType]map[string]Definition
	snap  Snapshot
}

// NewLookup indexes the draft payload and wraps the canonical snapshot.
// A nil draft or nil snapshot is treated as empty.
func NewLookup(draft *DraftPayload, snap Snapshot) *Lookup {
	if snap == nil {
		snap = EmptySnapshot{}
	}
	idx := make(map[EntityType]map[string]Definition, len(entityTypes))
	for _, t := range entityTypes {
		entities := draft.Entities(t)
		byID := make(map[string]Definition, len(entities))
		for _, e := range entities {
			byID[e.EntityID] = e.Definition
		}
		idx[t] = byID
	}
	return &Lookup{draft: idx, snap: snap}
}

// Exists reports whether an id resolves in the merged view.
func (l *Lookup) Exists(t EntityType, id string) bool {
	if _, ok := l.draft[t][id]; ok {
		return true
	}
	_, ok := l.snap.Definition(t, id)
	return ok
}

// Effective returns the effective definition for an id: the draft's
// definition if present, otherwise the canonical one.
func (l *Lookup) Effective(t EntityType, id string) (Definition, bool) {
	if def, ok := l.draft[t][id]; ok {
		return def, true
	}
	return l.snap.Definition(t, id)
}

// Canonical returns the canonical definition only, ignoring the draft.
func (l *Lookup) Canonical(t EntityType, id string) (Definition, bool) {
	return l.snap.Definition(t, id)
}

// MergedIDs returns the sorted union of draft and canonical ids for a type.
func (l *Lookup) MergedIDs(t EntityType) []string {
	seen := make(map[string]struct{})
	for id := range l.draft[t] {
		seen[id] = struct{}{}
	}
	for _, id := range l.snap.IDs(t) {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
