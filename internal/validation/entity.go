// Package validation implements the draft validation and change
// classification engine for the ontology hub. It is a pure, synchronous
// computation over two in-memory inputs: the draft payload under review
// and a read-only snapshot of the canonical schema.
package validation

// EntityType identifies one of the schema entity kinds the engine knows.
type EntityType string

const (
	EntityTypeCategory  EntityType = "category"
	EntityTypeProperty  EntityType = "property"
	EntityTypeSubobject EntityType = "subobject"
	EntityTypeModule    EntityType = "module"
	EntityTypeProfile   EntityType = "profile"
)

// entityTypes is the fixed iteration order used by every checker so that
// repeated runs over the same inputs produce identical reports.
var entityTypes = []EntityType{
	EntityTypeCategory,
	EntityTypeProperty,
	EntityTypeSubobject,
	EntityTypeModule,
	EntityTypeProfile,
}

// Definition is one entity's schema definition: a named field to value map
// whose shape varies per entity type (a category has parent/properties/
// subobjects, a module has category_ids/dependencies, and so on).
type Definition map[string]any

// StringField returns a string-valued field, or "" when absent or not a string.
func (d Definition) StringField(name string) string {
	if d == nil {
		return ""
	}
	if s, ok := d[name].(string); ok {
		return s
	}
	return ""
}

// StringListField returns a list-of-strings field. Missing or malformed
// fields are treated as empty collections, never as a failure.
func (d Definition) StringListField(name string) []string {
	if d == nil {
		return nil
	}
	switch v := d[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// DraftEntity is a single entity carried by a draft: its identifier, its
// proposed definition, and an explicit deletion marker. Absence of an
// entity from the draft is never interpreted as deletion.
type DraftEntity struct {
	EntityID   string     `json:"entity_id"`
	Definition Definition `json:"schema_definition"`
	Deleted    bool       `json:"deleted,omitempty"`
}

// DraftPayload is a proposed bundle of schema changes: per-type entity
// collections plus modules and profiles. Collections may be nil; every
// checker treats nil as empty.
type DraftPayload struct {
	Categories []DraftEntity `json:"categories,omitempty"`
	Properties []DraftEntity `json:"properties,omitempty"`
	Subobjects []DraftEntity `json:"subobjects,omitempty"`
	Modules    []DraftEntity `json:"modules,omitempty"`
	Profiles   []DraftEntity `json:"profiles,omitempty"`
}

// Entities returns the draft collection for one entity type in input order.
func (p *DraftPayload) Entities(t EntityType) []DraftEntity {
	if p == nil {
		return nil
	}
	switch t {
	case EntityTypeCategory:
		return p.Categories
	case EntityTypeProperty:
		return p.Properties
	case EntityTypeSubobject:
		return p.Subobjects
	case EntityTypeModule:
		return p.Modules
	case EntityTypeProfile:
		return p.Profiles
	}
	return nil
}

// Snapshot is the read-only canonical schema state a validation run
// compares against. Implementations must be fully batch-populated before
// the engine is invoked; the engine never triggers per-check fetches.
type Snapshot interface {
	// IDs returns every canonical entity id of the given type.
	IDs(entityType EntityType) []string
	// Definition returns the canonical definition of an entity, and
	// whether the entity exists canonically.
	Definition(entityType EntityType, id string) (Definition, bool)
}

// EmptySnapshot is a Snapshot with no canonical entities. Useful for
// bootstrapping a fresh ontology and in tests.
type EmptySnapshot struct{}

func (EmptySnapshot) IDs(EntityType) []string { return nil }

func (EmptySnapshot) Definition(EntityType, string) (Definition, bool) { return nil, false }
