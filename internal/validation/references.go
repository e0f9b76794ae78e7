package validation

import "fmt"

// referenceRule describes one reference-carrying field of an entity kind:
// which field, which entity type it points at, and the finding code for an
// unresolved id.
type referenceRule struct {
	field  string
	target EntityType
	code   string
	scalar bool
}

// referenceRules lists every cross-entity reference field per entity kind,
// in the order findings are reported. Properties carry no references.
var referenceRules = map[EntityType][]referenceRule{
	EntityTypeCategory: {
		{field: "parent", target: EntityTypeCategory, code: CodeMissingParent, scalar: true},
		{field: "properties", target: EntityTypeProperty, code: CodeMissingProperty},
		{field: "subobjects", target: EntityTypeSubobject, code: CodeMissingSubobject},
	},
	EntityTypeModule: {
		{field: "category_ids", target: EntityTypeCategory, code: CodeMissingCategory},
		{field: "dependencies", target: EntityTypeModule, code: CodeMissingModule},
	},
	EntityTypeProfile: {
		{field: "module_ids", target: EntityTypeModule, code: CodeMissingModule},
	},
}

// checkReferences verifies that every reference field of every draft entity
// resolves through the merged lookup. Each unresolved id produces its own
// finding; repeated offending ids are not merged.
func checkReferences(draft *DraftPayload, lk *Lookup) []Finding {
	var findings []Finding
	for _, t := range entityTypes {
		rules := referenceRules[t]
		if len(rules) == 0 {
			continue
		}
		for _, e := range draft.Entities(t) {
			for _, rule := range rules {
				if rule.scalar {
					id := e.Definition.StringField(rule.field)
					if id != "" && !lk.Exists(rule.target, id) {
						findings = append(findings, missingReference(t, e.EntityID, rule, id))
					}
					continue
				}
				for _, id := range e.Definition.StringListField(rule.field) {
					if !lk.Exists(rule.target, id) {
						findings = append(findings, missingReference(t, e.EntityID, rule, id))
					}
				}
			}
		}
	}
	return findings
}

func missingReference(t EntityType, entityID string, rule referenceRule, missingID string) Finding {
	return Finding{
		EntityType: t,
		EntityID:   entityID,
		Field:      rule.field,
		Code:       rule.code,
		Message:    fmt.Sprintf("%s %q references %s %q which does not exist", t, entityID, rule.target, missingID),
		Severity:   SeverityError,
	}
}
