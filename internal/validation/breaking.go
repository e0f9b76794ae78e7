package validation

import (
	"fmt"
	"reflect"
)

// Property cardinality values.
const (
	cardinalitySingle   = "single"
	cardinalityMultiple = "multiple"
)

// changeClassifier compares a draft entity against its canonical
// counterpart and reports classified changes. One handler exists per
// entity kind; all share this contract.
type changeClassifier func(e DraftEntity, old Definition) []Finding

var changeClassifiers = map[EntityType]changeClassifier{
	EntityTypeCategory:  classifyCategoryChange,
	EntityTypeProperty:  classifyPropertyChange,
	EntityTypeSubobject: descriptiveChangeClassifier(EntityTypeSubobject),
	EntityTypeModule:    descriptiveChangeClassifier(EntityTypeModule),
	EntityTypeProfile:   descriptiveChangeClassifier(EntityTypeProfile),
}

// checkBreakingChanges classifies every entity present in the draft
// against canonical state. Entities merely absent from the draft are never
// examined: drafts are typically partial, and treating unmentioned
// canonical entities as removals would flood the report with false
// positives. Deletion is only ever the explicit marker.
func checkBreakingChanges(draft *DraftPayload, lk *Lookup) []Finding {
	var findings []Finding
	for _, t := range entityTypes {
		classify := changeClassifiers[t]
		for _, e := range draft.Entities(t) {
			old, exists := lk.Canonical(t, e.EntityID)
			switch {
			case e.Deleted:
				// Deleting an entity that never existed canonically is a no-op.
				if exists {
					findings = append(findings, Finding{
						EntityType:      t,
						EntityID:        e.EntityID,
						Code:            CodeEntityRemoved,
						Message:         fmt.Sprintf("%s %q is marked for deletion; existing data may still reference it", t, e.EntityID),
						Severity:        SeverityWarning,
						SuggestedSemver: SemverMajor,
					})
				}
			case !exists:
				findings = append(findings, Finding{
					EntityType:      t,
					EntityID:        e.EntityID,
					Code:            CodeEntityAdded,
					Message:         fmt.Sprintf("new %s %q added", t, e.EntityID),
					Severity:        SeverityInfo,
					SuggestedSemver: SemverMinor,
				})
			default:
				findings = append(findings, classify(e, old)...)
			}
		}
	}
	return findings
}

// classifyPropertyChange reports datatype and cardinality changes, falling
// back to the label/description-only classification.
func classifyPropertyChange(e DraftEntity, old Definition) []Finding {
	var findings []Finding

	oldDatatype := old.StringField("datatype")
	newDatatype := e.Definition.StringField("datatype")
	if oldDatatype != newDatatype {
		findings = append(findings, Finding{
			EntityType:      EntityTypeProperty,
			EntityID:        e.EntityID,
			Field:           "datatype",
			Code:            CodeDatatypeChanged,
			Message:         fmt.Sprintf("datatype changed from %q to %q; existing values may no longer parse", oldDatatype, newDatatype),
			Severity:        SeverityWarning,
			SuggestedSemver: SemverMajor,
			OldValue:        oldDatatype,
			NewValue:        newDatatype,
		})
	}

	oldCardinality := old.StringField("cardinality")
	newCardinality := e.Definition.StringField("cardinality")
	switch {
	case oldCardinality == cardinalityMultiple && newCardinality == cardinalitySingle:
		findings = append(findings, Finding{
			EntityType:      EntityTypeProperty,
			EntityID:        e.EntityID,
			Field:           "cardinality",
			Code:            CodeCardinalityRestricted,
			Message:         "cardinality restricted from multiple to single; multi-valued data would be invalidated",
			Severity:        SeverityWarning,
			SuggestedSemver: SemverMajor,
			OldValue:        oldCardinality,
			NewValue:        newCardinality,
		})
	case oldCardinality == cardinalitySingle && newCardinality == cardinalityMultiple:
		findings = append(findings, Finding{
			EntityType:      EntityTypeProperty,
			EntityID:        e.EntityID,
			Field:           "cardinality",
			Code:            CodeCardinalityRelaxed,
			Message:         "cardinality relaxed from single to multiple",
			Severity:        SeverityInfo,
			SuggestedSemver: SemverMinor,
			OldValue:        oldCardinality,
			NewValue:        newCardinality,
		})
	}

	if f, ok := descriptiveOnlyChange(EntityTypeProperty, e, old); ok {
		findings = append(findings, f)
	}
	return findings
}

// classifyCategoryChange diffs the category's property membership list.
// Removing a property a category carried canonically is breaking: existing
// data instances may still carry that property.
func classifyCategoryChange(e DraftEntity, old Definition) []Finding {
	var findings []Finding

	oldProps := old.StringListField("properties")
	newProps := e.Definition.StringListField("properties")
	newSet := make(map[string]struct{}, len(newProps))
	for _, p := range newProps {
		newSet[p] = struct{}{}
	}
	oldSet := make(map[string]struct{}, len(oldProps))
	for _, p := range oldProps {
		oldSet[p] = struct{}{}
	}

	for _, p := range oldProps {
		if _, ok := newSet[p]; ok {
			continue
		}
		findings = append(findings, Finding{
			EntityType:      EntityTypeCategory,
			EntityID:        e.EntityID,
			Field:           "properties",
			Code:            CodePropertyRemoved,
			Message:         fmt.Sprintf("property %q removed from category %q; existing instances may still carry it", p, e.EntityID),
			Severity:        SeverityWarning,
			SuggestedSemver: SemverMajor,
			OldValue:        p,
		})
	}
	for _, p := range newProps {
		if _, ok := oldSet[p]; ok {
			continue
		}
		findings = append(findings, Finding{
			EntityType:      EntityTypeCategory,
			EntityID:        e.EntityID,
			Field:           "properties",
			Code:            CodePropertyAdded,
			Message:         fmt.Sprintf("property %q added to category %q", p, e.EntityID),
			Severity:        SeverityInfo,
			SuggestedSemver: SemverMinor,
			NewValue:        p,
		})
	}

	if f, ok := descriptiveOnlyChange(EntityTypeCategory, e, old); ok {
		findings = append(findings, f)
	}
	return findings
}

// descriptiveChangeClassifier builds the handler for kinds whose only
// classified modification is the label/description-only case.
func descriptiveChangeClassifier(t EntityType) changeClassifier {
	return func(e DraftEntity, old Definition) []Finding {
		if f, ok := descriptiveOnlyChange(t, e, old); ok {
			return []Finding{f}
		}
		return nil
	}
}

// descriptiveOnlyChange reports the patch-level finding for an entity
// whose definition differs from canonical state only in its label or
// description fields.
func descriptiveOnlyChange(t EntityType, e DraftEntity, old Definition) (Finding, bool) {
	if !descriptiveFieldsDiffer(old, e.Definition) {
		return Finding{}, false
	}
	if !reflect.DeepEqual(withoutDescriptiveFields(old), withoutDescriptiveFields(e.Definition)) {
		return Finding{}, false
	}
	return Finding{
		EntityType:      t,
		EntityID:        e.EntityID,
		Code:            CodeEntityModified,
		Message:         fmt.Sprintf("%s %q label or description updated", t, e.EntityID),
		Severity:        SeverityInfo,
		SuggestedSemver: SemverPatch,
	}, true
}

func descriptiveFieldsDiffer(old, updated Definition) bool {
	return old.StringField("label") != updated.StringField("label") ||
		old.StringField("description") != updated.StringField("description")
}

func withoutDescriptiveFields(def Definition) Definition {
	stripped := make(Definition, len(def))
	for k, v := range def {
		if k == "label" || k == "description" {
			continue
		}
		stripped[k] = v
	}
	return stripped
}
