package validation

// Severity classifies how blocking a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// SemverLevel is a recommended version-bump category.
type SemverLevel string

const (
	SemverMajor SemverLevel = "major"
	SemverMinor SemverLevel = "minor"
	SemverPatch SemverLevel = "patch"
)

// rank orders semver levels for aggregation; higher wins.
func (l SemverLevel) rank() int {
	switch l {
	case SemverMajor:
		return 3
	case SemverMinor:
		return 2
	case SemverPatch:
		return 1
	}
	return 0
}

// Finding codes. Error codes mark blocking consistency violations;
// the remaining codes classify changes against canonical state.
const (
	CodeMissingParent         = "MISSING_PARENT"
	CodeMissingProperty       = "MISSING_PROPERTY"
	CodeMissingSubobject      = "MISSING_SUBOBJECT"
	CodeMissingCategory       = "MISSING_CATEGORY"
	CodeMissingModule         = "MISSING_MODULE"
	CodeCircularInheritance   = "CIRCULAR_INHERITANCE"
	CodeInvalidDatatype       = "INVALID_DATATYPE"
	CodeEntityAdded           = "ENTITY_ADDED"
	CodeEntityRemoved         = "ENTITY_REMOVED"
	CodeEntityModified        = "ENTITY_MODIFIED"
	CodeDatatypeChanged       = "DATATYPE_CHANGED"
	CodeCardinalityRestricted = "CARDINALITY_RESTRICTED"
	CodeCardinalityRelaxed    = "CARDINALITY_RELAXED"
	CodePropertyRemoved       = "PROPERTY_REMOVED"
	CodePropertyAdded         = "PROPERTY_ADDED"
)

// Finding is one reported consistency issue or classified change.
// Findings are immutable once created.
type Finding struct {
	EntityType      EntityType  `json:"entity_type"`
	EntityID        string      `json:"entity_id"`
	Field           string      `json:"field,omitempty"`
	Code            string      `json:"code"`
	Message         string      `json:"message"`
	Severity        Severity    `json:"severity"`
	SuggestedSemver SemverLevel `json:"suggested_semver,omitempty"`
	OldValue        string      `json:"old_value,omitempty"`
	NewValue        string      `json:"new_value,omitempty"`
}
