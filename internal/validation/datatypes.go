package validation

import (
	"fmt"
	"strings"
)

// DefaultDatatypes is the closed vocabulary of permitted property datatype
// labels, established by the host ontology's type system. Deployments may
// override the set through configuration; membership is never computed.
var DefaultDatatypes = []string{
	"Text",
	"Number",
	"Date",
	"Boolean",
	"Page",
	"URL",
	"Email",
	"Telephone number",
	"Code",
	"Quantity",
	"Temperature",
	"Geographic coordinates",
	"Monolingual text",
	"External identifier",
	"Record",
	"Keyword",
}

// checkDatatypes flags every draft property whose datatype field is set
// but is not a member of the allowed vocabulary.
func checkDatatypes(draft *DraftPayload, allowed []string) []Finding {
	members := make(map[string]struct{}, len(allowed))
	for _, d := range allowed {
		members[d] = struct{}{}
	}

	var findings []Finding
	for _, e := range draft.Entities(EntityTypeProperty) {
		datatype := e.Definition.StringField("datatype")
		if datatype == "" {
			continue
		}
		if _, ok := members[datatype]; ok {
			continue
		}
		findings = append(findings, Finding{
			EntityType: EntityTypeProperty,
			EntityID:   e.EntityID,
			Field:      "datatype",
			Code:       CodeInvalidDatatype,
			Message: fmt.Sprintf("datatype %q is not allowed; must be one of: %s",
				datatype, strings.Join(allowed, ", ")),
			Severity: SeverityError,
		})
	}
	return findings
}
