// Package graph provides GraphQL types for the ontology hub API.
// This file binds the JSON scalar in the schema to encoding/json.RawMessage.
package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/99designs/gqlgen/graphql"
)

// MarshalJSONScalar writes a raw JSON payload verbatim as the JSON scalar.
func MarshalJSONScalar(b json.RawMessage) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		if len(b) == 0 {
			io.WriteString(w, "null")
			return
		}
		w.Write(b)
	})
}

// UnmarshalJSONScalar converts an incoming JSON scalar value back to raw JSON.
func UnmarshalJSONScalar(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON scalar: %w", err)
	}
	return json.RawMessage(b), nil
}
