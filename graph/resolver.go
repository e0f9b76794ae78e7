// Package graph provides GraphQL resolvers for the ontology hub.
package graph

import (
	temporalclient "go.temporal.io/sdk/client"

	"github.com/labki-org/ontology-hub/internal/database"
	"github.com/labki-org/ontology-hub/internal/validation"
)

// Resolver is the root resolver for GraphQL queries and mutations.
type Resolver struct {
	db        *database.Client
	validator *validation.Validator
	temporal  temporalclient.Client
	taskQueue string
}

// NewResolver creates a new resolver with the given dependencies. The
// Temporal client may be nil; async validation is then unavailable and the
// synchronous path still works.
func NewResolver(db *database.Client, validator *validation.Validator, temporal temporalclient.Client, taskQueue string) *Resolver {
	return &Resolver{
		db:        db,
		validator: validator,
		temporal:  temporal,
		taskQueue: taskQueue,
	}
}
