// Package graph provides GraphQL types for the ontology hub API.
package graph

import (
	"database/sql"
	"encoding/json"
	"time"
)

// =============================================================================
// COMMON TYPES
// =============================================================================

// Health reports service liveness.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// =============================================================================
// CANONICAL ENTITY TYPES
// =============================================================================

// CanonicalEntity is a persisted entity of the authoritative schema.
type CanonicalEntity struct {
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Definition json.RawMessage `json:"definition"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// =============================================================================
// DRAFT TYPES
// =============================================================================

// DraftStatus mirrors the persistence lifecycle states.
type DraftStatus string

const (
	DraftStatusOpen      DraftStatus = "OPEN"
	DraftStatusValidated DraftStatus = "VALIDATED"
	DraftStatusSubmitted DraftStatus = "SUBMITTED"
	DraftStatusMerged    DraftStatus = "MERGED"
	DraftStatusRejected  DraftStatus = "REJECTED"
)

// SchemaDraft is a draft bundle of schema changes.
type SchemaDraft struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	CreatedBy        *string           `json:"createdBy,omitempty"`
	Status           DraftStatus       `json:"status"`
	Payload          json.RawMessage   `json:"payload"`
	ValidationReport *ValidationReport `json:"validationReport,omitempty"`
	ValidatedAt      *time.Time        `json:"validatedAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// DraftCreateInput is input for creating a draft.
type DraftCreateInput struct {
	Title   string          `json:"title"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// =============================================================================
// VALIDATION TYPES
// =============================================================================

// ValidationFinding is one finding of a validation run.
type ValidationFinding struct {
	EntityType      string  `json:"entityType"`
	EntityID        string  `json:"entityId"`
	Field           *string `json:"field,omitempty"`
	Code            string  `json:"code"`
	Message         string  `json:"message"`
	Severity        string  `json:"severity"`
	SuggestedSemver *string `json:"suggestedSemver,omitempty"`
	OldValue        *string `json:"oldValue,omitempty"`
	NewValue        *string `json:"newValue,omitempty"`
}

// ValidationReport is the outcome of validating a draft.
type ValidationReport struct {
	IsValid         bool                 `json:"isValid"`
	Errors          []*ValidationFinding `json:"errors"`
	Warnings        []*ValidationFinding `json:"warnings"`
	Info            []*ValidationFinding `json:"info"`
	SuggestedSemver string               `json:"suggestedSemver"`
	SemverReasons   []string             `json:"semverReasons"`
}

// ValidationActionResult reports the outcome of queueing an async
// validation run.
type ValidationActionResult struct {
	OK         bool    `json:"ok"`
	WorkflowID *string `json:"workflowId,omitempty"`
	RunID      *string `json:"runId,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// =============================================================================
// NULLABLE MAPPING HELPERS
// =============================================================================

func nullableStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func nullableTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}
