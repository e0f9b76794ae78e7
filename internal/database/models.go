// Package database provides PostgreSQL models and data access for the
// ontology hub.
package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// =============================================================================
// CANONICAL SCHEMA MODELS
// =============================================================================

// CanonicalEntity is one persisted entity of the authoritative schema.
// The definition column holds the entity's schema_definition as JSON.
type CanonicalEntity struct {
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Definition json.RawMessage `json:"definition"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// =============================================================================
// DRAFT MODELS
// =============================================================================

// DraftStatus tracks a draft through its review lifecycle.
type DraftStatus string

const (
	DraftStatusOpen      DraftStatus = "OPEN"
	DraftStatusValidated DraftStatus = "VALIDATED"
	DraftStatusSubmitted DraftStatus = "SUBMITTED"
	DraftStatusMerged    DraftStatus = "MERGED"
	DraftStatusRejected  DraftStatus = "REJECTED"
)

// SchemaDraft is a proposed bundle of schema changes awaiting validation
// and review. The payload column holds the draft's entity collections; the
// validation_report column stores the engine's report as an opaque blob.
type SchemaDraft struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	CreatedBy        sql.NullString  `json:"createdBy"`
	Status           DraftStatus     `json:"status"`
	Payload          json.RawMessage `json:"payload"`
	ValidationReport json.RawMessage `json:"validationReport"`
	ValidatedAt      sql.NullTime    `json:"validatedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
