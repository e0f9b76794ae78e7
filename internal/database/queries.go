package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CANONICAL ENTITY QUERIES
// =============================================================================

// GetCanonicalEntity retrieves one canonical entity.
func (c *Client) GetCanonicalEntity(ctx context.Context, entityType, entityID string) (*CanonicalEntity, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT entity_type, entity_id, definition, version, created_at, updated_at
		FROM canonical_entities
		WHERE entity_type = $1 AND entity_id = $2
	`, entityType, entityID)

	var e CanonicalEntity
	err := row.Scan(&e.EntityType, &e.EntityID, &e.Definition, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get canonical entity: %w", err)
	}
	return &e, nil
}

// ListCanonicalEntities retrieves canonical entities, optionally filtered
// by entity type, in stable (entity_type, entity_id) order.
func (c *Client) ListCanonicalEntities(ctx context.Context, entityType *string, limit int) ([]*CanonicalEntity, error) {
	query := `
		SELECT entity_type, entity_id, definition, version, created_at, updated_at
		FROM canonical_entities
		WHERE 1=1
	`
	args := []any{}
	argIdx := 1

	if entityType != nil {
		query += fmt.Sprintf(" AND entity_type = $%d", argIdx)
		args = append(args, *entityType)
		argIdx++
	}

	query += " ORDER BY entity_type, entity_id"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list canonical entities: %w", err)
	}
	defer rows.Close()

	var entities []*CanonicalEntity
	for rows.Next() {
		var e CanonicalEntity
		if err := rows.Scan(&e.EntityType, &e.EntityID, &e.Definition, &e.Version, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan canonical entity: %w", err)
		}
		entities = append(entities, &e)
	}
	return entities, rows.Err()
}

// UpsertCanonicalEntity inserts or replaces a canonical entity definition,
// bumping its version on replace. Used by merge tooling when an approved
// draft is folded into canonical state.
func (c *Client) UpsertCanonicalEntity(ctx context.Context, entityType, entityID string, definition json.RawMessage) (*CanonicalEntity, error) {
	row := c.db.QueryRowContext(ctx, `
		INSERT INTO canonical_entities (entity_type, entity_id, definition)
		VALUES ($1, $2, $3)
		ON CONFLICT (entity_type, entity_id)
		DO UPDATE SET definition = EXCLUDED.definition,
		              version = canonical_entities.version + 1,
		              updated_at = NOW()
		RETURNING entity_type, entity_id, definition, version, created_at, updated_at
	`, entityType, entityID, definition)

	var e CanonicalEntity
	if err := row.Scan(&e.EntityType, &e.EntityID, &e.Definition, &e.Version, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to upsert canonical entity: %w", err)
	}
	return &e, nil
}

// DeleteCanonicalEntity removes a canonical entity.
func (c *Client) DeleteCanonicalEntity(ctx context.Context, entityType, entityID string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM canonical_entities WHERE entity_type = $1 AND entity_id = $2
	`, entityType, entityID)
	if err != nil {
		return fmt.Errorf("failed to delete canonical entity: %w", err)
	}
	return nil
}

// =============================================================================
// SCHEMA DRAFT QUERIES
// =============================================================================

// CreateDraft creates a new schema draft in OPEN status.
func (c *Client) CreateDraft(ctx context.Context, title string, createdBy *string, payload json.RawMessage) (*SchemaDraft, error) {
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	row := c.db.QueryRowContext(ctx, `
		INSERT INTO schema_drafts (id, title, created_by, status, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
	`, uuid.New().String(), title, createdBy, DraftStatusOpen, payload)

	return scanDraftRow(row)
}

// GetDraft retrieves a draft by ID.
func (c *Client) GetDraft(ctx context.Context, id string) (*SchemaDraft, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
		FROM schema_drafts
		WHERE id = $1
	`, id)

	draft, err := scanDraftRow(row)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ListDrafts retrieves drafts, optionally filtered by status, newest first.
func (c *Client) ListDrafts(ctx context.Context, status *DraftStatus, limit int) ([]*SchemaDraft, error) {
	query := `
		SELECT id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
		FROM schema_drafts
		WHERE 1=1
	`
	args := []any{}
	argIdx := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *status)
		argIdx++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*SchemaDraft
	for rows.Next() {
		var d SchemaDraft
		if err := rows.Scan(&d.ID, &d.Title, &d.CreatedBy, &d.Status, &d.Payload,
			&d.ValidationReport, &d.ValidatedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// UpdateDraftPayload replaces a draft's payload and clears any stale
// validation result: an edited draft must be re-validated.
func (c *Client) UpdateDraftPayload(ctx context.Context, id string, payload json.RawMessage) (*SchemaDraft, error) {
	row := c.db.QueryRowContext(ctx, `
		UPDATE schema_drafts
		SET payload = $2,
		    validation_report = NULL,
		    validated_at = NULL,
		    status = $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
	`, id, payload, DraftStatusOpen)

	return scanDraftRow(row)
}

// DeleteDraft removes a draft.
func (c *Client) DeleteDraft(ctx context.Context, id string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM schema_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// SaveValidationReport stores a validation report on its draft and marks
// the draft VALIDATED.
func (c *Client) SaveValidationReport(ctx context.Context, id string, report json.RawMessage, validatedAt time.Time) (*SchemaDraft, error) {
	row := c.db.QueryRowContext(ctx, `
		UPDATE schema_drafts
		SET validation_report = $2,
		    validated_at = $3,
		    status = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
	`, id, report, validatedAt, DraftStatusValidated)

	return scanDraftRow(row)
}

// MarkDraftSubmitted transitions a validated draft to SUBMITTED. The
// transition is refused unless the stored report exists and is valid; the
// check and the update run in one transaction.
func (c *Client) MarkDraftSubmitted(ctx context.Context, id string) (*SchemaDraft, error) {
	var draft *SchemaDraft
	err := c.Transaction(ctx, func(tx *sql.Tx) error {
		var status DraftStatus
		var report json.RawMessage
		err := tx.QueryRowContext(ctx, `
			SELECT status, validation_report FROM schema_drafts WHERE id = $1 FOR UPDATE
		`, id).Scan(&status, &report)
		if err == sql.ErrNoRows {
			return fmt.Errorf("draft %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load draft for submission: %w", err)
		}

		if status != DraftStatusValidated {
			return fmt.Errorf("draft %s is %s; only validated drafts can be submitted", id, status)
		}

		var stored struct {
			IsValid bool `json:"is_valid"`
		}
		if len(report) == 0 {
			return fmt.Errorf("draft %s has no validation report", id)
		}
		if err := json.Unmarshal(report, &stored); err != nil {
			return fmt.Errorf("failed to decode stored validation report: %w", err)
		}
		if !stored.IsValid {
			return fmt.Errorf("draft %s has validation errors and cannot be submitted", id)
		}

		row := tx.QueryRowContext(ctx, `
			UPDATE schema_drafts
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
		`, id, DraftStatusSubmitted)

		draft, err = scanDraftRow(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// MergeDraft folds a submitted draft into canonical state: non-deleted
// draft entities are upserted, deletion-marked ones removed, and the draft
// transitions to MERGED. The whole merge is one transaction.
func (c *Client) MergeDraft(ctx context.Context, id string) (*SchemaDraft, error) {
	var draft *SchemaDraft
	err := c.Transaction(ctx, func(tx *sql.Tx) error {
		var status DraftStatus
		var payload json.RawMessage
		err := tx.QueryRowContext(ctx, `
			SELECT status, payload FROM schema_drafts WHERE id = $1 FOR UPDATE
		`, id).Scan(&status, &payload)
		if err == sql.ErrNoRows {
			return fmt.Errorf("draft %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load draft for merge: %w", err)
		}

		if status != DraftStatusSubmitted {
			return fmt.Errorf("draft %s is %s; only submitted drafts can be merged", id, status)
		}

		var collections map[string][]struct {
			EntityID   string          `json:"entity_id"`
			Definition json.RawMessage `json:"schema_definition"`
			Deleted    bool            `json:"deleted"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &collections); err != nil {
				return fmt.Errorf("failed to decode draft payload: %w", err)
			}
		}

		for _, collection := range draftCollections {
			entityType := collectionEntityTypes[collection]
			for _, e := range collections[collection] {
				if e.Deleted {
					if _, err := tx.ExecContext(ctx, `
						DELETE FROM canonical_entities WHERE entity_type = $1 AND entity_id = $2
					`, entityType, e.EntityID); err != nil {
						return fmt.Errorf("failed to remove %s %q: %w", entityType, e.EntityID, err)
					}
					continue
				}
				definition := e.Definition
				if len(definition) == 0 {
					definition = json.RawMessage(`{}`)
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO canonical_entities (entity_type, entity_id, definition)
					VALUES ($1, $2, $3)
					ON CONFLICT (entity_type, entity_id)
					DO UPDATE SET definition = EXCLUDED.definition,
					              version = canonical_entities.version + 1,
					              updated_at = NOW()
				`, entityType, e.EntityID, definition); err != nil {
					return fmt.Errorf("failed to merge %s %q: %w", entityType, e.EntityID, err)
				}
			}
		}

		row := tx.QueryRowContext(ctx, `
			UPDATE schema_drafts
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, created_by, status, payload, validation_report, validated_at, created_at, updated_at
		`, id, DraftStatusMerged)

		draft, err = scanDraftRow(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// draftCollections is the fixed merge order for draft payload collections.
var draftCollections = []string{"categories", "properties", "subobjects", "modules", "profiles"}

// collectionEntityTypes maps draft payload collection names to the
// entity_type values stored in canonical_entities.
var collectionEntityTypes = map[string]string{
	"categories": "category",
	"properties": "property",
	"subobjects": "subobject",
	"modules":    "module",
	"profiles":   "profile",
}

func scanDraftRow(row *sql.Row) (*SchemaDraft, error) {
	var d SchemaDraft
	err := row.Scan(&d.ID, &d.Title, &d.CreatedBy, &d.Status, &d.Payload,
		&d.ValidationReport, &d.ValidatedAt, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan draft: %w", err)
	}
	return &d, nil
}
