package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/labki-org/ontology-hub/internal/validation"
)

// CanonicalSnapshot is an immutable, fully in-memory view of canonical
// state satisfying the validation engine's Snapshot contract. It is
// batch-populated in a single query before a validation run; the engine
// never touches the database per check.
type CanonicalSnapshot struct {
	defs map[validation.EntityType]map[string]validation.Definition
	ids  map[validation.EntityType][]string
}

// LoadSnapshot fetches every canonical entity definition in one pass.
func (c *Client) LoadSnapshot(ctx context.Context) (*CanonicalSnapshot, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT entity_type, entity_id, definition
		FROM canonical_entities
		ORDER BY entity_type, entity_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load canonical snapshot: %w", err)
	}
	defer rows.Close()

	snap := &CanonicalSnapshot{
		defs: make(map[validation.EntityType]map[string]validation.Definition),
		ids:  make(map[validation.EntityType][]string),
	}
	for rows.Next() {
		var entityType, entityID string
		var raw json.RawMessage
		if err := rows.Scan(&entityType, &entityID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan canonical snapshot row: %w", err)
		}

		var def validation.Definition
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &def); err != nil {
				return nil, fmt.Errorf("failed to decode definition of %s %q: %w", entityType, entityID, err)
			}
		}

		t := validation.EntityType(entityType)
		if snap.defs[t] == nil {
			snap.defs[t] = make(map[string]validation.Definition)
		}
		snap.defs[t][entityID] = def
		snap.ids[t] = append(snap.ids[t], entityID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read canonical snapshot: %w", err)
	}

	for _, ids := range snap.ids {
		sort.Strings(ids)
	}
	return snap, nil
}

// IDs returns every canonical entity id of the given type, sorted.
func (s *CanonicalSnapshot) IDs(t validation.EntityType) []string {
	return s.ids[t]
}

// Definition returns the canonical definition of an entity.
func (s *CanonicalSnapshot) Definition(t validation.EntityType, id string) (validation.Definition, bool) {
	def, ok := s.defs[t][id]
	return def, ok
}
