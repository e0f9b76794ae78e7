package graph

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/labki-org/ontology-hub/internal/database"
	"github.com/labki-org/ontology-hub/internal/validation"
)

func TestHealthResolver(t *testing.T) {
	r := &Resolver{}

	health, err := r.Query().Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status ok, got %s", health.Status)
	}
	if health.Version == "" {
		t.Error("expected a version string")
	}
}

func TestMapDraftToGraphQL(t *testing.T) {
	now := time.Now()
	d := &database.SchemaDraft{
		ID:        "draft-1",
		Title:     "Add temperature properties",
		CreatedBy: sql.NullString{String: "alice", Valid: true},
		Status:    database.DraftStatusOpen,
		Payload:   json.RawMessage(`{"properties":[]}`),
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := mapDraftToGraphQL(d)

	if out.ID != "draft-1" {
		t.Errorf("unexpected id %s", out.ID)
	}
	if out.CreatedBy == nil || *out.CreatedBy != "alice" {
		t.Errorf("unexpected createdBy %v", out.CreatedBy)
	}
	if out.Status != DraftStatusOpen {
		t.Errorf("unexpected status %s", out.Status)
	}
	if out.ValidationReport != nil {
		t.Error("expected nil report for unvalidated draft")
	}
	if out.ValidatedAt != nil {
		t.Error("expected nil validatedAt for unvalidated draft")
	}
}

func TestMapDraftToGraphQLNil(t *testing.T) {
	if mapDraftToGraphQL(nil) != nil {
		t.Error("expected nil for nil draft")
	}
}

func TestMapDraftToGraphQLNullFields(t *testing.T) {
	d := &database.SchemaDraft{
		ID:     "draft-2",
		Title:  "untitled",
		Status: database.DraftStatusOpen,
	}

	out := mapDraftToGraphQL(d)

	if out.CreatedBy != nil {
		t.Errorf("expected nil createdBy, got %v", *out.CreatedBy)
	}
}

func TestMapCanonicalToGraphQL(t *testing.T) {
	e := &database.CanonicalEntity{
		EntityType: "property",
		EntityID:   "Has boiling point",
		Definition: json.RawMessage(`{"datatype":"Temperature"}`),
		Version:    3,
	}

	out := mapCanonicalToGraphQL(e)

	if out.EntityType != "property" || out.EntityID != "Has boiling point" {
		t.Errorf("unexpected identity %s/%s", out.EntityType, out.EntityID)
	}
	if out.Version != 3 {
		t.Errorf("unexpected version %d", out.Version)
	}

	if mapCanonicalToGraphQL(nil) != nil {
		t.Error("expected nil for nil entity")
	}
}

func TestMapStoredReportToGraphQL(t *testing.T) {
	raw := json.RawMessage(`{
		"is_valid": false,
		"errors": [{"entity_type":"category","entity_id":"Reagent","field":"parent","code":"MISSING_PARENT","message":"missing","severity":"error"}],
		"warnings": [],
		"info": [],
		"suggested_semver": "patch",
		"semver_reasons": ["draft has unresolved validation errors"]
	}`)

	out := mapStoredReportToGraphQL(raw)
	if out == nil {
		t.Fatal("expected a report")
	}
	if out.IsValid {
		t.Error("expected isValid false")
	}
	if len(out.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(out.Errors))
	}
	f := out.Errors[0]
	if f.Code != "MISSING_PARENT" {
		t.Errorf("unexpected code %s", f.Code)
	}
	if f.Field == nil || *f.Field != "parent" {
		t.Errorf("unexpected field %v", f.Field)
	}
	if f.SuggestedSemver != nil {
		t.Error("expected nil suggestedSemver on error finding")
	}
	if out.SuggestedSemver != "patch" {
		t.Errorf("unexpected semver %s", out.SuggestedSemver)
	}
}

func TestMapStoredReportToGraphQLEmpty(t *testing.T) {
	if mapStoredReportToGraphQL(nil) != nil {
		t.Error("expected nil for empty raw report")
	}
	if mapStoredReportToGraphQL(json.RawMessage("not json")) != nil {
		t.Error("expected nil for unparseable raw report")
	}
}

func TestMapReportToGraphQLRoundTrip(t *testing.T) {
	validator := validation.NewValidator()
	draft := &validation.DraftPayload{
		Properties: []validation.DraftEntity{
			{EntityID: "Has name", Definition: validation.Definition{"datatype": "Text"}},
		},
	}

	report := validator.Validate(draft, validation.EmptySnapshot{})
	out := mapReportToGraphQL(report)

	if !out.IsValid {
		t.Error("expected a valid report")
	}
	if len(out.Errors) != 0 || len(out.Warnings) != 0 {
		t.Errorf("expected no errors or warnings, got %d/%d", len(out.Errors), len(out.Warnings))
	}
	if len(out.Info) != 1 {
		t.Fatalf("expected 1 info finding, got %d", len(out.Info))
	}
	if out.Info[0].Code != "ENTITY_ADDED" {
		t.Errorf("unexpected code %s", out.Info[0].Code)
	}
	if out.SuggestedSemver != "minor" {
		t.Errorf("expected minor, got %s", out.SuggestedSemver)
	}
}

func TestQueueDraftValidationWithoutTemporal(t *testing.T) {
	r := &Resolver{}

	result, err := r.Mutation().QueueDraftValidation(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK {
		t.Error("expected OK false when temporal is not configured")
	}
	if result.Message == nil {
		t.Error("expected a message explaining the failure")
	}
}
