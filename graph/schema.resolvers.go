// Package graph provides GraphQL resolvers for the ontology hub.
// This file contains the query and mutation resolver implementations.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/labki-org/ontology-hub/internal/auth"
	"github.com/labki-org/ontology-hub/internal/database"
	"github.com/labki-org/ontology-hub/internal/temporal"
	"github.com/labki-org/ontology-hub/internal/validation"
)

// =============================================================================
// QUERY RESOLVERS
// =============================================================================

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver {
	return &queryResolver{r}
}

type queryResolver struct{ *Resolver }

// Health returns the service health status.
func (r *queryResolver) Health(ctx context.Context) (*Health, error) {
	return &Health{
		Status:  "ok",
		Version: "0.1.0",
	}, nil
}

// SchemaDrafts returns drafts with optional status filtering.
func (r *queryResolver) SchemaDrafts(ctx context.Context, status *DraftStatus, first *int) ([]*SchemaDraft, error) {
	limit := 50
	if first != nil && *first > 0 {
		limit = *first
	}

	var dbStatus *database.DraftStatus
	if status != nil {
		s := database.DraftStatus(*status)
		dbStatus = &s
	}

	drafts, err := r.db.ListDrafts(ctx, dbStatus, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*SchemaDraft, len(drafts))
	for i, d := range drafts {
		result[i] = mapDraftToGraphQL(d)
	}
	return result, nil
}

// SchemaDraft returns a single draft by ID.
func (r *queryResolver) SchemaDraft(ctx context.Context, id string) (*SchemaDraft, error) {
	d, err := r.db.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return mapDraftToGraphQL(d), nil
}

// ValidationReport returns the stored validation report for a draft.
func (r *queryResolver) ValidationReport(ctx context.Context, draftID string) (*ValidationReport, error) {
	d, err := r.db.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return mapStoredReportToGraphQL(d.ValidationReport), nil
}

// CanonicalEntities returns canonical entities with optional type filtering.
func (r *queryResolver) CanonicalEntities(ctx context.Context, entityType *string, first *int) ([]*CanonicalEntity, error) {
	limit := 200
	if first != nil && *first > 0 {
		limit = *first
	}

	entities, err := r.db.ListCanonicalEntities(ctx, entityType, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*CanonicalEntity, len(entities))
	for i, e := range entities {
		result[i] = mapCanonicalToGraphQL(e)
	}
	return result, nil
}

// CanonicalEntity returns a single canonical entity.
func (r *queryResolver) CanonicalEntity(ctx context.Context, entityType, entityID string) (*CanonicalEntity, error) {
	e, err := r.db.GetCanonicalEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return mapCanonicalToGraphQL(e), nil
}

// =============================================================================
// MUTATION RESOLVERS
// =============================================================================

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver {
	return &mutationResolver{r}
}

type mutationResolver struct{ *Resolver }

// CreateSchemaDraft creates a new draft owned by the authenticated subject.
func (r *mutationResolver) CreateSchemaDraft(ctx context.Context, input DraftCreateInput) (*SchemaDraft, error) {
	authCtx := auth.FromContext(ctx)

	var createdBy *string
	if authCtx.Subject != "" && authCtx.Subject != "anonymous" {
		createdBy = &authCtx.Subject
	}

	d, err := r.db.CreateDraft(ctx, input.Title, createdBy, input.Payload)
	if err != nil {
		return nil, err
	}
	return mapDraftToGraphQL(d), nil
}

// UpdateSchemaDraft replaces a draft's payload and clears stale validation state.
func (r *mutationResolver) UpdateSchemaDraft(ctx context.Context, id string, payload json.RawMessage) (*SchemaDraft, error) {
	d, err := r.db.UpdateDraftPayload(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	return mapDraftToGraphQL(d), nil
}

// DeleteSchemaDraft deletes a draft.
func (r *mutationResolver) DeleteSchemaDraft(ctx context.Context, id string) (bool, error) {
	err := r.db.DeleteDraft(ctx, id)
	return err == nil, err
}

// ValidateSchemaDraft runs the validation engine synchronously over a
// draft, stores the report on the draft record, and returns it.
func (r *mutationResolver) ValidateSchemaDraft(ctx context.Context, id string) (*ValidationReport, error) {
	d, err := r.db.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("draft %s not found", id)
	}

	var payload validation.DraftPayload
	if len(d.Payload) > 0 {
		if err := json.Unmarshal(d.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode draft payload: %w", err)
		}
	}

	snapshot, err := r.db.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := r.validator.Validate(&payload, snapshot)

	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode validation report: %w", err)
	}
	if _, err := r.db.SaveValidationReport(ctx, id, raw, time.Now().UTC()); err != nil {
		return nil, err
	}

	return mapReportToGraphQL(report), nil
}

// QueueDraftValidation starts the async validation workflow for a draft.
func (r *mutationResolver) QueueDraftValidation(ctx context.Context, id string) (*ValidationActionResult, error) {
	if r.temporal == nil {
		return &ValidationActionResult{OK: false, Message: strPtr("async validation is not configured")}, nil
	}

	run, err := r.temporal.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
		ID:        "draft-validation-" + id,
		TaskQueue: r.taskQueue,
	}, temporal.DraftValidationWorkflow, temporal.DraftValidationInput{DraftID: id})
	if err != nil {
		return &ValidationActionResult{OK: false, Message: strPtr(err.Error())}, nil
	}

	workflowID := run.GetID()
	runID := run.GetRunID()
	return &ValidationActionResult{
		OK:         true,
		WorkflowID: &workflowID,
		RunID:      &runID,
		Message:    strPtr("validation queued"),
	}, nil
}

// SubmitSchemaDraft transitions a validated draft to SUBMITTED.
func (r *mutationResolver) SubmitSchemaDraft(ctx context.Context, id string) (*SchemaDraft, error) {
	d, err := r.db.MarkDraftSubmitted(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapDraftToGraphQL(d), nil
}

// MergeSchemaDraft folds a submitted draft into canonical state.
func (r *mutationResolver) MergeSchemaDraft(ctx context.Context, id string) (*SchemaDraft, error) {
	d, err := r.db.MergeDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapDraftToGraphQL(d), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func mapDraftToGraphQL(d *database.SchemaDraft) *SchemaDraft {
	if d == nil {
		return nil
	}
	return &SchemaDraft{
		ID:               d.ID,
		Title:            d.Title,
		CreatedBy:        nullableStringPtr(d.CreatedBy),
		Status:           DraftStatus(d.Status),
		Payload:          d.Payload,
		ValidationReport: mapStoredReportToGraphQL(d.ValidationReport),
		ValidatedAt:      nullableTimePtr(d.ValidatedAt),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func mapCanonicalToGraphQL(e *database.CanonicalEntity) *CanonicalEntity {
	if e == nil {
		return nil
	}
	return &CanonicalEntity{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Definition: e.Definition,
		Version:    e.Version,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func mapStoredReportToGraphQL(raw json.RawMessage) *ValidationReport {
	if len(raw) == 0 {
		return nil
	}
	var report validation.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return mapReportToGraphQL(&report)
}

func mapReportToGraphQL(report *validation.Report) *ValidationReport {
	if report == nil {
		return nil
	}
	return &ValidationReport{
		IsValid:         report.IsValid,
		Errors:          mapFindingsToGraphQL(report.Errors),
		Warnings:        mapFindingsToGraphQL(report.Warnings),
		Info:            mapFindingsToGraphQL(report.Info),
		SuggestedSemver: string(report.SuggestedSemver),
		SemverReasons:   report.SemverReasons,
	}
}

func mapFindingsToGraphQL(findings []validation.Finding) []*ValidationFinding {
	result := make([]*ValidationFinding, len(findings))
	for i, f := range findings {
		result[i] = &ValidationFinding{
			EntityType:      string(f.EntityType),
			EntityID:        f.EntityID,
			Field:           optionalStrPtr(f.Field),
			Code:            f.Code,
			Message:         f.Message,
			Severity:        string(f.Severity),
			SuggestedSemver: optionalStrPtr(string(f.SuggestedSemver)),
			OldValue:        optionalStrPtr(f.OldValue),
			NewValue:        optionalStrPtr(f.NewValue),
		}
	}
	return result
}

func strPtr(s string) *string {
	return &s
}

func optionalStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
