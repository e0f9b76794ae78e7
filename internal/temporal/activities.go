package temporal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/labki-org/ontology-hub/internal/database"
	"github.com/labki-org/ontology-hub/internal/validation"
)

// ValidationActivities holds the activity implementations.
type ValidationActivities struct {
	db        *database.Client
	validator *validation.Validator
}

// NewValidationActivities creates a new ValidationActivities instance.
func NewValidationActivities(db *database.Client, validator *validation.Validator) *ValidationActivities {
	return &ValidationActivities{db: db, validator: validator}
}

// ValidateDraftInput is the input for ValidateDraft.
type ValidateDraftInput struct {
	DraftID string `json:"draftId"`
}

// ValidateDraftOutput is the output for ValidateDraft.
type ValidateDraftOutput struct {
	IsValid         bool   `json:"isValid"`
	SuggestedSemver string `json:"suggestedSemver"`
	ErrorCount      int    `json:"errorCount"`
	WarningCount    int    `json:"warningCount"`
}

// ValidateDraft loads a draft and a fresh canonical snapshot, runs the
// validation engine, and stores the report on the draft record.
func (a *ValidationActivities) ValidateDraft(ctx context.Context, input ValidateDraftInput) (*ValidateDraftOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("loading draft", "draftId", input.DraftID)

	draft, err := a.db.GetDraft(ctx, input.DraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s not found", input.DraftID)
	}

	var payload validation.DraftPayload
	if len(draft.Payload) > 0 {
		if err := json.Unmarshal(draft.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode draft payload: %w", err)
		}
	}

	snapshot, err := a.db.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load canonical snapshot: %w", err)
	}

	report := a.validator.Validate(&payload, snapshot)

	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode validation report: %w", err)
	}
	if _, err := a.db.SaveValidationReport(ctx, input.DraftID, raw, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to save validation report: %w", err)
	}

	return &ValidateDraftOutput{
		IsValid:         report.IsValid,
		SuggestedSemver: string(report.SuggestedSemver),
		ErrorCount:      len(report.Errors),
		WarningCount:    len(report.Warnings),
	}, nil
}
