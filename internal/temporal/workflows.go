// Package temporal provides Temporal workflow and activity definitions
// for asynchronous draft validation.
package temporal

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// =============================================================================
// ACTIVITY OPTIONS
// =============================================================================

var defaultActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 5 * time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    3,
	},
}

// =============================================================================
// WORKFLOW INPUTS/OUTPUTS
// =============================================================================

// DraftValidationInput is the input for DraftValidationWorkflow.
type DraftValidationInput struct {
	DraftID string `json:"draftId"`
}

// DraftValidationResult is the output of DraftValidationWorkflow.
type DraftValidationResult struct {
	DraftID         string `json:"draftId"`
	IsValid         bool   `json:"isValid"`
	SuggestedSemver string `json:"suggestedSemver"`
}

// =============================================================================
// DRAFT VALIDATION WORKFLOW
// =============================================================================

// DraftValidationWorkflow validates one draft against canonical state and
// persists the resulting report on the draft record. The validation run
// itself is a single activity: the engine is pure and fast, so splitting
// load/validate/persist across activities would only multiply the chances
// of validating a stale snapshot.
func DraftValidationWorkflow(ctx workflow.Context, input DraftValidationInput) (*DraftValidationResult, error) {
	logger := workflow.GetLogger(ctx)
	actCtx := workflow.WithActivityOptions(ctx, defaultActivityOptions)

	if input.DraftID == "" {
		return nil, temporal.NewApplicationError("draftId is required", "INVALID_INPUT")
	}

	logger.Info("validating draft", "draftId", input.DraftID)

	var result ValidateDraftOutput
	err := workflow.ExecuteActivity(actCtx, "ValidateDraft", ValidateDraftInput{
		DraftID: input.DraftID,
	}).Get(ctx, &result)
	if err != nil {
		return nil, err
	}

	logger.Info("draft validated",
		"draftId", input.DraftID,
		"isValid", result.IsValid,
		"suggestedSemver", result.SuggestedSemver)

	return &DraftValidationResult{
		DraftID:         input.DraftID,
		IsValid:         result.IsValid,
		SuggestedSemver: result.SuggestedSemver,
	}, nil
}
