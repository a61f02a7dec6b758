package dto

import (
	"github.com/google/uuid"

	"postforge-api/internal/fieldtype"
)

// SubmissionOutcome is the terminal state of one submission
type SubmissionOutcome string

// Submission outcomes
const (
	OutcomePersisted          SubmissionOutcome = "persisted"
	OutcomePartiallyPersisted SubmissionOutcome = "partially_persisted"
	OutcomeRejected           SubmissionOutcome = "rejected"
)

// Rejection reasons
const (
	RejectAccessDenied     = "access_denied"
	RejectValidationFailed = "validation_failed"
)

// SubmitFormRequest carries the raw posted values of one submission,
// keyed by field key. Values are validated against the freshly resolved
// schema before any persistence happens.
type SubmitFormRequest struct {
	Title  string                 `json:"title"`
	Body   string                 `json:"body"`
	Values map[string]interface{} `json:"values"`
}

// SubmissionResult describes how a submission ended. Rejected results
// carry the reason and, for validation failures, every field error at
// once. Partially persisted results name the step that failed after the
// record itself was created.
type SubmissionResult struct {
	Outcome     SubmissionOutcome      `json:"outcome"`
	RecordID    *uuid.UUID             `json:"record_id,omitempty"`
	RedirectURL string                 `json:"redirect_url,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
	Errors      []fieldtype.FieldError `json:"errors,omitempty"`
	FailedStep  string                 `json:"failed_step,omitempty"`
}
