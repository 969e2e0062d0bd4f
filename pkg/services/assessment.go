package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/risk"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DocumentSource supplies the current raw workflow document for a workflow
// identifier. Implementations wrap the external provider API and may fail
// with not-found, auth-expired, or rate-limited errors.
type DocumentSource interface {
	FetchDocument(ctx context.Context, workflowID string) (models.WorkflowDocument, error)
}

// AssessRequest identifies the document to assess: inline, or fetched from
// the document source by workflow ID.
type AssessRequest struct {
	WorkflowID string                  `validate:"required_without=Document"`
	Document   models.WorkflowDocument `validate:"-"`
}

// AssessmentResult wraps the risk assessment with request identity.
type AssessmentResult struct {
	ID         string                `json:"id"`
	WorkflowID string                `json:"workflowId,omitempty"`
	Assessment models.RiskAssessment `json:"assessment"`
}

// Assessment orchestrates the risk scorer over fetched or inline documents.
type Assessment struct {
	source   DocumentSource
	validate *validator.Validate
}

// NewAssessment creates an assessment service. The source may be nil when
// only inline documents are assessed.
func NewAssessment(source DocumentSource) *Assessment {
	return &Assessment{
		source:   source,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Assess produces the risk assessment for the requested document. Malformed
// documents still assess; only a genuinely absent document fails, with
// ErrDocumentMissing.
func (a *Assessment) Assess(ctx context.Context, req AssessRequest) (*AssessmentResult, error) {
	if err := a.validate.Struct(req); err != nil {
		return nil, &ServiceError{Op: "Assess", Code: "validation_error", Err: fmt.Errorf("%w: %w", ErrInvalidRequest, err)}
	}

	doc := req.Document

	if doc == nil {
		if a.source == nil {
			return nil, &ServiceError{Op: "Assess", Code: "document_missing", Err: ErrDocumentMissing}
		}

		fetched, err := a.source.FetchDocument(ctx, req.WorkflowID)
		if err != nil || fetched == nil {
			return nil, &ServiceError{
				Op: "Assess", Code: "document_missing",
				Message: fmt.Sprintf("workflow %s", req.WorkflowID),
				Err:     errors.Join(ErrDocumentMissing, err),
			}
		}

		doc = fetched
	}

	return &AssessmentResult{
		ID:         uuid.New().String(),
		WorkflowID: req.WorkflowID,
		Assessment: risk.Assess(doc),
	}, nil
}
