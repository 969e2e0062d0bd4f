package services

import (
	"context"
	"fmt"

	"github.com/flowvault/flowvault/pkg/diffengine"
	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/steps"
	"github.com/flowvault/flowvault/pkg/versionstore"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CompareRequest identifies the version pair to compare.
type CompareRequest struct {
	WorkflowID string `validate:"required"`
	VersionA   string `validate:"required"`
	VersionB   string `validate:"required"`
}

// DifferenceGroups buckets structural differences by change type. Errors
// collects per-item comparison failures delivered alongside partial results.
type DifferenceGroups struct {
	Added    []models.Difference `json:"added"`
	Modified []models.Difference `json:"modified"`
	Removed  []models.Difference `json:"removed"`
	Errors   []models.Difference `json:"errors,omitempty"`
}

// Total returns the number of non-error differences.
func (g DifferenceGroups) Total() int {
	return len(g.Added) + len(g.Modified) + len(g.Removed)
}

// StepVersions carries both annotated step sequences for side-by-side display.
type StepVersions struct {
	VersionA []models.Step `json:"versionA"`
	VersionB []models.Step `json:"versionB"`
}

// StepComparison is the human-facing half of a comparison result.
type StepComparison struct {
	Steps   StepVersions         `json:"steps"`
	Summary models.ChangeSummary `json:"summary"`
}

// ComparisonResult is the complete comparison payload for one version pair,
// plain data suitable for direct serialization to any wire format.
type ComparisonResult struct {
	ID             string           `json:"id"`
	WorkflowID     string           `json:"workflowId"`
	VersionA       string           `json:"versionA"`
	VersionB       string           `json:"versionB"`
	Differences    DifferenceGroups `json:"differences"`
	StepComparison StepComparison   `json:"stepComparison"`
	NoChanges      bool             `json:"noChanges"`
}

// Comparison orchestrates the diff and projection engine over stored
// versions.
type Comparison struct {
	store    versionstore.VersionStore
	validate *validator.Validate
}

// NewComparison creates a comparison service backed by the given store.
func NewComparison(store versionstore.VersionStore) *Comparison {
	return &Comparison{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Compare loads both versions and produces the full comparison result.
func (c *Comparison) Compare(ctx context.Context, req CompareRequest) (*ComparisonResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, &ServiceError{Op: "Compare", Code: "validation_error", Err: fmt.Errorf("%w: %w", ErrInvalidRequest, err)}
	}

	if req.VersionA == req.VersionB {
		return nil, &ServiceError{Op: "Compare", Code: "validation_error", Err: ErrSameVersionReference}
	}

	docA, err := c.store.GetVersion(ctx, req.WorkflowID, req.VersionA)
	if err != nil {
		return nil, &ServiceError{
			Op: "Compare", Code: "version_not_found",
			Message: fmt.Sprintf("version %s of workflow %s", req.VersionA, req.WorkflowID),
			Err:     err,
		}
	}

	docB, err := c.store.GetVersion(ctx, req.WorkflowID, req.VersionB)
	if err != nil {
		return nil, &ServiceError{
			Op: "Compare", Code: "version_not_found",
			Message: fmt.Sprintf("version %s of workflow %s", req.VersionB, req.WorkflowID),
			Err:     err,
		}
	}

	result := CompareDocuments(docA, docB, req.VersionA, req.VersionB)
	result.WorkflowID = req.WorkflowID

	return result, nil
}

// CompareDocuments runs the engine over two already-loaded documents. Nil
// documents degrade to unsupported-workflow projections rather than failing.
func CompareDocuments(docA, docB models.WorkflowDocument, versionTagA, versionTagB string) *ComparisonResult {
	differences := diffengine.Diff(docA, docB)

	stepsA := steps.Project(docA, versionTagA)
	stepsB := steps.Project(docB, versionTagB)
	markedA, markedB, summary := steps.MarkChanges(stepsA, stepsB)

	groups := groupDifferences(differences)

	return &ComparisonResult{
		ID:          uuid.New().String(),
		VersionA:    versionTagA,
		VersionB:    versionTagB,
		Differences: groups,
		StepComparison: StepComparison{
			Steps:   StepVersions{VersionA: markedA, VersionB: markedB},
			Summary: summary,
		},
		NoChanges: groups.Total() == 0 && summary.Total() == 0,
	}
}

func groupDifferences(differences []models.Difference) DifferenceGroups {
	groups := DifferenceGroups{
		Added:    make([]models.Difference, 0),
		Modified: make([]models.Difference, 0),
		Removed:  make([]models.Difference, 0),
	}

	for _, difference := range differences {
		switch difference.Type {
		case models.DifferenceAdded:
			groups.Added = append(groups.Added, difference)
		case models.DifferenceRemoved:
			groups.Removed = append(groups.Removed, difference)
		case models.DifferenceChanged:
			groups.Modified = append(groups.Modified, difference)
		case models.DifferenceError:
			groups.Errors = append(groups.Errors, difference)
		}
	}

	return groups
}
