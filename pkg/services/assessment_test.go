package services

import (
	"context"
	"errors"
	"testing"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	doc models.WorkflowDocument
	err error
}

func (s *stubSource) FetchDocument(_ context.Context, _ string) (models.WorkflowDocument, error) {
	return s.doc, s.err
}

func TestAssessment_InlineDocument(t *testing.T) {
	service := NewAssessment(nil)

	result, err := service.Assess(t.Context(), AssessRequest{
		Document: models.WorkflowDocument{
			"name":    "X",
			"actions": []any{map[string]any{"type": "EMAIL", "subject": "Hi"}},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Len(t, result.Assessment.SafetyChecks, 6)
	assert.NotEmpty(t, result.Assessment.RiskLevel)
}

func TestAssessment_FetchesFromSource(t *testing.T) {
	source := &stubSource{doc: models.WorkflowDocument{"name": "Fetched"}}
	service := NewAssessment(source)

	result, err := service.Assess(t.Context(), AssessRequest{WorkflowID: "wf-1"})
	require.NoError(t, err)

	assert.Equal(t, "wf-1", result.WorkflowID)
}

func TestAssessment_SourceFailureIsDocumentMissing(t *testing.T) {
	source := &stubSource{err: errors.New("auth expired")}
	service := NewAssessment(source)

	_, err := service.Assess(t.Context(), AssessRequest{WorkflowID: "wf-1"})
	assert.True(t, IsNotFoundError(err))
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestAssessment_NilDocumentFromSource(t *testing.T) {
	service := NewAssessment(&stubSource{})

	_, err := service.Assess(t.Context(), AssessRequest{WorkflowID: "wf-1"})
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestAssessment_NoSourceNoDocument(t *testing.T) {
	service := NewAssessment(nil)

	_, err := service.Assess(t.Context(), AssessRequest{WorkflowID: "wf-1"})
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestAssessment_MalformedDocumentStillAssesses(t *testing.T) {
	service := NewAssessment(nil)

	result, err := service.Assess(t.Context(), AssessRequest{
		Document: models.WorkflowDocument{"actions": "definitely not a list"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Assessment.SafetyChecks, 6)
}
