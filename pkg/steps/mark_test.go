package steps

import (
	"testing"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectActions(t *testing.T, versionTag string, actions ...map[string]any) []models.Step {
	t.Helper()

	raw := make([]any, len(actions))
	for i, action := range actions {
		raw[i] = action
	}

	return Project(models.WorkflowDocument{"actions": raw}, versionTag)
}

func TestMarkChanges_Unchanged(t *testing.T) {
	email := map[string]any{"type": "EMAIL", "subject": "Hi"}

	stepsA := projectActions(t, "a", email)
	stepsB := projectActions(t, "b", email)

	markedA, markedB, summary := MarkChanges(stepsA, stepsB)

	assert.Equal(t, models.ChangeSummary{}, summary)
	assert.Equal(t, models.StepUnchanged, markedA[0].Status)
	assert.Equal(t, models.StepUnchanged, markedB[0].Status)
}

func TestMarkChanges_AddedAndRemoved(t *testing.T) {
	emailA := map[string]any{"type": "EMAIL", "subject": "Old"}
	emailB := map[string]any{"type": "EMAIL", "subject": "New"}
	shared := map[string]any{"type": "DEAL"}

	stepsA := projectActions(t, "a", emailA, shared)
	stepsB := projectActions(t, "b", shared, emailB)

	markedA, markedB, summary := MarkChanges(stepsA, stepsB)

	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 0, summary.Modified)

	assert.Equal(t, models.StepRemoved, markedA[0].Status)
	assert.True(t, markedA[0].IsRemoved)
	assert.Equal(t, models.StepUnchanged, markedA[1].Status)

	assert.Equal(t, models.StepUnchanged, markedB[0].Status)
	assert.Equal(t, models.StepAdded, markedB[1].Status)
	assert.True(t, markedB[1].IsNew)
}

func TestMarkChanges_ModifiedDetails(t *testing.T) {
	// Same subject, so same title, but the body changed.
	stepsA := projectActions(t, "a", map[string]any{"type": "EMAIL", "subject": "Hi", "body": "v1"})
	stepsB := projectActions(t, "b", map[string]any{"type": "EMAIL", "subject": "Hi", "body": "v2"})

	markedA, markedB, summary := MarkChanges(stepsA, stepsB)

	assert.Equal(t, 1, summary.Modified)
	assert.Equal(t, models.StepModified, markedA[0].Status)
	assert.True(t, markedA[0].IsModified)
	assert.Equal(t, models.StepModified, markedB[0].Status)

	changed := models.AsMap(markedB[0].Details["changedFields"])
	require.Contains(t, changed, "body")
}

func TestMarkChanges_MatchesByTitleNotPosition(t *testing.T) {
	first := map[string]any{"type": "EMAIL", "subject": "Hi"}
	second := map[string]any{"type": "DEAL"}

	stepsA := projectActions(t, "a", first, second)
	stepsB := projectActions(t, "b", second, first)

	_, _, summary := MarkChanges(stepsA, stepsB)

	assert.Equal(t, models.ChangeSummary{}, summary)
}

func TestMarkChanges_SummaryMatchesFlaggedSteps(t *testing.T) {
	stepsA := projectActions(t, "a",
		map[string]any{"type": "EMAIL", "subject": "Keep", "body": "same"},
		map[string]any{"type": "EMAIL", "subject": "Drop"},
		map[string]any{"type": "EMAIL", "subject": "Edit", "body": "v1"},
	)
	stepsB := projectActions(t, "b",
		map[string]any{"type": "EMAIL", "subject": "Keep", "body": "same"},
		map[string]any{"type": "EMAIL", "subject": "Edit", "body": "v2"},
		map[string]any{"type": "EMAIL", "subject": "Fresh"},
	)

	markedA, markedB, summary := MarkChanges(stepsA, stepsB)

	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 1, summary.Modified)

	removed := 0
	for _, step := range markedA {
		if step.IsRemoved {
			removed++
		}
	}

	added, modifiedPairs := 0, 0
	for _, step := range markedB {
		if step.IsNew {
			added++
		}

		if step.IsModified {
			modifiedPairs++
		}
	}

	assert.Equal(t, summary.Removed, removed)
	assert.Equal(t, summary.Added, added)
	assert.Equal(t, summary.Modified, modifiedPairs)
	assert.Equal(t, 3, summary.Total())
}

func TestMarkChanges_DoesNotMutateInputs(t *testing.T) {
	stepsA := projectActions(t, "a", map[string]any{"type": "EMAIL", "subject": "Gone"})
	stepsB := projectActions(t, "b", map[string]any{"type": "DEAL"})

	MarkChanges(stepsA, stepsB)

	assert.Equal(t, models.StepUnchanged, stepsA[0].Status)
	assert.False(t, stepsA[0].IsRemoved)
	assert.NotContains(t, stepsA[0].Details, "changedFields")
}

func TestMarkChanges_EmptySides(t *testing.T) {
	stepsB := projectActions(t, "b", map[string]any{"type": "DEAL"})

	markedA, markedB, summary := MarkChanges(nil, stepsB)

	assert.Empty(t, markedA)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, models.StepAdded, markedB[0].Status)
}

func TestMarkChanges_DuplicateTitlesGreedyFirstMatch(t *testing.T) {
	dup := map[string]any{"type": "DEAL"}

	stepsA := projectActions(t, "a", dup, dup)
	stepsB := projectActions(t, "b", dup)

	_, _, summary := MarkChanges(stepsA, stepsB)

	// Two identical steps on side A, one on side B: the first A step takes
	// the only B candidate, the second registers as removed.
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 0, summary.Added)
}
