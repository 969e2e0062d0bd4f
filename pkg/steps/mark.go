package steps

import (
	"reflect"

	"github.com/flowvault/flowvault/pkg/models"
)

// ComparableDetailFields is the fixed set of effective-field keys compared
// when deciding whether a matched step pair was modified.
var ComparableDetailFields = []string{
	"type",
	"delayMillis",
	"propertyName",
	"propertyValue",
	"subject",
	"body",
	"settings",
}

// MarkChanges annotates two projected step sequences with their change state
// and returns the change summary. Steps are matched by (title, type) key, not
// by position, so insertions and deletions do not cascade into false
// modifications. Matching is greedy first-match-wins in document order; it is
// a best-effort heuristic, not a minimal edit script. Each logical step
// increments exactly one summary counter. Inputs are not mutated.
func MarkChanges(stepsA, stepsB []models.Step) (markedA, markedB []models.Step, summary models.ChangeSummary) {
	markedA = copySteps(stepsA)
	markedB = copySteps(stepsB)

	matchedB := make([]bool, len(markedB))

	for i := range markedA {
		j, found := findMatch(markedA[i], markedB, matchedB)
		if !found {
			markedA[i].MarkStatus(models.StepRemoved)
			summary.Removed++

			continue
		}

		matchedB[j] = true

		if detailsDiffer(markedA[i], markedB[j]) {
			markedA[i].MarkStatus(models.StepModified)
			markedB[j].MarkStatus(models.StepModified)
			markedA[i].Details["changedFields"] = changedFields(markedA[i], markedB[j])
			markedB[j].Details["changedFields"] = changedFields(markedA[i], markedB[j])
			summary.Modified++

			continue
		}

		markedA[i].MarkStatus(models.StepUnchanged)
		markedB[j].MarkStatus(models.StepUnchanged)
	}

	for j := range markedB {
		if !matchedB[j] {
			markedB[j].MarkStatus(models.StepAdded)
			summary.Added++
		}
	}

	return markedA, markedB, summary
}

func copySteps(source []models.Step) []models.Step {
	copied := make([]models.Step, len(source))

	for i, step := range source {
		copied[i] = step

		details := make(map[string]any, len(step.Details))
		for key, value := range step.Details {
			details[key] = value
		}

		copied[i].Details = details
	}

	return copied
}

func findMatch(step models.Step, candidates []models.Step, taken []bool) (int, bool) {
	for j, candidate := range candidates {
		if taken[j] {
			continue
		}

		if candidate.Title == step.Title && candidate.Type == step.Type {
			return j, true
		}
	}

	return 0, false
}

func detailsDiffer(a, b models.Step) bool {
	return len(changedFields(a, b)) > 0
}

// changedFields compares the whitelisted effective fields of a matched pair
// and returns old/new values for each differing field.
func changedFields(a, b models.Step) map[string]any {
	fieldsA := models.AsMap(a.Details["fields"])
	fieldsB := models.AsMap(b.Details["fields"])

	changed := make(map[string]any)

	for _, field := range ComparableDetailFields {
		oldValue, inA := fieldsA[field]
		newValue, inB := fieldsB[field]

		if !inA && !inB {
			continue
		}

		if !reflect.DeepEqual(oldValue, newValue) {
			changed[field] = map[string]any{"old": oldValue, "new": newValue}
		}
	}

	return changed
}
