// Package diffengine computes structural, field-level differences between
// two workflow document versions.
package diffengine

import (
	"fmt"
	"reflect"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/normalize"
)

// ScalarFields are the top-level document fields compared by plain equality.
var ScalarFields = []string{
	models.FieldName,
	models.FieldEnabled,
	models.FieldStatus,
	models.FieldType,
	models.FieldDescription,
}

// ComparableActionFields is the whitelist of action properties inspected
// during per-action sub-comparison. Fields outside this list never produce a
// difference on their own.
var ComparableActionFields = []string{
	"type",
	"actionType",
	"delayMillis",
	"delay",
	"propertyName",
	"propertyValue",
	"newValue",
	"subject",
	"body",
	"to",
	"from",
	"settings",
	"filters",
	"conditions",
}

// Difference field labels.
const (
	FieldActionsAdded    = "actions.added"
	FieldActionsRemoved  = "actions.removed"
	FieldActionsModified = "actions.modified"
)

// Diff compares two workflow document versions and returns their typed
// differences. Both sides are normalized first, so volatile fields never
// produce false positives. Comparison failures on individual items are
// recorded as error-typed differences and never abort the diff: callers
// always receive the partial result.
func Diff(a, b models.WorkflowDocument) []models.Difference {
	normalizedA := normalize.Document(orEmpty(a))
	normalizedB := normalize.Document(orEmpty(b))

	differences := make([]models.Difference, 0)

	differences = append(differences, diffScalars(normalizedA, normalizedB)...)
	differences = append(differences, diffActions(normalizedA, normalizedB)...)
	differences = append(differences, diffOpaqueList(normalizedA, normalizedB, models.FieldEnrollmentTriggers)...)
	differences = append(differences, diffOpaqueList(normalizedA, normalizedB, models.FieldGoals)...)

	return differences
}

func orEmpty(doc models.WorkflowDocument) models.WorkflowDocument {
	if doc == nil {
		return models.WorkflowDocument{}
	}

	return doc
}

func diffScalars(a, b models.WorkflowDocument) []models.Difference {
	differences := make([]models.Difference, 0)

	for _, field := range ScalarFields {
		oldValue, inA := a[field]
		newValue, inB := b[field]

		if !inA && !inB {
			continue
		}

		if !reflect.DeepEqual(oldValue, newValue) {
			differences = append(differences, models.Difference{
				Field:    field,
				OldValue: oldValue,
				NewValue: newValue,
				Type:     models.DifferenceChanged,
			})
		}
	}

	return differences
}

// diffActions matches actions across versions by identity key and emits one
// difference per added, removed, or modified action. Matching is by identity,
// not position: reordering alone does not produce differences.
func diffActions(a, b models.WorkflowDocument) []models.Difference {
	actionsA := a.Actions()
	actionsB := b.Actions()

	keyedA := keyActions(actionsA)
	keyedB := keyActions(actionsB)

	differences := make([]models.Difference, 0)

	// Removed and modified, in version-A document order.
	for _, action := range actionsA {
		key := models.ResolveIdentity(action).String()

		counterpart, inB := keyedB[key]
		if !inB {
			differences = append(differences, models.Difference{
				Field:    FieldActionsRemoved,
				OldValue: action,
				Type:     models.DifferenceRemoved,
			})

			continue
		}

		if diff, ok := compareActionPair(key, action, counterpart); ok {
			differences = append(differences, diff)
		}
	}

	// Added, in version-B document order.
	for _, action := range actionsB {
		key := models.ResolveIdentity(action).String()

		if _, inA := keyedA[key]; !inA {
			differences = append(differences, models.Difference{
				Field:    FieldActionsAdded,
				NewValue: action,
				Type:     models.DifferenceAdded,
			})
		}
	}

	return differences
}

func keyActions(actions []map[string]any) map[string]map[string]any {
	keyed := make(map[string]map[string]any, len(actions))

	for _, action := range actions {
		key := models.ResolveIdentity(action).String()
		if _, exists := keyed[key]; !exists {
			keyed[key] = action
		}
	}

	return keyed
}

// compareActionPair runs the whitelisted property sub-comparison for one
// matched action pair. A panic while comparing one pair degrades to a single
// error-typed difference.
func compareActionPair(key string, oldAction, newAction map[string]any) (diff models.Difference, changed bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			diff = models.Difference{
				Field: FieldActionsModified,
				Type:  models.DifferenceError,
				Details: map[string]any{
					"identity": key,
					"error":    fmt.Sprint(recovered),
				},
			}
			changed = true
		}
	}()

	subDifferences := make([]models.Difference, 0)

	for _, field := range ComparableActionFields {
		oldValue, inOld := oldAction[field]
		newValue, inNew := newAction[field]

		if !inOld && !inNew {
			continue
		}

		if !reflect.DeepEqual(oldValue, newValue) {
			subDifferences = append(subDifferences, models.Difference{
				Field:    field,
				OldValue: oldValue,
				NewValue: newValue,
				Type:     models.DifferenceChanged,
			})
		}
	}

	if len(subDifferences) == 0 {
		return models.Difference{}, false
	}

	return models.Difference{
		Field:    FieldActionsModified,
		OldValue: oldAction,
		NewValue: newAction,
		Type:     models.DifferenceChanged,
		Details: map[string]any{
			"identity":   key,
			"properties": subDifferences,
		},
	}, true
}

// diffOpaqueList compares enrollment triggers or goals as one opaque unit:
// any change in the list is one changed difference carrying both serialized
// sides. Trigger semantics are interdependent enough that item-granular
// diffing would mislead more than it informs.
func diffOpaqueList(a, b models.WorkflowDocument, field string) []models.Difference {
	serializedA := string(normalize.Marshal(listOrEmpty(a[field])))
	serializedB := string(normalize.Marshal(listOrEmpty(b[field])))

	if serializedA == serializedB {
		return nil
	}

	return []models.Difference{{
		Field:    field,
		OldValue: a[field],
		NewValue: b[field],
		Type:     models.DifferenceChanged,
		Details: map[string]any{
			"old": serializedA,
			"new": serializedB,
		},
	}}
}

// listOrEmpty folds absent and empty lists together so empty-vs-absent never
// registers as a change.
func listOrEmpty(value any) any {
	if value == nil {
		return []any{}
	}

	if list, ok := value.([]any); ok && len(list) == 0 {
		return []any{}
	}

	return value
}
