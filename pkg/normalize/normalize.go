// Package normalize prepares workflow documents for stable comparison by
// stripping volatile fields and producing canonically ordered serializations.
package normalize

import (
	"github.com/flowvault/flowvault/pkg/models"
)

// DenyList names the volatile, non-semantic fields removed at every nesting
// level before comparison: provider timestamps, portal and sync metadata, and
// execution statistics. Two snapshots that differ only in these fields are
// the same workflow.
var DenyList = map[string]struct{}{
	"createdAt":               {},
	"updatedAt":               {},
	"insertedAt":              {},
	"updatedBy":               {},
	"lastUpdatedTime":         {},
	"lastUpdatedBy":           {},
	"portalId":                {},
	"migrationStatus":         {},
	"contactListIds":          {},
	"internal":                {},
	"internalUpdatedAt":       {},
	"internalUpdatedBy":       {},
	"listening":               {},
	"dataSources":             {},
	"crmObjectCreationStatus": {},
	"originalAuthorUserId":    {},
	"creationTime":            {},
	"updateTime":              {},
	"revisionId":              {},
	"syncedAt":                {},
	"executionCount":          {},
	"enrolledCount":           {},
	"statsTimestamp":          {},
}

// Document strips the default deny-list from a workflow document. The input
// is never mutated, and normalization is idempotent.
func Document(doc models.WorkflowDocument) models.WorkflowDocument {
	if doc == nil {
		return nil
	}

	return models.WorkflowDocument(stripMap(doc, DenyList))
}

// Value strips deny-listed keys from an arbitrary value tree using a caller
// supplied deny-list. Maps and slices are deep-copied; scalars pass through.
// Array order is preserved: order is semantically meaningful for actions and
// triggers.
func Value(value any, denyList map[string]struct{}) any {
	switch typed := value.(type) {
	case map[string]any:
		return stripMap(typed, denyList)
	case models.WorkflowDocument:
		return stripMap(typed, denyList)
	case []any:
		items := make([]any, len(typed))
		for i, element := range typed {
			items[i] = Value(element, denyList)
		}

		return items
	default:
		return typed
	}
}

// Marshal serializes a normalized value with lexicographically sorted object
// keys at every level, so semantically identical documents serialize to
// byte-identical output regardless of input field ordering.
func Marshal(value any) []byte {
	return models.CanonicalJSON(value)
}

// Equal reports whether two value trees are semantically equal after
// normalization: volatile fields stripped, key order ignored, array order
// significant.
func Equal(a, b any) bool {
	normalizedA := Marshal(Value(a, DenyList))
	normalizedB := Marshal(Value(b, DenyList))

	return string(normalizedA) == string(normalizedB)
}

func stripMap(source map[string]any, denyList map[string]struct{}) map[string]any {
	copied := make(map[string]any, len(source))

	for key, value := range source {
		if _, denied := denyList[key]; denied {
			continue
		}

		copied[key] = Value(value, denyList)
	}

	return copied
}
