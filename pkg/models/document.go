// Package models defines the core domain models for workflow version
// comparison and risk assessment.
package models

import "encoding/json"

// WorkflowDocument is one snapshotted version of a provider workflow
// configuration. Documents arrive from the provider API as loosely structured
// JSON whose shape varies by workflow type and API version, so the model is an
// open map with typed accessors that tolerate missing or malformed fields.
type WorkflowDocument map[string]any

// Known top-level document fields.
const (
	FieldName               = "name"
	FieldEnabled            = "enabled"
	FieldStatus             = "status"
	FieldType               = "type"
	FieldDescription        = "description"
	FieldActions            = "actions"
	FieldEnrollmentTriggers = "enrollmentTriggers"
	FieldGoals              = "goals"
)

// Name returns the workflow name, or "" when absent or not a string.
func (d WorkflowDocument) Name() string {
	return AsString(d[FieldName])
}

// Actions returns the document's action list. A missing, null, or non-list
// actions field is treated as an empty list, never an error.
func (d WorkflowDocument) Actions() []map[string]any {
	return AsObjectList(d[FieldActions])
}

// EnrollmentTriggers returns the enrollment trigger list. Some provider API
// versions return a single trigger object instead of a list; that object is
// wrapped into a one-element list here. HasSingleTrigger reports which shape
// the raw document used.
func (d WorkflowDocument) EnrollmentTriggers() []map[string]any {
	if single, ok := d[FieldEnrollmentTriggers].(map[string]any); ok {
		return []map[string]any{single}
	}

	return AsObjectList(d[FieldEnrollmentTriggers])
}

// HasSingleTrigger reports whether the document carries a single trigger
// object rather than a trigger list.
func (d WorkflowDocument) HasSingleTrigger() bool {
	_, ok := d[FieldEnrollmentTriggers].(map[string]any)

	return ok
}

// Goals returns the workflow goal list, tolerating absent or malformed shapes.
func (d WorkflowDocument) Goals() []map[string]any {
	return AsObjectList(d[FieldGoals])
}

// IsRecognizable reports whether the document carries at least one field the
// engine knows how to interpret.
func (d WorkflowDocument) IsRecognizable() bool {
	for _, field := range []string{
		FieldName, FieldActions, FieldEnrollmentTriggers, FieldGoals,
	} {
		if _, ok := d[field]; ok {
			return true
		}
	}

	return false
}

// AsString coerces a loosely typed value to a string, returning "" for
// anything that is not a string.
func AsString(value any) string {
	s, _ := value.(string)

	return s
}

// AsMap coerces a loosely typed value to an object, returning nil for
// anything that is not an object.
func AsMap(value any) map[string]any {
	m, _ := value.(map[string]any)

	return m
}

// AsObjectList coerces a loosely typed value to a list of objects. Non-list
// values and non-object elements are dropped rather than reported as errors;
// provider documents routinely interleave nulls into action lists.
func AsObjectList(value any) []map[string]any {
	raw, ok := value.([]any)
	if !ok {
		return []map[string]any{}
	}

	items := make([]map[string]any, 0, len(raw))

	for _, element := range raw {
		if item, isObject := element.(map[string]any); isObject {
			items = append(items, item)
		}
	}

	return items
}

// AsFloat coerces a loosely typed numeric value to a float64. JSON decoding
// yields float64 for all numbers, but stored documents occasionally carry
// integer types after round-tripping through typed layers.
func AsFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	}

	return 0, false
}
