package models

// DifferenceType classifies one structural difference.
type DifferenceType string

const (
	DifferenceAdded   DifferenceType = "added"
	DifferenceRemoved DifferenceType = "removed"
	DifferenceChanged DifferenceType = "changed"
	// DifferenceError records a comparison failure for one item. The diff as a
	// whole continues; callers receive partial results, never a hard failure.
	DifferenceError DifferenceType = "error"
)

// Difference is one field-level difference between two document versions.
// Details carries nested sub-differences for compound fields, such as
// per-action property changes.
type Difference struct {
	Field    string         `json:"field"`
	OldValue any            `json:"oldValue,omitempty"`
	NewValue any            `json:"newValue,omitempty"`
	Type     DifferenceType `json:"type"`
	Details  map[string]any `json:"details,omitempty"`
}
