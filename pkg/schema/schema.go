// Package schema performs loose structural sanity checks on inbound workflow
// documents at the API and CLI boundary. Validation failures are advisory:
// the engine tolerates malformed documents, so callers surface warnings
// instead of rejecting input.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema accepts any object but pins the shapes the engine interprets
// when the fields are present. enrollmentTriggers admits both the list shape
// and the legacy single-object shape.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":    map[string]any{"type": "string"},
		"enabled": map[string]any{"type": "boolean"},
		"actions": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": []any{"object", "null"}},
		},
		"enrollmentTriggers": map[string]any{
			"type": []any{"array", "object"},
		},
		"goals": map[string]any{
			"type": "array",
		},
	},
}

// ValidateDocument checks a decoded document against the loose document
// schema. A non-nil error describes every violation; the caller decides
// whether to warn or proceed.
func ValidateDocument(doc map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(documentSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, violation := range result.Errors() {
			violations = append(violations, violation.String())
		}

		return fmt.Errorf("document shape violations: %s", strings.Join(violations, "; "))
	}

	return nil
}
