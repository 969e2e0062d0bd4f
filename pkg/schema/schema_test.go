package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument_WellFormed(t *testing.T) {
	doc := map[string]any{
		"name":    "X",
		"enabled": true,
		"actions": []any{map[string]any{"type": "DELAY"}},
		"enrollmentTriggers": []any{
			map[string]any{"eventId": "form_submitted"},
		},
	}

	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocument_SingleTriggerObjectAccepted(t *testing.T) {
	doc := map[string]any{
		"enrollmentTriggers": map[string]any{"eventId": "form_submitted"},
	}

	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocument_UnknownFieldsAccepted(t *testing.T) {
	assert.NoError(t, ValidateDocument(map[string]any{"whatever": 42}))
}

func TestValidateDocument_MalformedShapesReported(t *testing.T) {
	err := ValidateDocument(map[string]any{"actions": "not-a-list"})
	assert.Error(t, err)

	err = ValidateDocument(map[string]any{"name": 42})
	assert.Error(t, err)
}
