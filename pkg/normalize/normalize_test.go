package normalize

import (
	"testing"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() models.WorkflowDocument {
	return models.WorkflowDocument{
		"name":      "Lead Nurture",
		"enabled":   true,
		"updatedAt": float64(1700000000000),
		"portalId":  float64(12345),
		"actions": []any{
			map[string]any{
				"id":          "1",
				"type":        "DELAY",
				"delayMillis": float64(60000),
				"createdAt":   float64(1690000000000),
			},
		},
		"metadata": map[string]any{
			"source":          "provider",
			"lastUpdatedTime": float64(1700000000001),
		},
	}
}

func TestDocument_StripsDenyListedFieldsAtEveryLevel(t *testing.T) {
	normalized := Document(sampleDoc())

	assert.NotContains(t, normalized, "updatedAt")
	assert.NotContains(t, normalized, "portalId")

	actions := normalized.Actions()
	require.Len(t, actions, 1)
	assert.NotContains(t, actions[0], "createdAt")
	assert.Equal(t, "DELAY", models.AsString(actions[0]["type"]))

	metadata := models.AsMap(normalized["metadata"])
	require.NotNil(t, metadata)
	assert.NotContains(t, metadata, "lastUpdatedTime")
	assert.Equal(t, "provider", models.AsString(metadata["source"]))
}

func TestDocument_PreservesUnknownFields(t *testing.T) {
	doc := models.WorkflowDocument{
		"name":            "X",
		"someCustomField": "kept",
		"nested":          map[string]any{"alsoCustom": float64(1)},
	}

	normalized := Document(doc)

	assert.Equal(t, "kept", models.AsString(normalized["someCustomField"]))
	assert.Equal(t, float64(1), models.AsMap(normalized["nested"])["alsoCustom"])
}

func TestDocument_Idempotent(t *testing.T) {
	once := Document(sampleDoc())
	twice := Document(once)

	assert.Equal(t, Marshal(once), Marshal(twice))
}

func TestDocument_DoesNotMutateInput(t *testing.T) {
	doc := sampleDoc()
	Document(doc)

	assert.Contains(t, doc, "updatedAt")

	actions := doc.Actions()
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "createdAt")
}

func TestDocument_NilDocument(t *testing.T) {
	assert.Nil(t, Document(nil))
}

func TestMarshal_KeyOrderInvariant(t *testing.T) {
	a := models.WorkflowDocument{"name": "X", "enabled": true, "actions": []any{}}
	b := models.WorkflowDocument{"actions": []any{}, "enabled": true, "name": "X"}

	assert.Equal(t, Marshal(Document(a)), Marshal(Document(b)))
}

func TestMarshal_ArrayOrderSignificant(t *testing.T) {
	a := models.WorkflowDocument{"actions": []any{
		map[string]any{"id": "1"}, map[string]any{"id": "2"},
	}}
	b := models.WorkflowDocument{"actions": []any{
		map[string]any{"id": "2"}, map[string]any{"id": "1"},
	}}

	assert.NotEqual(t, Marshal(Document(a)), Marshal(Document(b)))
}

func TestEqual_VolatileFieldsOnlyDifference(t *testing.T) {
	a := sampleDoc()
	b := sampleDoc()
	b["updatedAt"] = float64(1800000000000)
	b["portalId"] = float64(99999)

	assert.True(t, Equal(a, b))
}

func TestEqual_SemanticDifferenceDetected(t *testing.T) {
	a := sampleDoc()
	b := sampleDoc()
	b["name"] = "Renamed"

	assert.False(t, Equal(a, b))
}
