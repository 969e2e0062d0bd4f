package models

// Trigger fields consulted during projection and loop detection.
const (
	TriggerFieldEventID  = "eventId"
	TriggerFieldType     = "type"
	TriggerFieldFilters  = "filters"
	TriggerFieldProperty = "property"
	TriggerFieldOperator = "operator"
	TriggerFieldValue    = "value"
)

// TriggerFilters returns a trigger's condition records, tolerating absent or
// malformed filter lists.
func TriggerFilters(trigger map[string]any) []map[string]any {
	return AsObjectList(trigger[TriggerFieldFilters])
}

// TriggerEventType returns the trigger discriminator: eventId when present,
// else type, else "".
func TriggerEventType(trigger map[string]any) string {
	if eventID := AsString(trigger[TriggerFieldEventID]); eventID != "" {
		return eventID
	}

	return AsString(trigger[TriggerFieldType])
}
