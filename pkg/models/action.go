package models

import "encoding/json"

// ActionKind is the classified category of a workflow action. Provider
// documents discriminate actions by a raw type string whose vocabulary varies
// by API version; classification maps them into this closed set, with
// KindUnknown as the catch-all that keeps the raw payload available.
type ActionKind string

const (
	KindDelay          ActionKind = "delay"
	KindSetProperty    ActionKind = "set_property"
	KindEmail          ActionKind = "email"
	KindBranch         ActionKind = "branch"
	KindWebhook        ActionKind = "webhook"
	KindCreateTask     ActionKind = "create_task"
	KindAddToList      ActionKind = "add_to_list"
	KindRemoveFromList ActionKind = "remove_from_list"
	KindCreateDeal     ActionKind = "create_deal"
	KindAssignOwner    ActionKind = "assign_owner"
	KindDeleteContact  ActionKind = "delete_contact"
	KindUnsupported    ActionKind = "unsupported"
	KindUnknown        ActionKind = "unknown"
)

// Raw provider type strings seen across API versions.
const (
	TypeDelay             = "DELAY"
	TypeSetProperty       = "SET_CONTACT_PROPERTY"
	TypeSetPropertyAlt    = "SET_PROPERTY"
	TypeSingleFieldUpdate = "SINGLE_FIELD_UPDATE"
	TypeEmail             = "EMAIL"
	TypeSendEmail         = "SEND_EMAIL"
	TypeBranch            = "BRANCH"
	TypeIfThenBranch      = "IF_THEN_BRANCH"
	TypeWebhook           = "WEBHOOK"
	TypeCreateTask        = "TASK"
	TypeCreateTaskAlt     = "CREATE_TASK"
	TypeAddToList         = "ADD_TO_LIST"
	TypeRemoveFromList    = "REMOVE_FROM_LIST"
	TypeCreateDeal        = "DEAL"
	TypeCreateDealAlt     = "CREATE_DEAL"
	TypeAssignOwner       = "ASSIGN_OWNER"
	TypeRotateOwner       = "ROTATE_OWNER"
	TypeDeleteContact     = "DELETE_CONTACT"
	TypeUnsupported       = "UNSUPPORTED_ACTION"
	TypeCustomCode        = "CUSTOM_CODE"
)

// Action fields consulted during classification and rendering.
const (
	ActionFieldType          = "type"
	ActionFieldActionType    = "actionType"
	ActionFieldBody          = "body"
	ActionFieldActionBody    = "actionBody"
	ActionFieldDelayMillis   = "delayMillis"
	ActionFieldPropertyName  = "propertyName"
	ActionFieldPropertyValue = "propertyValue"
	ActionFieldNewValue      = "newValue"
	ActionFieldSubject       = "subject"
	ActionFieldURL           = "url"
	ActionFieldWebhook       = "webhook"
	ActionFieldListID        = "listId"
	ActionFieldFilters       = "filters"
	ActionFieldConditions    = "conditions"
	ActionFieldBackupEnabled = "backupEnabled"
)

var kindByType = map[string]ActionKind{
	TypeDelay:             KindDelay,
	TypeSetProperty:       KindSetProperty,
	TypeSetPropertyAlt:    KindSetProperty,
	TypeSingleFieldUpdate: KindSetProperty,
	TypeEmail:             KindEmail,
	TypeSendEmail:         KindEmail,
	TypeBranch:            KindBranch,
	TypeIfThenBranch:      KindBranch,
	TypeWebhook:           KindWebhook,
	TypeCreateTask:        KindCreateTask,
	TypeCreateTaskAlt:     KindCreateTask,
	TypeAddToList:         KindAddToList,
	TypeRemoveFromList:    KindRemoveFromList,
	TypeCreateDeal:        KindCreateDeal,
	TypeCreateDealAlt:     KindCreateDeal,
	TypeAssignOwner:       KindAssignOwner,
	TypeRotateOwner:       KindAssignOwner,
	TypeDeleteContact:     KindDeleteContact,
	TypeUnsupported:       KindUnsupported,
	TypeCustomCode:        KindUnsupported,
}

// ClassifiedAction is the typed view of one raw action. Fields is the
// effective field set: the raw action merged with any decoded embedded
// payload, so renderers and scorers read one flat map regardless of how the
// provider wrapped the action.
type ClassifiedAction struct {
	Kind   ActionKind
	Type   string
	Raw    map[string]any
	Fields map[string]any
}

// ClassifyAction maps a raw action into its ClassifiedAction. Actions wrapped
// in the provider's generic unsupported marker carry their real definition as
// a serialized sub-document; that payload is decoded and its actionType
// substituted before classification, recovering meaningful categories for
// wrapped actions. Decode failures fall through to KindUnsupported.
func ClassifyAction(raw map[string]any) ClassifiedAction {
	if raw == nil {
		return ClassifiedAction{Kind: KindUnknown, Raw: map[string]any{}, Fields: map[string]any{}}
	}

	actionType := AsString(raw[ActionFieldType])
	if actionType == "" {
		actionType = AsString(raw[ActionFieldActionType])
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		fields[key] = value
	}

	kind, known := kindByType[actionType]

	if known && kind == KindUnsupported {
		if payload := decodeEmbeddedPayload(raw); payload != nil {
			for key, value := range payload {
				fields[key] = value
			}

			if inner := AsString(payload[ActionFieldActionType]); inner != "" {
				actionType = inner
				kind, known = kindByType[inner]
			}
		}
	}

	if !known {
		kind = KindUnknown

		if actionType == "" {
			kind = KindUnsupported
		}
	}

	return ClassifiedAction{Kind: kind, Type: actionType, Raw: raw, Fields: fields}
}

// decodeEmbeddedPayload extracts the serialized sub-document some wrapped
// actions carry in actionBody (or body). Returns nil when absent or not
// decodable as a JSON object.
func decodeEmbeddedPayload(raw map[string]any) map[string]any {
	for _, field := range []string{ActionFieldActionBody, ActionFieldBody} {
		switch payload := raw[field].(type) {
		case map[string]any:
			return payload
		case string:
			if payload == "" {
				continue
			}

			var decoded map[string]any
			if err := json.Unmarshal([]byte(payload), &decoded); err == nil {
				return decoded
			}
		}
	}

	return nil
}

// MutatesData reports whether the action writes contact data. Used by the
// impact scorer and the data-loss detector.
func (a ClassifiedAction) MutatesData() bool {
	return a.Kind == KindSetProperty || a.Type == TypeSingleFieldUpdate
}

// CallsExternal reports whether the action leaves the provider: webhook and
// integration actions, plus any action carrying a url or webhook field.
func (a ClassifiedAction) CallsExternal() bool {
	if a.Kind == KindWebhook {
		return true
	}

	if _, ok := a.Fields[ActionFieldURL]; ok {
		return true
	}

	_, ok := a.Fields[ActionFieldWebhook]

	return ok
}
