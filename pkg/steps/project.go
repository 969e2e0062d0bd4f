// Package steps renders workflow documents into ordered, human-readable step
// sequences and annotates step-level changes between two versions.
package steps

import (
	"fmt"
	"strings"

	"github.com/flowvault/flowvault/pkg/models"
)

// OperatorNames maps raw filter operators to their human-readable phrasing in
// branch and trigger titles.
var OperatorNames = map[string]string{
	"EQ":           "equals",
	"NEQ":          "does not equal",
	"GT":           "is greater than",
	"LT":           "is less than",
	"GTE":          "is at least",
	"LTE":          "is at most",
	"CONTAINS":     "contains",
	"NOT_CONTAINS": "does not contain",
	"SET":          "is known",
	"NOT_SET":      "is unknown",
}

// PropertyLabels maps provider-internal property names to their display
// labels. Properties outside this table fall back to underscore humanizing.
var PropertyLabels = map[string]string{
	"lifecyclestage":       "Lifecycle Stage",
	"hs_lead_status":       "Lead Status",
	"hubspot_owner_id":     "Contact Owner",
	"email":                "Email",
	"firstname":            "First Name",
	"lastname":             "Last Name",
	"company":              "Company",
	"phone":                "Phone Number",
	"dealstage":            "Deal Stage",
	"num_associated_deals": "Associated Deals",
}

// Project renders one workflow document version into its canonical ordered
// step sequence: enrollment triggers, then actions, then goals, in document
// order. Every non-nil document yields at least one step: documents with no
// steps but a name produce a synthetic summary step, and entirely
// unrecognizable documents produce a synthetic unsupported step. Rendering
// never panics out; a whole-document failure degrades to one error step.
func Project(doc models.WorkflowDocument, versionTag string) (projected []models.Step) {
	defer func() {
		if recovered := recover(); recovered != nil {
			projected = []models.Step{errorStep(versionTag, fmt.Sprint(recovered))}
		}
	}()

	if doc == nil {
		return []models.Step{unsupportedStep(versionTag, "no workflow data available")}
	}

	projected = make([]models.Step, 0)

	for _, trigger := range doc.EnrollmentTriggers() {
		projected = append(projected, triggerStep(trigger, versionTag, len(projected)))
	}

	for _, action := range doc.Actions() {
		projected = append(projected, actionStep(action, versionTag, len(projected)))
	}

	for _, goal := range doc.Goals() {
		projected = append(projected, goalStep(goal, versionTag, len(projected)))
	}

	if len(projected) > 0 {
		return projected
	}

	if name := doc.Name(); name != "" {
		return []models.Step{summaryStep(name, versionTag)}
	}

	if !doc.IsRecognizable() {
		return []models.Step{unsupportedStep(versionTag, "workflow format not recognized")}
	}

	return []models.Step{summaryStep("Unnamed workflow", versionTag)}
}

func newStep(versionTag string, index int, stepType models.StepType) models.Step {
	return models.Step{
		ID:         fmt.Sprintf("%s-step-%d", versionTag, index),
		Type:       stepType,
		VersionTag: versionTag,
		Status:     models.StepUnchanged,
	}
}

func triggerStep(trigger map[string]any, versionTag string, index int) models.Step {
	step := newStep(versionTag, index, models.StepTypeTrigger)

	eventType := models.TriggerEventType(trigger)
	if eventType == "" {
		step.Title = "Enrollment trigger"
	} else {
		step.Title = "Enrollment: " + Humanize(eventType)
	}

	if filters := models.TriggerFilters(trigger); len(filters) > 0 {
		step.Description = conditionPhrase(filters[0], "When")
	} else {
		step.Description = "Enrolls contacts into the workflow"
	}

	step.Details = map[string]any{
		"source": trigger,
		"fields": trigger,
	}

	return step
}

func actionStep(action map[string]any, versionTag string, index int) models.Step {
	step := newStep(versionTag, index, models.StepTypeAction)

	classified := models.ClassifyAction(action)
	step.ActionType = classified.Type
	step.Title, step.Description = renderAction(classified)
	step.Details = map[string]any{
		"source": action,
		"fields": classified.Fields,
	}

	return step
}

func goalStep(goal map[string]any, versionTag string, index int) models.Step {
	step := newStep(versionTag, index, models.StepTypeGoal)
	step.Title = "Goal"

	if filters := models.AsObjectList(goal[models.TriggerFieldFilters]); len(filters) > 0 {
		step.Description = conditionPhrase(filters[0], "Completed when")
	} else {
		step.Description = "Marks the workflow as completed"
	}

	step.Details = map[string]any{
		"source": goal,
		"fields": goal,
	}

	return step
}

func summaryStep(name, versionTag string) models.Step {
	step := newStep(versionTag, 0, models.StepTypeSummary)
	step.Title = "Workflow: " + name
	step.Description = "This version has no triggers, actions, or goals"
	step.Details = map[string]any{"fields": map[string]any{}}

	return step
}

func unsupportedStep(versionTag, reason string) models.Step {
	step := newStep(versionTag, 0, models.StepTypeUnsupported)
	step.Title = "Unsupported workflow"
	step.Description = reason
	step.Details = map[string]any{"fields": map[string]any{}}

	return step
}

func errorStep(versionTag, reason string) models.Step {
	step := newStep(versionTag, 0, models.StepTypeError)
	step.Title = "Unable to render workflow"
	step.Description = reason
	step.Details = map[string]any{"fields": map[string]any{}}

	return step
}

// renderAction derives the title and description for one classified action.
// Unmatched kinds degrade to a humanized form of the raw type string; this
// path never fails.
func renderAction(action models.ClassifiedAction) (title, description string) {
	switch action.Kind {
	case models.KindDelay:
		return delayTitle(action), "Pause before the next step"
	case models.KindSetProperty:
		return setPropertyTitle(action), "Update a contact property"
	case models.KindEmail:
		if subject := firstString(action.Fields, "subject", "name"); subject != "" {
			return "Send email: " + subject, "Send an automated email"
		}

		return "Send email", "Send an automated email"
	case models.KindBranch:
		return branchTitle(action), "Split the workflow on a condition"
	case models.KindWebhook:
		if url := models.AsString(action.Fields[models.ActionFieldURL]); url != "" {
			return "Call webhook: " + url, "Send data to an external system"
		}

		return "Call webhook", "Send data to an external system"
	case models.KindCreateTask:
		if subject := firstString(action.Fields, "subject", "title"); subject != "" {
			return "Create task: " + subject, "Create a task for the owning team"
		}

		return "Create task", "Create a task for the owning team"
	case models.KindAddToList:
		return listTitle("Add to list", action), "Add the contact to a list"
	case models.KindRemoveFromList:
		return listTitle("Remove from list", action), "Remove the contact from a list"
	case models.KindCreateDeal:
		return "Create deal", "Create a new deal record"
	case models.KindAssignOwner:
		return "Assign owner", "Assign an owner to the contact"
	case models.KindDeleteContact:
		return "Delete contact", "Permanently delete the contact record"
	case models.KindUnsupported:
		return "Unsupported action", "This action type is not recognized"
	default:
		return Humanize(action.Type), "Provider action"
	}
}

func delayTitle(action models.ClassifiedAction) string {
	millis, ok := models.AsFloat(action.Fields[models.ActionFieldDelayMillis])
	if !ok || millis <= 0 {
		return "Wait"
	}

	return "Wait " + FormatDuration(int64(millis))
}

// FormatDuration renders a millisecond duration at its coarsest whole unit,
// day over hour over minute.
func FormatDuration(millis int64) string {
	const (
		minute = int64(60_000)
		hour   = 60 * minute
		day    = 24 * hour
	)

	switch {
	case millis >= day:
		return pluralize(millis/day, "day")
	case millis >= hour:
		return pluralize(millis/hour, "hour")
	case millis >= minute:
		return pluralize(millis/minute, "minute")
	default:
		return "less than a minute"
	}
}

func pluralize(count int64, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", count, unit)
}

func setPropertyTitle(action models.ClassifiedAction) string {
	property := PropertyLabel(models.AsString(action.Fields[models.ActionFieldPropertyName]))

	value := firstString(action.Fields, models.ActionFieldPropertyValue, models.ActionFieldNewValue)
	if value == "" {
		return "Clear " + property
	}

	return fmt.Sprintf("Set %s to %s", property, value)
}

func branchTitle(action models.ClassifiedAction) string {
	conditions := models.AsObjectList(action.Fields[models.ActionFieldFilters])
	if len(conditions) == 0 {
		conditions = models.AsObjectList(action.Fields[models.ActionFieldConditions])
	}

	if len(conditions) == 0 {
		return "Branch"
	}

	return "Branch: " + conditionPhrase(conditions[0], "If")
}

// conditionPhrase renders one filter record as "<prefix> {property}
// {operator} {value}". SET and NOT_SET operators take no value.
func conditionPhrase(filter map[string]any, prefix string) string {
	property := PropertyLabel(models.AsString(filter[models.TriggerFieldProperty]))
	operator := models.AsString(filter[models.TriggerFieldOperator])

	operatorName, known := OperatorNames[operator]
	if !known {
		operatorName = strings.ToLower(Humanize(operator))
	}

	if operator == "SET" || operator == "NOT_SET" {
		return fmt.Sprintf("%s %s %s", prefix, property, operatorName)
	}

	value := models.AsString(filter[models.TriggerFieldValue])

	return strings.TrimSpace(fmt.Sprintf("%s %s %s %s", prefix, property, operatorName, value))
}

func listTitle(prefix string, action models.ClassifiedAction) string {
	if listID, ok := models.AsFloat(action.Fields[models.ActionFieldListID]); ok {
		return fmt.Sprintf("%s %d", prefix, int64(listID))
	}

	if listID := models.AsString(action.Fields[models.ActionFieldListID]); listID != "" {
		return prefix + " " + listID
	}

	return prefix
}

// PropertyLabel returns the display label for a provider property name.
func PropertyLabel(property string) string {
	if property == "" {
		return "property"
	}

	if label, known := PropertyLabels[property]; known {
		return label
	}

	return Humanize(property)
}

// Humanize converts a raw provider identifier into display form: underscores
// to spaces, title case.
func Humanize(raw string) string {
	if raw == "" {
		return ""
	}

	words := strings.Fields(strings.ReplaceAll(strings.ToLower(raw), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}

func firstString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := models.AsString(fields[key]); value != "" {
			return value
		}
	}

	return ""
}
