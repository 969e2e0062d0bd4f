package models

// StepStatus is the change state of one projected step.
type StepStatus string

const (
	StepUnchanged StepStatus = "unchanged"
	StepAdded     StepStatus = "added"
	StepModified  StepStatus = "modified"
	StepRemoved   StepStatus = "removed"
)

// StepType categorizes a projected step for display grouping.
type StepType string

const (
	StepTypeTrigger     StepType = "trigger"
	StepTypeAction      StepType = "action"
	StepTypeGoal        StepType = "goal"
	StepTypeSummary     StepType = "summary"
	StepTypeUnsupported StepType = "unsupported"
	StepTypeError       StepType = "error"
)

// Step is one entry of the canonical ordered rendering of a workflow version:
// triggers first, then actions, then goals, matching the workflow's logical
// execution order. Details retains the raw source record plus any computed
// changed-property map for downstream inspection.
type Step struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        StepType       `json:"type"`
	ActionType  string         `json:"actionType,omitempty"`
	VersionTag  string         `json:"versionTag"`
	IsNew       bool           `json:"isNew"`
	IsModified  bool           `json:"isModified"`
	IsRemoved   bool           `json:"isRemoved"`
	Status      StepStatus     `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
}

// MarkStatus sets Status and keeps the boolean flags consistent with it.
func (s *Step) MarkStatus(status StepStatus) {
	s.Status = status
	s.IsNew = status == StepAdded
	s.IsModified = status == StepModified
	s.IsRemoved = status == StepRemoved
}

// ChangeSummary counts steps by change state across a version pair. Each step
// increments exactly one counter.
type ChangeSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Total returns the number of changed steps.
func (c ChangeSummary) Total() int {
	return c.Added + c.Removed + c.Modified
}
