package models

// RiskLevel is the discrete risk classification derived from the overall
// risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskSeverity grades individual risk factors and safety checks.
type RiskSeverity string

const (
	SeverityLow      RiskSeverity = "low"
	SeverityMedium   RiskSeverity = "medium"
	SeverityHigh     RiskSeverity = "high"
	SeverityCritical RiskSeverity = "critical"
)

// CheckStatus is the outcome of one automated safety check.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "PASSED"
	CheckWarning CheckStatus = "WARNING"
	CheckFailed  CheckStatus = "FAILED"
)

// RiskFactorType identifies one detector in the risk factor battery.
type RiskFactorType string

const (
	FactorInfiniteLoop        RiskFactorType = "infinite_loop"
	FactorDataLoss            RiskFactorType = "data_loss"
	FactorComplexBranching    RiskFactorType = "complex_branching"
	FactorExternalIntegration RiskFactorType = "external_integration"
	FactorHighVolumeEmails    RiskFactorType = "high_volume_emails"
)

// RiskFactor is one triggered risk detector with its human-facing framing.
type RiskFactor struct {
	Type        RiskFactorType `json:"type"`
	Severity    RiskSeverity   `json:"severity"`
	Description string         `json:"description"`
	Impact      string         `json:"impact"`
}

// SafetyCheck is the reported outcome of one fixed automated check. All six
// checks always run and are always reported, whatever their outcome.
type SafetyCheck struct {
	Name     string       `json:"name"`
	Status   CheckStatus  `json:"status"`
	Severity RiskSeverity `json:"severity"`
	Message  string       `json:"message"`
}

// Mitigation is one suggested countermeasure for a triggered risk factor.
type Mitigation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// RollbackPlan describes how to undo the workflow change at its risk tier.
type RollbackPlan struct {
	Strategy           string   `json:"strategy"`
	EstimatedTime      string   `json:"estimatedTime"`
	RequiresManualWork bool     `json:"requiresManualWork"`
	Steps              []string `json:"steps"`
}

// RiskAssessment is the complete derived risk picture for one workflow
// document. It has no lifecycle of its own: recomputed on demand, never
// persisted by the engine.
type RiskAssessment struct {
	RiskLevel             RiskLevel     `json:"riskLevel"`
	RiskScore             int           `json:"riskScore"`
	ComplexityScore       int           `json:"complexityScore"`
	ImpactScore           int           `json:"impactScore"`
	SafetyScore           int           `json:"safetyScore"`
	RiskFactors           []RiskFactor  `json:"riskFactors"`
	SafetyChecks          []SafetyCheck `json:"safetyChecks"`
	MitigationSuggestions []Mitigation  `json:"mitigationSuggestions"`
	RollbackPlan          RollbackPlan  `json:"rollbackPlan"`
	RecoverySteps         []string      `json:"recoverySteps"`
	DegradedScores        []string      `json:"degradedScores,omitempty"`
}
