package risk

import (
	"fmt"

	"github.com/flowvault/flowvault/pkg/models"
)

// Thresholds for conditional risk factors.
const (
	ComplexBranchingThreshold = 3
	HighVolumeEmailThreshold  = 5
)

// runSafetyChecks executes the fixed battery of six automated checks. All six
// always run and are always reported, whatever their outcome.
func runSafetyChecks(p profile) []models.SafetyCheck {
	checks := make([]models.SafetyCheck, 0, 6)

	if hasInfiniteLoopRisk(p) {
		checks = append(checks, models.SafetyCheck{
			Name:     "Infinite Loop Detection",
			Status:   models.CheckFailed,
			Severity: models.SeverityCritical,
			Message:  "A property-set action writes a property used by an enrollment trigger",
		})
	} else {
		checks = append(checks, models.SafetyCheck{
			Name:     "Infinite Loop Detection",
			Status:   models.CheckPassed,
			Severity: models.SeverityLow,
			Message:  "No enrollment loop detected",
		})
	}

	if hasDataLossRisk(p) {
		checks = append(checks, models.SafetyCheck{
			Name:     "Data Integrity Validation",
			Status:   models.CheckFailed,
			Severity: models.SeverityHigh,
			Message:  "Data-mutating actions run without a backup flag",
		})
	} else {
		checks = append(checks, models.SafetyCheck{
			Name:     "Data Integrity Validation",
			Status:   models.CheckPassed,
			Severity: models.SeverityLow,
			Message:  "No unprotected data mutations found",
		})
	}

	if hasPermissionRisk(p) {
		checks = append(checks, models.SafetyCheck{
			Name:     "Permission Verification",
			Status:   models.CheckWarning,
			Severity: models.SeverityMedium,
			Message:  "External calls may require credentials that expire or lose scope",
		})
	} else {
		checks = append(checks, models.SafetyCheck{
			Name:     "Permission Verification",
			Status:   models.CheckPassed,
			Severity: models.SeverityLow,
			Message:  "No external permissions required",
		})
	}

	if hasRateLimitRisk(p) {
		checks = append(checks, models.SafetyCheck{
			Name:     "Rate Limit Analysis",
			Status:   models.CheckWarning,
			Severity: models.SeverityMedium,
			Message: fmt.Sprintf(
				"%d email and webhook actions exceed the safe threshold of %d",
				p.emailCount+p.webhookCount, RateLimitActionThreshold,
			),
		})
	} else {
		checks = append(checks, models.SafetyCheck{
			Name:     "Rate Limit Analysis",
			Status:   models.CheckPassed,
			Severity: models.SeverityLow,
			Message:  "Action volume is within provider rate limits",
		})
	}

	if hasErrorHandling(p) {
		checks = append(checks, models.SafetyCheck{
			Name:     "Error Handling Assessment",
			Status:   models.CheckPassed,
			Severity: models.SeverityLow,
			Message:  "An error-handling branch is present",
		})
	} else {
		checks = append(checks, models.SafetyCheck{
			Name:     "Error Handling Assessment",
			Status:   models.CheckWarning,
			Severity: models.SeverityLow,
			Message:  "No branch handles error or failure states",
		})
	}

	// Placeholder for regulatory checks pending product requirements.
	checks = append(checks, models.SafetyCheck{
		Name:     "Compliance Check",
		Status:   models.CheckPassed,
		Severity: models.SeverityLow,
		Message:  "No compliance rules configured",
	})

	return checks
}

// detectRiskFactors reports which of the conditional detectors triggered,
// in a fixed order.
func detectRiskFactors(p profile) []models.RiskFactor {
	factors := make([]models.RiskFactor, 0)

	if hasInfiniteLoopRisk(p) {
		factors = append(factors, models.RiskFactor{
			Type:        models.FactorInfiniteLoop,
			Severity:    models.SeverityCritical,
			Description: "A property-set action writes an enrollment-trigger property",
			Impact:      "Contacts can re-enroll indefinitely, flooding the workflow",
		})
	}

	if hasDataLossRisk(p) {
		factors = append(factors, models.RiskFactor{
			Type:        models.FactorDataLoss,
			Severity:    models.SeverityHigh,
			Description: "Contact data is overwritten or deleted without a backup",
			Impact:      "Original property values cannot be recovered after execution",
		})
	}

	if p.branchCount > ComplexBranchingThreshold {
		factors = append(factors, models.RiskFactor{
			Type:        models.FactorComplexBranching,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Workflow contains %d branch actions", p.branchCount),
			Impact:      "Deep branching makes behavior hard to predict and verify",
		})
	}

	if p.hasExternal {
		factors = append(factors, models.RiskFactor{
			Type:        models.FactorExternalIntegration,
			Severity:    models.SeverityMedium,
			Description: "Workflow calls external systems",
			Impact:      "External failures or API changes can break the workflow mid-run",
		})
	}

	if p.emailCount > HighVolumeEmailThreshold {
		factors = append(factors, models.RiskFactor{
			Type:        models.FactorHighVolumeEmails,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Workflow sends %d emails", p.emailCount),
			Impact:      "High send volume risks spam flagging and recipient fatigue",
		})
	}

	return factors
}

// suggestMitigations generates one suggestion per triggered risk factor that
// has a countermeasure, then always appends the monitoring suggestion last.
func suggestMitigations(p profile, factors []models.RiskFactor) []models.Mitigation {
	suggestions := make([]models.Mitigation, 0, len(factors)+1)

	for _, factor := range factors {
		switch factor.Type {
		case models.FactorInfiniteLoop:
			suggestions = append(suggestions, models.Mitigation{
				Type:        "loop_protection",
				Description: "Add a re-enrollment suppression condition on the written property",
				Priority:    "high",
			})
		case models.FactorDataLoss:
			suggestions = append(suggestions, models.Mitigation{
				Type:        "data_backup",
				Description: "Enable property backups before mutating or deleting contact data",
				Priority:    "high",
			})
		case models.FactorComplexBranching:
			suggestions = append(suggestions, models.Mitigation{
				Type:        "logic_simplification",
				Description: "Split deeply branched logic into smaller chained workflows",
				Priority:    "medium",
			})
		}
	}

	if !hasErrorHandling(p) {
		suggestions = append(suggestions, models.Mitigation{
			Type:        "error_handling",
			Description: "Add a branch that routes contacts on error or failure states",
			Priority:    "medium",
		})
	}

	suggestions = append(suggestions, models.Mitigation{
		Type:        "monitoring",
		Description: "Monitor enrollment and completion rates after activation",
		Priority:    "low",
	})

	return suggestions
}

// rollbackPlanFor returns the fixed rollback tier for a risk level. Tiers
// are keyed by level only; scores do not shape the plan further.
func rollbackPlanFor(level models.RiskLevel) models.RollbackPlan {
	switch level {
	case models.RiskCritical:
		return models.RollbackPlan{
			Strategy:           "manual incident response",
			EstimatedTime:      "2-4 hours",
			RequiresManualWork: true,
			Steps: []string{
				"Pause the workflow immediately",
				"Open an incident and notify the workflow owner",
				"Audit contacts touched since the change",
				"Restore the previous version manually",
				"Reconcile affected contact data",
			},
		}
	case models.RiskHigh:
		return models.RollbackPlan{
			Strategy:           "pause and revert",
			EstimatedTime:      "30-60 minutes",
			RequiresManualWork: true,
			Steps: []string{
				"Pause the workflow",
				"Restore the previous version",
				"Review contacts enrolled during the change window",
			},
		}
	default:
		return models.RollbackPlan{
			Strategy:           "one-click restore",
			EstimatedTime:      "5-15 minutes",
			RequiresManualWork: false,
			Steps: []string{
				"Restore the previous version",
				"Confirm the workflow resumed normally",
			},
		}
	}
}

// recoverySteps builds the recovery sequence: a fixed base, conditional
// steps for data-loss and loop factors, and a fixed tail.
func recoverySteps(factors []models.RiskFactor) []string {
	steps := []string{
		"Identify the last known good version",
		"Restore the previous version from the snapshot",
		"Verify the restored configuration matches the snapshot",
	}

	for _, factor := range factors {
		switch factor.Type {
		case models.FactorDataLoss:
			steps = append(steps, "Restore affected contact properties from backup")
		case models.FactorInfiniteLoop:
			steps = append(steps, "Unenroll contacts caught in the enrollment loop")
		}
	}

	steps = append(steps,
		"Test the restored workflow in a sandbox",
		"Re-enable the workflow gradually while monitoring",
	)

	return steps
}
