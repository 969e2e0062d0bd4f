// Package risk derives a deterministic multi-factor risk assessment from a
// single workflow document: complexity, impact, and safety sub-scores, an
// overall score and level, safety checks, risk factors, mitigation
// suggestions, and rollback guidance.
package risk

import (
	"math"
	"strings"

	"github.com/flowvault/flowvault/pkg/models"
)

// ScoreWeights combines the three sub-scores into the overall risk score.
// Safety enters inverted: a low safety score raises risk.
var ScoreWeights = struct {
	Complexity float64
	Impact     float64
	Safety     float64
}{0.3, 0.4, 0.3}

// DefaultScores substitute for sub-scores whose calculation failed, so an
// assessment is always fully populated.
var DefaultScores = struct {
	Complexity int
	Impact     int
	Safety     int
}{50, 30, 70}

// Risk level thresholds over the overall score.
const (
	ThresholdCritical = 80
	ThresholdHigh     = 60
	ThresholdMedium   = 30
)

// RateLimitActionThreshold is the combined email plus webhook action count
// above which the provider's API rate limits become a realistic concern.
const RateLimitActionThreshold = 10

// Assess computes the complete risk assessment for one workflow document. It
// is a pure function: no I/O, no clock, no randomness, so identical inputs
// always produce identical output. A sub-score calculation failure is
// replaced by its documented default and reported in DegradedScores; Assess
// never fails outright.
func Assess(doc models.WorkflowDocument) models.RiskAssessment {
	p := buildProfile(doc)

	assessment := models.RiskAssessment{}

	assessment.ComplexityScore = safeScore(
		func() int { return complexityScore(p) },
		DefaultScores.Complexity, "complexity", &assessment.DegradedScores,
	)
	assessment.ImpactScore = safeScore(
		func() int { return impactScore(p) },
		DefaultScores.Impact, "impact", &assessment.DegradedScores,
	)
	assessment.SafetyScore = safeScore(
		func() int { return safetyScore(p) },
		DefaultScores.Safety, "safety", &assessment.DegradedScores,
	)

	assessment.RiskScore = overallScore(
		assessment.ComplexityScore, assessment.ImpactScore, assessment.SafetyScore,
	)
	assessment.RiskLevel = levelFor(assessment.RiskScore)

	assessment.SafetyChecks = runSafetyChecks(p)
	assessment.RiskFactors = detectRiskFactors(p)
	assessment.MitigationSuggestions = suggestMitigations(p, assessment.RiskFactors)
	assessment.RollbackPlan = rollbackPlanFor(assessment.RiskLevel)
	assessment.RecoverySteps = recoverySteps(assessment.RiskFactors)

	return assessment
}

// profile is the shared analysis of one document consumed by every scorer
// and detector: classified actions plus the counts and flags the formulas
// read.
type profile struct {
	actions       []models.ClassifiedAction
	triggers      []map[string]any
	singleTrigger bool

	branchCount   int
	delayCount    int
	emailCount    int
	webhookCount  int
	mutationCount int
	taskCount     int
	hasExternal   bool
}

func buildProfile(doc models.WorkflowDocument) (p profile) {
	defer func() {
		// A profile that cannot be built scores everything from the empty
		// document rather than failing the assessment.
		if recovered := recover(); recovered != nil {
			p = profile{}
		}
	}()

	if doc == nil {
		return profile{}
	}

	p.triggers = doc.EnrollmentTriggers()
	p.singleTrigger = doc.HasSingleTrigger()

	for _, raw := range doc.Actions() {
		action := models.ClassifyAction(raw)
		p.actions = append(p.actions, action)

		switch action.Kind {
		case models.KindBranch:
			p.branchCount++
		case models.KindDelay:
			p.delayCount++
		case models.KindEmail:
			p.emailCount++
		case models.KindWebhook:
			p.webhookCount++
		case models.KindCreateTask:
			p.taskCount++
		}

		if action.MutatesData() {
			p.mutationCount++
		}

		if action.CallsExternal() {
			p.hasExternal = true
		}
	}

	return p
}

func safeScore(compute func() int, fallback int, name string, degraded *[]string) (score int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			score = fallback
			*degraded = append(*degraded, name)
		}
	}()

	return clamp(compute())
}

// complexityScore grades structural complexity: action volume, branching,
// delays, and trigger count.
func complexityScore(p profile) int {
	score := 0

	switch actionCount := len(p.actions); {
	case actionCount <= 3:
		score += 10
	case actionCount <= 7:
		score += 20
	case actionCount <= 15:
		score += 30
	default:
		score += 40
	}

	score += min(10*p.branchCount, 30)
	score += min(5*p.delayCount, 15)

	if p.singleTrigger {
		score += 5
	} else {
		score += min(3*len(p.triggers), 15)
	}

	return score
}

// impactScore grades outward blast radius: emails sent, data mutated,
// external systems called.
func impactScore(p profile) int {
	score := min(10*p.emailCount, 30)
	score += min(8*p.mutationCount, 40)

	if p.hasExternal {
		score += 20
	}

	if p.emailCount > 0 || p.taskCount > 0 {
		score += 10
	}

	return score
}

// safetyScore starts from a perfect 100 and subtracts for each detected
// hazard, flooring at zero.
func safetyScore(p profile) int {
	score := 100

	if hasInfiniteLoopRisk(p) {
		score -= 30
	}

	if hasDataLossRisk(p) {
		score -= 25
	}

	if !hasErrorHandling(p) {
		score -= 20
	}

	if hasRateLimitRisk(p) {
		score -= 15
	}

	if hasPermissionRisk(p) {
		score -= 10
	}

	return score
}

func overallScore(complexity, impact, safety int) int {
	weighted := ScoreWeights.Complexity*float64(complexity) +
		ScoreWeights.Impact*float64(impact) +
		ScoreWeights.Safety*float64(100-safety)

	return clamp(int(math.Round(weighted)))
}

func levelFor(score int) models.RiskLevel {
	switch {
	case score >= ThresholdCritical:
		return models.RiskCritical
	case score >= ThresholdHigh:
		return models.RiskHigh
	case score >= ThresholdMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}

	if score > 100 {
		return 100
	}

	return score
}

// hasInfiniteLoopRisk reports whether a property-set action writes a property
// that also appears in an enrollment-trigger filter: setting it can re-enroll
// the contact and loop the workflow.
func hasInfiniteLoopRisk(p profile) bool {
	triggerProperties := make(map[string]struct{})

	for _, trigger := range p.triggers {
		for _, filter := range models.TriggerFilters(trigger) {
			if property := models.AsString(filter[models.TriggerFieldProperty]); property != "" {
				triggerProperties[property] = struct{}{}
			}
		}
	}

	if len(triggerProperties) == 0 {
		return false
	}

	for _, action := range p.actions {
		if !action.MutatesData() {
			continue
		}

		property := models.AsString(action.Fields[models.ActionFieldPropertyName])
		if _, enrolls := triggerProperties[property]; enrolls {
			return true
		}
	}

	return false
}

// hasDataLossRisk reports whether a mutating or contact-deleting action runs
// without an accompanying backup flag.
func hasDataLossRisk(p profile) bool {
	for _, action := range p.actions {
		if !action.MutatesData() && action.Kind != models.KindDeleteContact {
			continue
		}

		if backedUp, _ := action.Fields[models.ActionFieldBackupEnabled].(bool); !backedUp {
			return true
		}
	}

	return false
}

// hasErrorHandling reports whether any branch action filters on an
// error-or-failure property.
func hasErrorHandling(p profile) bool {
	for _, action := range p.actions {
		if action.Kind != models.KindBranch {
			continue
		}

		conditions := models.AsObjectList(action.Fields[models.ActionFieldFilters])
		if len(conditions) == 0 {
			conditions = models.AsObjectList(action.Fields[models.ActionFieldConditions])
		}

		for _, condition := range conditions {
			property := strings.ToLower(models.AsString(condition[models.TriggerFieldProperty]))
			if strings.Contains(property, "error") || strings.Contains(property, "failed") {
				return true
			}
		}
	}

	return false
}

func hasRateLimitRisk(p profile) bool {
	return p.emailCount+p.webhookCount > RateLimitActionThreshold
}

func hasPermissionRisk(p profile) bool {
	return p.hasExternal
}
