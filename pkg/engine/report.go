package engine

import (
	"fmt"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// maxRecommendations caps the recommendation list in the summary
const maxRecommendations = 5

// ExecutiveSummary is a derived, read-only digest of a simulation result
type ExecutiveSummary struct {
	TotalImpact       string
	RiskScore         string
	RecoveryTime      string
	KeyFindings       []string
	Recommendations   []string
	AffectedProcesses int
}

var (
	summaryDirectCostThreshold     = decimal.NewFromInt(500000)
	summaryRegulatoryCostThreshold = decimal.NewFromInt(100000)
	summaryImpactThreshold         = decimal.NewFromInt(1000000)
)

// GenerateExecutiveSummary classifies the result's severity via fixed
// thresholds into human-readable findings and up to five recommendations.
// Processes must be the business processes referenced by the result's
// AffectedProcessIDs; they drive the critical-process recommendation.
func GenerateExecutiveSummary(result *model.SimulationResult, processes []*model.BusinessProcess) *ExecutiveSummary {
	var findings []string

	if result.TotalFinancialImpact.GreaterThan(summaryImpactThreshold) {
		findings = append(findings, "Financial impact exceeds $1 million - immediate mitigation required")
	}
	if result.DowntimeHours > 48 {
		findings = append(findings, fmt.Sprintf("Extended downtime of %.0f hours expected", result.DowntimeHours))
	}
	if result.RecoveryComplexity == types.RecoveryHigh || result.RecoveryComplexity == types.RecoveryVeryHigh {
		findings = append(findings, "Complex recovery process - specialized expertise required")
	}
	if len(result.CascadingVendorImpacts) > 0 {
		findings = append(findings, fmt.Sprintf("%d dependent vendors affected", len(result.CascadingVendorImpacts)))
	}

	return &ExecutiveSummary{
		TotalImpact:       formatImpact(result.TotalFinancialImpact),
		RiskScore:         fmt.Sprintf("%.0f/100", result.RiskScore),
		RecoveryTime:      fmt.Sprintf("%.0f hours", result.EstimatedRecoveryTimeHours),
		KeyFindings:       findings,
		Recommendations:   generateRecommendations(result, processes),
		AffectedProcesses: len(result.AffectedProcessIDs),
	}
}

func generateRecommendations(result *model.SimulationResult, processes []*model.BusinessProcess) []string {
	var recommendations []string

	if result.DirectCosts.GreaterThan(summaryDirectCostThreshold) {
		recommendations = append(recommendations, "Consider cyber insurance to cover direct incident costs")
	}
	if result.RegulatoryCosts.GreaterThan(summaryRegulatoryCostThreshold) {
		recommendations = append(recommendations, "Strengthen compliance controls to minimize regulatory exposure")
	}
	if result.DowntimeHours > 24 {
		recommendations = append(recommendations, "Implement business continuity plan with alternate vendor options")
	}
	if result.RecoveryComplexity == types.RecoveryVeryHigh {
		recommendations = append(recommendations, "Establish incident response retainer with specialized security firm")
	}
	if len(result.CascadingVendorImpacts) > 2 {
		recommendations = append(recommendations, "Reduce vendor dependencies or implement redundancy")
	}
	for _, p := range processes {
		if p.CriticalityLevel >= 4 {
			recommendations = append(recommendations, "Critical processes affected - establish backup service providers")
			break
		}
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func formatImpact(total decimal.Decimal) string {
	v := total.InexactFloat64()
	switch {
	case v >= 1000000:
		return fmt.Sprintf("$%.1fM", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("$%.0fK", v/1000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// DistributionAnalysis summarizes the shape of a Monte Carlo distribution
// for risk reporting
type DistributionAnalysis struct {
	ValueAtRisk95      float64
	ConditionalVaR95   float64
	RiskProfile        string
	WorstCaseScenario  float64
	BestCaseScenario   float64
	MostLikelyScenario float64
}

// AnalyzeDistribution derives value-at-risk figures and a variance profile
// from Monte Carlo statistics. CVaR is approximated as 1.3x the 95th
// percentile.
func AnalyzeDistribution(stats *model.MonteCarloStats) *DistributionAnalysis {
	p95 := stats.Percentiles[95]

	profile := "low_variance"
	switch {
	case p95 > stats.Mean*1.5:
		profile = "high_variance"
	case p95 > stats.Mean*1.2:
		profile = "moderate_variance"
	}

	return &DistributionAnalysis{
		ValueAtRisk95:      p95,
		ConditionalVaR95:   p95 * 1.3,
		RiskProfile:        profile,
		WorstCaseScenario:  stats.Percentiles[99],
		BestCaseScenario:   stats.Percentiles[10],
		MostLikelyScenario: stats.Median,
	}
}
