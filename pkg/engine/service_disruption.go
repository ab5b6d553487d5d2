package engine

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// Intrinsic service disruption constants
var (
	disruptionBaseCost = decimal.NewFromInt(25000)
	// SLA penalty as a share of the vendor contract value
	disruptionSLAPenaltyRate = decimal.NewFromFloat(0.05)

	disruptionReputationHighTier = decimal.NewFromInt(200000)
	disruptionReputationMidTier  = decimal.NewFromInt(100000)
	disruptionReputationLowTier  = decimal.NewFromInt(50000)
)

// serviceDisruption simulates a service outage
func (r *run) serviceDisruption(ctx context.Context) error {
	durationHours := r.params.float("duration_hours", 24)
	cause := r.params.str("disruption_cause", "infrastructure_failure")
	customerImpactPct := r.params.float("customer_impact_percentage", 50)

	// Operational costs weight each affected process by its criticality
	affected := r.affectedProcesses()
	duration := decimal.NewFromFloat(durationHours)
	totalImpact := decimal.Zero
	for _, p := range affected {
		criticality := decimal.NewFromFloat(float64(p.CriticalityLevel) / 5.0)
		totalImpact = totalImpact.Add(p.HourlyOperatingCost.Mul(duration).Mul(criticality))
	}
	r.res.OperationalCosts = totalImpact

	// Investigation and remediation, heavier for cyber attacks
	complexityMultiplier := decimal.NewFromFloat(1.0)
	if cause == "cyber_attack" {
		complexityMultiplier = decimal.NewFromFloat(1.5)
	}
	r.res.DirectCosts = disruptionBaseCost.Mul(complexityMultiplier)

	r.res.DowntimeHours = durationHours
	r.res.ProductivityLossPercentage = customerImpactPct

	multiplier, err := r.recoveryMultiplier(types.ScenarioServiceDisruption)
	if err != nil {
		return err
	}
	r.res.EstimatedRecoveryTimeHours = durationHours * multiplier
	r.res.RecoveryComplexity = types.RecoveryMedium

	slaPenalty := r.vendor.ContractValue.Mul(disruptionSLAPenaltyRate)
	r.res.RegulatoryCosts = slaPenalty

	switch {
	case customerImpactPct > 70:
		r.res.ReputationalCosts = disruptionReputationHighTier
	case customerImpactPct > 40:
		r.res.ReputationalCosts = disruptionReputationMidTier
	default:
		r.res.ReputationalCosts = disruptionReputationLowTier
	}

	r.recordAffectedProcesses(affected)

	r.res.ImpactBreakdown["disruption_details"] = map[string]any{
		"duration_hours":             durationHours,
		"cause":                      cause,
		"customer_impact_percentage": customerImpactPct,
	}
	r.res.ImpactBreakdown["sla_penalty"] = slaPenalty.InexactFloat64()
	r.res.ImpactBreakdown["affected_process_count"] = len(affected)

	logging.From(ctx).Info("service disruption impact calculated",
		"duration_hours", durationHours,
		"operational_costs", totalImpact.String())

	return nil
}
