package engine

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// Supply chain compromise costs are large fixed constants: the scenario is
// inherently severe regardless of its parameters.
var (
	supplyChainInvestigationCost = decimal.NewFromInt(1000000)
	supplyChainResponseCost      = decimal.NewFromInt(500000)
	supplyChainRegulatoryCost    = decimal.NewFromInt(300000)
	supplyChainReputationalCost  = decimal.NewFromInt(2000000)
)

const (
	// Base recovery window of 30 days, in hours
	supplyChainBaseRecoveryHours = 720
	// Share of exposure time counted as downtime
	supplyChainDowntimeShare = 0.1
)

// supplyChainCompromise simulates malicious code delivered through vendor
// software
func (r *run) supplyChainCompromise(ctx context.Context) error {
	affectedDownstream := r.params.integer("affected_downstream_count", 100)
	detectionDelayDays := r.params.float("detection_delay_days", 180)
	compromiseMethod := r.params.str("compromise_method", "build_system")

	r.res.DirectCosts = supplyChainInvestigationCost
	r.res.OperationalCosts = supplyChainResponseCost
	r.res.RegulatoryCosts = supplyChainRegulatoryCost
	r.res.ReputationalCosts = supplyChainReputationalCost

	// Exposure and downtime are the only parameter-scaled values
	exposureHours := detectionDelayDays * 24
	r.res.DowntimeHours = exposureHours * supplyChainDowntimeShare

	multiplier, err := r.recoveryMultiplier(types.ScenarioSupplyChain)
	if err != nil {
		return err
	}
	r.res.EstimatedRecoveryTimeHours = supplyChainBaseRecoveryHours * multiplier
	r.res.RecoveryComplexity = types.RecoveryVeryHigh

	affected := r.affectedProcesses()
	r.recordAffectedProcesses(affected)

	r.res.ImpactBreakdown["supply_chain_details"] = map[string]any{
		"compromise_method":       compromiseMethod,
		"detection_delay_days":    detectionDelayDays,
		"downstream_affected":     affectedDownstream,
		"exposure_duration_hours": exposureHours,
	}
	r.res.ImpactBreakdown["remediation_required"] = []string{
		"Full code audit",
		"System rebuilds",
		"Certificate rotation",
		"Enhanced monitoring",
		"Third-party security audit",
	}
	r.res.ImpactBreakdown["severity"] = "CRITICAL"

	logging.From(ctx).Info("supply chain compromise impact calculated",
		"detection_delay_days", detectionDelayDays,
		"direct_costs", r.res.DirectCosts.String())

	return nil
}
