package engine

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// Intrinsic ransomware constants
var (
	// Expected-payout model: without backups the ransom is paid with this
	// probability, so direct cost is ransom × probability, not the full demand
	ransomPaymentProbability = decimal.NewFromFloat(0.3)
	// Restoration and cleanup cost when backups are available
	ransomRestorationCost = decimal.NewFromInt(100000)
	// Flat disclosure exposure when data may be lost
	ransomDataLossRegulatory = decimal.NewFromInt(250000)
	// Ransomware incidents carry fixed brand damage
	ransomReputationalCost = decimal.NewFromInt(500000)
)

const (
	ransomRecoveryWithBackup    = 0.5
	ransomRecoveryWithoutBackup = 2.0
)

// ransomware simulates an encryption attack with ransom demands
func (r *run) ransomware(ctx context.Context) error {
	ransomAmount := r.params.decimal("ransom_amount", decimal.NewFromInt(500000))
	downtimeHours := r.params.float("downtime_hours", 168)
	encryptionScope := r.params.str("encryption_scope", "full")
	backupAvailable := r.params.boolean("backup_available", true)

	if backupAvailable {
		r.res.DirectCosts = ransomRestorationCost
	} else {
		r.res.DirectCosts = ransomAmount.Mul(ransomPaymentProbability)
	}

	// Operational costs accumulate across every process relying on the
	// vendor for the full downtime window
	affected := r.affectedProcesses()
	totalHourlyCost := decimal.Zero
	for _, p := range affected {
		totalHourlyCost = totalHourlyCost.Add(p.HourlyOperatingCost)
	}

	scopeMultiplier := decimal.NewFromFloat(1.0)
	if encryptionScope != "full" {
		scopeMultiplier = decimal.NewFromFloat(0.5)
	}
	r.res.OperationalCosts = totalHourlyCost.
		Mul(decimal.NewFromFloat(downtimeHours)).
		Mul(scopeMultiplier)

	r.res.DowntimeHours = downtimeHours
	if encryptionScope == "full" {
		r.res.ProductivityLossPercentage = 80
	} else {
		r.res.ProductivityLossPercentage = 40
	}

	recoveryFactor := ransomRecoveryWithoutBackup
	if backupAvailable {
		recoveryFactor = ransomRecoveryWithBackup
	}
	multiplier, err := r.recoveryMultiplier(types.ScenarioRansomware)
	if err != nil {
		return err
	}
	r.res.EstimatedRecoveryTimeHours = downtimeHours * recoveryFactor * multiplier

	if backupAvailable {
		r.res.RecoveryComplexity = types.RecoveryHigh
	} else {
		r.res.RecoveryComplexity = types.RecoveryVeryHigh
		// Potential data loss triggers disclosure obligations
		r.res.RegulatoryCosts = ransomDataLossRegulatory
	}

	r.res.ReputationalCosts = ransomReputationalCost

	r.recordAffectedProcesses(affected)

	recoveryStrategy := "potential_ransom_payment"
	if backupAvailable {
		recoveryStrategy = "backup_restoration"
	}
	r.res.ImpactBreakdown["ransomware_details"] = map[string]any{
		"ransom_demanded":  ransomAmount.InexactFloat64(),
		"downtime_hours":   downtimeHours,
		"encryption_scope": encryptionScope,
		"backup_available": backupAvailable,
	}
	r.res.ImpactBreakdown["recovery_strategy"] = recoveryStrategy
	r.res.ImpactBreakdown["affected_systems"] = encryptionScope

	logging.From(ctx).Info("ransomware impact calculated",
		"downtime_hours", downtimeHours,
		"backup_available", backupAvailable,
		"operational_costs", r.res.OperationalCosts.String())

	return nil
}
