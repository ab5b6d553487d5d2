package engine

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// Intrinsic data breach constants. These are calibration choices of the
// model itself, not configuration-driven rates.
var (
	breachBaseIncidentCost = decimal.NewFromInt(50000)
	breachAvgCustomerValue = decimal.NewFromInt(500)
	breachHourlyRate       = decimal.NewFromInt(250)
)

const (
	// Initial response buffer added to detection time, in hours
	breachResponseBufferHours = 48
	// Share of compromised records assumed to be unique customers
	breachCustomerShare = 0.1
	// Records threshold above which recovery becomes high complexity
	breachHighComplexityRecords = 50000
)

// dataBreach simulates unauthorized access and data exfiltration
func (r *run) dataBreach(ctx context.Context) error {
	records := r.params.integer("records_compromised", 10000)
	dataTypes := r.params.strings("data_types", []string{"PII"})
	detectionHours := r.params.float("detection_time_hours", 72)
	breachVector := r.params.str("breach_vector", "phishing")

	recordCount := decimal.NewFromInt(int64(records))

	// Direct costs: forensics, legal, notification
	perRecord, err := r.requiredRate("per_record_breach_cost", r.cfg.PerRecordBreachCost)
	if err != nil {
		return err
	}
	r.res.DirectCosts = breachBaseIncidentCost.Add(recordCount.Mul(perRecord))

	// Regulatory penalties accumulate per regime: GDPR for PII/financial
	// data and HIPAA for healthcare data are additive, not exclusive
	regulatory := decimal.Zero
	if contains(dataTypes, "PII") || contains(dataTypes, "financial") {
		gdpr, err := r.requiredRate("gdpr_penalty_per_record", r.cfg.GDPRPenaltyPerRecord)
		if err != nil {
			return err
		}
		regulatory = regulatory.Add(recordCount.Mul(gdpr))
	}
	if contains(dataTypes, "healthcare") {
		hipaa, err := r.requiredRate("hipaa_penalty_per_record", r.cfg.HIPAAPenaltyPerRecord)
		if err != nil {
			return err
		}
		regulatory = regulatory.Add(recordCount.Mul(hipaa))
	}
	r.res.RegulatoryCosts = regulatory

	// Reputational costs from customer churn
	churnRate := r.cfg.ChurnRate(strings.ToLower(r.vendor.Industry))
	customersAffected := int(float64(records) * breachCustomerShare)
	customersLost := int(float64(customersAffected) * churnRate)
	r.res.ReputationalCosts = decimal.NewFromInt(int64(customersLost)).Mul(breachAvgCustomerValue)
	r.res.CustomersAffected = customersAffected

	// Operational costs from response effort
	responseHours := detectionHours + breachResponseBufferHours
	r.res.OperationalCosts = decimal.NewFromFloat(responseHours).Mul(breachHourlyRate)

	r.res.DowntimeHours = responseHours * 0.3

	multiplier, err := r.recoveryMultiplier(types.ScenarioDataBreach)
	if err != nil {
		return err
	}
	r.res.EstimatedRecoveryTimeHours = responseHours * multiplier

	if records > breachHighComplexityRecords {
		r.res.RecoveryComplexity = types.RecoveryHigh
	} else {
		r.res.RecoveryComplexity = types.RecoveryMedium
	}

	affected := r.affectedProcesses()
	r.recordAffectedProcesses(affected)

	notificationCosts := perRecord.Mul(recordCount).Mul(decimal.NewFromFloat(0.3))
	r.res.ImpactBreakdown["breach_details"] = map[string]any{
		"records_compromised":  records,
		"data_types":           dataTypes,
		"detection_time_hours": detectionHours,
		"breach_vector":        breachVector,
	}
	r.res.ImpactBreakdown["cost_breakdown"] = map[string]any{
		"investigation":      breachBaseIncidentCost.InexactFloat64(),
		"per_record_cost":    perRecord.InexactFloat64(),
		"notification_costs": notificationCosts.InexactFloat64(),
		"legal_costs":        breachBaseIncidentCost.Mul(decimal.NewFromFloat(0.5)).InexactFloat64(),
	}
	r.res.ImpactBreakdown["customer_impact"] = map[string]any{
		"customers_affected": customersAffected,
		"estimated_churn":    customersLost,
		"churn_rate":         churnRate,
	}

	logging.From(ctx).Info("data breach impact calculated",
		"records", records,
		"direct_costs", r.res.DirectCosts.String(),
		"regulatory_costs", r.res.RegulatoryCosts.String())

	return nil
}

// requiredRate enforces that a scenario-critical calibration rate is
// configured; absence is a configuration error, never a silent default.
func (r *run) requiredRate(key string, value decimal.Decimal) (decimal.Decimal, error) {
	if !value.IsPositive() {
		return decimal.Zero, goerr.Wrap(ErrMissingConfig, "calculation rate not configured",
			goerr.V("key", key))
	}
	return value, nil
}

// recoveryMultiplier looks up the configured recovery time multiplier for
// the scenario type
func (r *run) recoveryMultiplier(st types.ScenarioType) (float64, error) {
	m, ok := r.cfg.RecoveryTimeMultipliers[st]
	if !ok {
		return 0, goerr.Wrap(ErrMissingConfig, "recovery time multiplier not configured",
			goerr.V("scenario_type", st))
	}
	return m, nil
}
