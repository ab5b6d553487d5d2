package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

const (
	// DefaultChurnRate is applied when a vendor's industry has no entry in
	// the churn table. This is an optional tunable, unlike the calibration
	// constants below which must be configured explicitly.
	DefaultChurnRate = 0.15

	// DefaultMaxMonteCarloIterations caps the refinement iteration count
	// when the configuration does not set one.
	DefaultMaxMonteCarloIterations = 10000
)

// CalcConfig holds the externally supplied calibration constants for the
// impact calculators. The engine treats it as read-only input and fails
// with a configuration error when a scenario-critical key is absent.
type CalcConfig struct {
	// Cost applied per compromised record in a data breach
	PerRecordBreachCost decimal.Decimal

	// Per-record regulatory penalties by regime
	GDPRPenaltyPerRecord  decimal.Decimal
	HIPAAPenaltyPerRecord decimal.Decimal

	// Customer churn rate by lowercase industry name
	ChurnRates map[string]float64

	// Recovery time scaling per scenario type; every scenario type needs
	// an entry before its calculator can run
	RecoveryTimeMultipliers map[types.ScenarioType]float64

	MaxMonteCarloIterations int
}

// Validate checks that all scenario-critical keys are present
func (c *CalcConfig) Validate() error {
	if !c.PerRecordBreachCost.IsPositive() {
		return goerr.New("per_record_breach_cost is required and must be positive",
			goerr.V("value", c.PerRecordBreachCost))
	}
	if !c.GDPRPenaltyPerRecord.IsPositive() {
		return goerr.New("gdpr_penalty_per_record is required and must be positive",
			goerr.V("value", c.GDPRPenaltyPerRecord))
	}
	if !c.HIPAAPenaltyPerRecord.IsPositive() {
		return goerr.New("hipaa_penalty_per_record is required and must be positive",
			goerr.V("value", c.HIPAAPenaltyPerRecord))
	}
	for _, st := range types.AllScenarioTypes() {
		if _, ok := c.RecoveryTimeMultipliers[st]; !ok {
			return goerr.New("recovery time multiplier missing for scenario type",
				goerr.V("scenario_type", st))
		}
	}
	return nil
}

// RecoveryMultiplier returns the recovery time multiplier for the scenario
// type, or an error when the key is absent.
func (c *CalcConfig) RecoveryMultiplier(st types.ScenarioType) (float64, error) {
	m, ok := c.RecoveryTimeMultipliers[st]
	if !ok {
		return 0, goerr.New("recovery time multiplier not configured",
			goerr.V("scenario_type", st))
	}
	return m, nil
}

// ChurnRate returns the churn rate for the industry, falling back to
// DefaultChurnRate for unknown industries.
func (c *CalcConfig) ChurnRate(industry string) float64 {
	if rate, ok := c.ChurnRates[industry]; ok {
		return rate
	}
	return DefaultChurnRate
}

// MaxIterations returns the configured Monte Carlo iteration cap
func (c *CalcConfig) MaxIterations() int {
	if c.MaxMonteCarloIterations > 0 {
		return c.MaxMonteCarloIterations
	}
	return DefaultMaxMonteCarloIterations
}
