package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// ScenarioConfig represents the calculation configuration file. Monetary
// values are decimal strings so the file never carries binary floats.
type ScenarioConfig struct {
	Costs               CostConfig         `toml:"costs"`
	ChurnRates          map[string]float64 `toml:"churn_rates"`
	RecoveryMultipliers map[string]float64 `toml:"recovery_multipliers"`
	MonteCarlo          MonteCarloConfig   `toml:"monte_carlo"`
}

// CostConfig holds the calibration cost constants
type CostConfig struct {
	PerRecordBreachCost   string `toml:"per_record_breach_cost"`
	GDPRPenaltyPerRecord  string `toml:"gdpr_penalty_per_record"`
	HIPAAPenaltyPerRecord string `toml:"hipaa_penalty_per_record"`
}

// Validate checks that all cost constants are positive decimals
func (c *CostConfig) Validate() error {
	for name, value := range map[string]string{
		"per_record_breach_cost":   c.PerRecordBreachCost,
		"gdpr_penalty_per_record":  c.GDPRPenaltyPerRecord,
		"hipaa_penalty_per_record": c.HIPAAPenaltyPerRecord,
	} {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return goerr.Wrap(err, "invalid cost value", goerr.V("key", name), goerr.V("value", value))
		}
		if !d.IsPositive() {
			return goerr.New("cost value must be positive", goerr.V("key", name), goerr.V("value", value))
		}
	}
	return nil
}

// MonteCarloConfig bounds the probabilistic refinement
type MonteCarloConfig struct {
	MaxIterations int `toml:"max_iterations"`
}

// Validate checks the Monte Carlo bounds
func (m *MonteCarloConfig) Validate() error {
	if m.MaxIterations < 0 {
		return goerr.New("max_iterations must not be negative", goerr.V("max_iterations", m.MaxIterations))
	}
	return nil
}

// Validate checks the whole scenario configuration
func (s *ScenarioConfig) Validate() error {
	if err := s.Costs.Validate(); err != nil {
		return goerr.Wrap(err, "invalid costs section")
	}
	for industry, rate := range s.ChurnRates {
		if rate < 0 || rate > 1 {
			return goerr.New("churn rate must be between 0 and 1",
				goerr.V("industry", industry), goerr.V("rate", rate))
		}
	}
	for name, m := range s.RecoveryMultipliers {
		if _, err := types.ParseScenarioType(name); err != nil {
			return goerr.Wrap(err, "invalid recovery multiplier key", goerr.V("key", name))
		}
		if m <= 0 {
			return goerr.New("recovery multiplier must be positive",
				goerr.V("key", name), goerr.V("multiplier", m))
		}
	}
	for _, st := range types.AllScenarioTypes() {
		if _, ok := s.RecoveryMultipliers[st.String()]; !ok {
			return goerr.New("recovery multiplier missing for scenario type",
				goerr.V("scenario_type", st))
		}
	}
	return s.MonteCarlo.Validate()
}

// ToCalcConfig converts the file representation to the domain CalcConfig
func (s *ScenarioConfig) ToCalcConfig() (*domainConfig.CalcConfig, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	perRecord, _ := decimal.NewFromString(s.Costs.PerRecordBreachCost)
	gdpr, _ := decimal.NewFromString(s.Costs.GDPRPenaltyPerRecord)
	hipaa, _ := decimal.NewFromString(s.Costs.HIPAAPenaltyPerRecord)

	multipliers := make(map[types.ScenarioType]float64, len(s.RecoveryMultipliers))
	for name, m := range s.RecoveryMultipliers {
		multipliers[types.ScenarioType(name)] = m
	}

	cfg := &domainConfig.CalcConfig{
		PerRecordBreachCost:     perRecord,
		GDPRPenaltyPerRecord:    gdpr,
		HIPAAPenaltyPerRecord:   hipaa,
		ChurnRates:              s.ChurnRates,
		RecoveryTimeMultipliers: multipliers,
		MaxMonteCarloIterations: s.MonteCarlo.MaxIterations,
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "calculation config validation failed")
	}
	return cfg, nil
}

// LoadScenarioConfig loads the calculation configuration from a TOML file
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config ScenarioConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
