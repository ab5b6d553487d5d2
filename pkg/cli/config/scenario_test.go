package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

const validScenarioTOML = `
[costs]
per_record_breach_cost = "150"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[churn_rates]
technology = 0.10
healthcare = 0.25

[recovery_multipliers]
data_breach = 1.0
ransomware = 1.2
service_disruption = 0.8
supply_chain_compromise = 1.5
multi_vendor_failure = 1.3

[monte_carlo]
max_iterations = 10000
`

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadScenarioConfig(t *testing.T) {
	cfg, err := config.LoadScenarioConfig(writeTempFile(t, validScenarioTOML))
	if err != nil {
		t.Fatalf("failed to load scenario config: %v", err)
	}

	calc, err := cfg.ToCalcConfig()
	if err != nil {
		t.Fatalf("failed to convert to calc config: %v", err)
	}

	if calc.PerRecordBreachCost.String() != "150" {
		t.Errorf("per record cost = %s, want 150", calc.PerRecordBreachCost)
	}
	if calc.ChurnRates["healthcare"] != 0.25 {
		t.Errorf("healthcare churn = %v, want 0.25", calc.ChurnRates["healthcare"])
	}
	if calc.RecoveryTimeMultipliers[types.ScenarioRansomware] != 1.2 {
		t.Errorf("ransomware multiplier = %v, want 1.2", calc.RecoveryTimeMultipliers[types.ScenarioRansomware])
	}
	if calc.MaxMonteCarloIterations != 10000 {
		t.Errorf("max iterations = %d, want 10000", calc.MaxMonteCarloIterations)
	}
}

func TestLoadScenarioConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad decimal", `
[costs]
per_record_breach_cost = "not a number"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[recovery_multipliers]
data_breach = 1.0
ransomware = 1.0
service_disruption = 1.0
supply_chain_compromise = 1.0
multi_vendor_failure = 1.0
`},
		{"negative cost", `
[costs]
per_record_breach_cost = "-150"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[recovery_multipliers]
data_breach = 1.0
ransomware = 1.0
service_disruption = 1.0
supply_chain_compromise = 1.0
multi_vendor_failure = 1.0
`},
		{"missing multiplier", `
[costs]
per_record_breach_cost = "150"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[recovery_multipliers]
data_breach = 1.0
`},
		{"unknown multiplier key", `
[costs]
per_record_breach_cost = "150"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[recovery_multipliers]
data_breach = 1.0
ransomware = 1.0
service_disruption = 1.0
supply_chain_compromise = 1.0
multi_vendor_failure = 1.0
earthquake = 1.0
`},
		{"churn rate above one", `
[costs]
per_record_breach_cost = "150"
gdpr_penalty_per_record = "20"
hipaa_penalty_per_record = "50"

[churn_rates]
technology = 1.5

[recovery_multipliers]
data_breach = 1.0
ransomware = 1.0
service_disruption = 1.0
supply_chain_compromise = 1.0
multi_vendor_failure = 1.0
`},
		{"broken toml", `[costs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.LoadScenarioConfig(writeTempFile(t, tt.toml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScenarioConfigMissingFile(t *testing.T) {
	if _, err := config.LoadScenarioConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
